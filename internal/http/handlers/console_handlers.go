package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rogerio-castellano/product-console/internal/form"
	"github.com/rogerio-castellano/product-console/internal/http/respond"
	"github.com/rogerio-castellano/product-console/internal/models"
	"github.com/rogerio-castellano/product-console/internal/session"
	"go.uber.org/zap"
)

type pageData struct {
	Form    map[string]string
	Flash   string
	Results []models.Product
	// Searched is true once a search has filled the results table.
	Searched bool
}

func (s *Server) loadState(r *http.Request) (*session.State, error) {
	id := session.IDFromContext(r.Context())
	st, err := s.store.Load(r.Context(), id)
	if errors.Is(err, session.ErrSessionNotFound) {
		return session.NewState(), nil
	}
	return st, err
}

// ConsolePage renders the product form with the session's flash message
// and search results.
func (s *Server) ConsolePage(w http.ResponseWriter, r *http.Request) {
	st, err := s.loadState(r)
	if err != nil {
		s.logger.Error("could not load session", zap.Error(err))
		http.Error(w, "could not load session", http.StatusInternalServerError)
		return
	}

	values := make(map[string]string, len(form.Fields))
	for _, f := range form.Fields {
		values[string(f)] = st.Value(f)
	}
	data := pageData{
		Form:     values,
		Flash:    st.Message,
		Results:  st.Results,
		Searched: st.Results != nil,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.page.Execute(w, data); err != nil {
		s.logger.Error("failed to render console page", zap.Error(err))
	}
}

// ProductAction runs one form button against the products API and
// redirects back to the console page.
func (s *Server) ProductAction(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "action")
	action, ok := s.actions[name]
	if !ok {
		http.Error(w, "unknown action", http.StatusNotFound)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	st, err := s.loadState(r)
	if err != nil {
		s.logger.Error("could not load session", zap.Error(err))
		http.Error(w, "could not load session", http.StatusInternalServerError)
		return
	}

	// the submitted inputs are the current form
	for _, f := range form.Fields {
		st.SetValue(f, r.PostForm.Get(string(f)))
	}

	if err := action(r.Context(), st); err != nil {
		s.logger.Debug("action returned error", zap.String("action", name), zap.Error(err))
	}

	id := session.IDFromContext(r.Context())
	if err := s.store.Save(r.Context(), id, st, s.ttl); err != nil {
		s.logger.Error("could not save session", zap.Error(err))
		http.Error(w, "could not save session", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ResetSession forgets everything stored for the caller's session and
// redirects back to an empty console page.
func (s *Server) ResetSession(w http.ResponseWriter, r *http.Request) {
	id := session.IDFromContext(r.Context())
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.logger.Error("could not delete session", zap.Error(err))
		http.Error(w, "could not reset session", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Health reports that the console is up.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	if err := respond.JSON(w, http.StatusOK, map[string]string{"status": "ok"}); err != nil {
		s.logger.Error("failed to write health response", zap.Error(err))
	}
}

// Package clienttest provides an in-process fake of the products API for
// tests of code that talks to it.
package clienttest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/rogerio-castellano/product-console/internal/http/respond"
	"github.com/rogerio-castellano/product-console/internal/models"
)

// Server is a fake products API backed by an in-memory product list.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	products []models.Product
	nextID   int
	queries  []string
	failures []failure
}

type failure struct {
	status  int
	message string
}

// NewServer starts a fake API. Close it when done.
func NewServer() *Server {
	s := &Server{nextID: 1}
	r := chi.NewRouter()
	r.Get("/products", s.list)
	r.Post("/products", s.create)
	r.Get("/products/{id}", s.get)
	r.Put("/products/{id}", s.update)
	r.Delete("/products/{id}", s.delete)
	r.Post("/products/{id}/purchase", s.purchase)
	s.Server = httptest.NewServer(s.failFirst(r))
	return s
}

// Seed stores products, assigning ids, and returns them as stored.
func (s *Server) Seed(products ...models.Product) []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		p.ID = models.ProductID(strconv.Itoa(s.nextID))
		p.LegacyID = ""
		s.nextID++
		s.products = append(s.products, p)
		out = append(out, p)
	}
	return out
}

// Products returns a copy of the stored products.
func (s *Server) Products() []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Product(nil), s.products...)
}

// Queries returns the raw query strings received by the list endpoint.
func (s *Server) Queries() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.queries...)
}

// FailNext makes the next request fail with status and a JSON message.
func (s *Server) FailNext(status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = append(s.failures, failure{status: status, message: message})
}

func (s *Server) failFirst(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		var f *failure
		if len(s.failures) > 0 {
			first := s.failures[0]
			f = &first
			s.failures = s.failures[1:]
		}
		s.mu.Unlock()
		if f != nil {
			_ = respond.JSON(w, f.status, map[string]any{"status": f.status, "message": f.message})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// matches applies the first filter present, in the order the products
// service checks them: name, price range, owner, category.
func matches(p models.Product, q map[string]string) bool {
	switch {
	case q["name"] != "":
		return p.Name == q["name"]
	case q["low"] != "" && q["high"] != "":
		low, err1 := strconv.ParseFloat(q["low"], 64)
		high, err2 := strconv.ParseFloat(q["high"], 64)
		if err1 != nil || err2 != nil || p.Price == nil {
			return false
		}
		return *p.Price >= low && *p.Price <= high
	case q["owner"] != "":
		return p.Owner == q["owner"]
	case q["category"] != "":
		return p.Category == q["category"]
	}
	return true
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	q := map[string]string{}
	for _, k := range []string{"name", "low", "high", "owner", "category"} {
		q[k] = values.Get(k)
	}

	s.mu.Lock()
	s.queries = append(s.queries, r.URL.RawQuery)
	filtered := []models.Product{}
	for _, p := range s.products {
		if matches(p, q) {
			filtered = append(filtered, p)
		}
	}
	s.mu.Unlock()

	_ = respond.JSON(w, http.StatusOK, filtered)
}

// find looks a product up the way the service's integer route does, so
// "007" finds product 7.
func (s *Server) find(id string) (int, bool) {
	want := models.ProductID(id).Canonical()
	for i, p := range s.products {
		if p.ID.Canonical() == want {
			return i, true
		}
	}
	return 0, false
}

func (s *Server) notFound(w http.ResponseWriter, id string) {
	_ = respond.JSON(w, http.StatusNotFound, map[string]any{
		"status":  http.StatusNotFound,
		"message": fmt.Sprintf("Product with id '%s' was not found.", id),
	})
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	i, ok := s.find(id)
	var p models.Product
	if ok {
		p = s.products[i]
	}
	s.mu.Unlock()
	if !ok {
		s.notFound(w, id)
		return
	}
	_ = respond.JSON(w, http.StatusOK, p)
}

func decodeProduct(w http.ResponseWriter, r *http.Request) (models.ProductRequest, bool) {
	if r.Header.Get("Content-Type") != "application/json" {
		_ = respond.JSON(w, http.StatusUnsupportedMediaType, map[string]any{"message": "Content-Type must be application/json"})
		return models.ProductRequest{}, false
	}
	var req models.ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = respond.JSON(w, http.StatusBadRequest, map[string]any{"message": "Invalid Product: body of request contained bad or no data"})
		return models.ProductRequest{}, false
	}
	return req, true
}

func fromRequest(id models.ProductID, req models.ProductRequest) models.Product {
	return models.Product{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Inventory:   req.Inventory,
		Owner:       req.Owner,
		Category:    req.Category,
	}
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeProduct(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	p := fromRequest(models.ProductID(strconv.Itoa(s.nextID)), req)
	s.nextID++
	s.products = append(s.products, p)
	s.mu.Unlock()

	_ = respond.JSON(w, http.StatusCreated, p, http.Header{"Location": {s.URL + "/products/" + string(p.ID)}})
}

func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	req, ok := decodeProduct(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	i, found := s.find(id)
	var p models.Product
	if found {
		p = fromRequest(s.products[i].ID, req)
		s.products[i] = p
	}
	s.mu.Unlock()
	if !found {
		s.notFound(w, id)
		return
	}
	_ = respond.JSON(w, http.StatusOK, p)
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	if i, ok := s.find(id); ok {
		s.products = append(s.products[:i], s.products[i+1:]...)
	}
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) purchase(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req models.PurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = respond.JSON(w, http.StatusBadRequest, map[string]any{"message": "Input payload validation failed"})
		return
	}

	s.mu.Lock()
	i, ok := s.find(id)
	if ok {
		inv := 0
		if s.products[i].Inventory != nil {
			inv = *s.products[i].Inventory
		}
		inv -= req.Amount
		s.products[i].Inventory = &inv
	}
	s.mu.Unlock()
	if !ok {
		s.notFound(w, id)
		return
	}
	_ = respond.JSON(w, http.StatusOK, map[string]any{"id": req.ID, "amount": nil})
}

package session

import (
	"github.com/rogerio-castellano/product-console/internal/form"
	"github.com/rogerio-castellano/product-console/internal/models"
)

// State is what one browser sees on the console page.
type State struct {
	Form    form.Values      `json:"form"`
	Message string           `json:"flash"`
	Results []models.Product `json:"results"`
}

// NewState returns an empty state.
func NewState() *State {
	return &State{Form: form.Values{}}
}

func (s *State) Value(f form.Field) string {
	return s.Form.Value(f)
}

func (s *State) SetValue(f form.Field, v string) {
	if s.Form == nil {
		s.Form = form.Values{}
	}
	s.Form.SetValue(f, v)
}

func (s *State) Flash(message string) {
	s.Message = message
}

func (s *State) ShowResults(products []models.Product) {
	s.Results = products
}

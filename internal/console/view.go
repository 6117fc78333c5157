package console

import (
	"github.com/rogerio-castellano/product-console/internal/form"
	"github.com/rogerio-castellano/product-console/internal/models"
)

// MemoryView is a View that keeps everything in memory.
type MemoryView struct {
	form.Values
	Message string
	Results []models.Product
}

func NewMemoryView() *MemoryView {
	return &MemoryView{Values: form.Values{}}
}

func (v *MemoryView) Flash(message string) {
	v.Message = message
}

func (v *MemoryView) ShowResults(products []models.Product) {
	v.Results = products
}

package form

import (
	"fmt"
	"math"
	"strconv"

	"github.com/rogerio-castellano/product-console/internal/models"
	"github.com/rogerio-castellano/product-console/internal/query"
)

// FieldError reports a form value that could not be turned into a request.
type FieldError struct {
	Field  Field
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// UpdateFormData copies a product into the form.
func UpdateFormData(f Form, p models.Product) {
	f.SetValue(FieldID, string(p.Key()))
	f.SetValue(FieldName, p.Name)
	f.SetValue(FieldDescription, p.Description)
	f.SetValue(FieldPrice, FormatPrice(p.Price))
	f.SetValue(FieldInventory, FormatInventory(p.Inventory))
	f.SetValue(FieldOwner, p.Owner)
	f.SetValue(FieldCategory, p.Category)
}

// ClearFormData empties the product fields. The id is left alone.
func ClearFormData(f Form) {
	f.SetValue(FieldName, "")
	f.SetValue(FieldDescription, "")
	f.SetValue(FieldPrice, "")
	f.SetValue(FieldInventory, "")
	f.SetValue(FieldOwner, "")
	f.SetValue(FieldCategory, "")
}

// ReadFilter takes the search fields from the form.
func ReadFilter(f Form) query.FilterInput {
	return query.FilterInput{
		Name:     f.Value(FieldName),
		Price:    f.Value(FieldPrice),
		Owner:    f.Value(FieldOwner),
		Category: f.Value(FieldCategory),
	}
}

// ReadProduct builds a create/update body from the form. The id is not
// included; callers that update set it themselves.
func ReadProduct(f Form) (models.ProductRequest, error) {
	req := models.ProductRequest{
		Name:        f.Value(FieldName),
		Description: f.Value(FieldDescription),
		Owner:       f.Value(FieldOwner),
		Category:    f.Value(FieldCategory),
	}

	if s := f.Value(FieldPrice); s != "" {
		price, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
			return models.ProductRequest{}, &FieldError{Field: FieldPrice, Reason: "must be a number"}
		}
		req.Price = &price
	}
	if s := f.Value(FieldInventory); s != "" {
		inventory, err := strconv.Atoi(s)
		if err != nil {
			return models.ProductRequest{}, &FieldError{Field: FieldInventory, Reason: "must be a whole number"}
		}
		req.Inventory = &inventory
	}
	return req, nil
}

// ReadAmount parses the purchase amount field.
func ReadAmount(f Form) (int, error) {
	amount, err := strconv.Atoi(f.Value(FieldAmount))
	if err != nil || amount <= 0 {
		return 0, &FieldError{Field: FieldAmount, Reason: "must be a positive whole number"}
	}
	return amount, nil
}

func FormatPrice(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'f', -1, 64)
}

func FormatInventory(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

package handlers

import (
	"github.com/rogerio-castellano/product-console/internal/form"
	"github.com/rogerio-castellano/product-console/internal/models"
)

var templateFuncs = map[string]any{
	"price":     form.FormatPrice,
	"inventory": form.FormatInventory,
	"key": func(p models.Product) string {
		return string(p.Key())
	},
}

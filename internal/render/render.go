// Package render draws console state for a terminal.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rogerio-castellano/product-console/internal/form"
	"github.com/rogerio-castellano/product-console/internal/models"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("105")).
			Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	labelStyle  = lipgloss.NewStyle().Bold(true).Width(12)
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// ResultColumns are the columns of the search results table.
var ResultColumns = []string{"ID", "Name", "Price", "Category", "Owner"}

// Results renders products the way the console's results table lists them.
func Results(products []models.Product) string {
	if len(products) == 0 {
		return "No products found"
	}

	rows := make([][]string, 0, len(products))
	for _, p := range products {
		rows = append(rows, []string{
			string(p.Key()),
			p.Name,
			form.FormatPrice(p.Price),
			p.Category,
			p.Owner,
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(ResultColumns...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	return t.String()
}

// Form renders every non-empty form field as a labelled line.
func Form(f form.Form) string {
	var b strings.Builder
	for _, field := range form.Fields {
		v := f.Value(field)
		if v == "" {
			continue
		}
		fmt.Fprintf(&b, "%s%s\n", labelStyle.Render(string(field)), v)
	}
	return b.String()
}

// Flash renders the flash message, highlighting failures.
func Flash(message string, failed bool) string {
	if message == "" {
		return ""
	}
	if failed {
		return errStyle.Render(message)
	}
	return okStyle.Render(message)
}

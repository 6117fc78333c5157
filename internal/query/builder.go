package query

import (
	"net/url"
	"strings"
)

// FilterInput holds the optional search fields read from the form.
// An empty string means the field does not constrain the search.
type FilterInput struct {
	Name     string
	Price    string
	Owner    string
	Category string
}

// Builder accumulates key=value tokens, separating them with '&'.
type Builder struct {
	sb strings.Builder
}

// Add appends key=value, preceded by '&' unless it is the first token.
func (b *Builder) Add(key, value string) {
	if b.sb.Len() > 0 {
		b.sb.WriteByte('&')
	}
	b.sb.WriteString(key)
	b.sb.WriteByte('=')
	b.sb.WriteString(value)
}

func (b *Builder) String() string {
	return b.sb.String()
}

// Build returns the query string understood by the products list endpoint.
// A price becomes an equal-bounds low/high range. Tokens are emitted in the
// order price, name, category, owner; values are passed through untouched.
func Build(f FilterInput) string {
	return build(f, func(s string) string { return s })
}

// Escaped is Build with every value query-escaped, ready to be placed in a URL.
func Escaped(f FilterInput) string {
	return build(f, url.QueryEscape)
}

func build(f FilterInput, enc func(string) string) string {
	var b Builder
	if f.Price != "" {
		b.Add("low", enc(f.Price))
		b.Add("high", enc(f.Price))
	}
	if f.Name != "" {
		b.Add("name", enc(f.Name))
	}
	if f.Category != "" {
		b.Add("category", enc(f.Category))
	}
	if f.Owner != "" {
		b.Add("owner", enc(f.Owner))
	}
	return b.String()
}

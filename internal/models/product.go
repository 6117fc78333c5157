package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ProductID is a product identifier as the products API returns it. It
// accepts both JSON numbers and strings.
type ProductID string

func (id *ProductID) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ProductID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("product id: %w", err)
	}
	*id = ProductID(n.String())
	return nil
}

// Canonical returns integer ids in their plain decimal form, so "007" and
// "+7" both become "7". Other ids are returned unchanged.
func (id ProductID) Canonical() ProductID {
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return ProductID(strconv.FormatInt(n, 10))
	}
	return id
}

// MarshalJSON writes integer ids as numbers and anything else as a string.
func (id ProductID) MarshalJSON() ([]byte, error) {
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(strconv.FormatInt(n, 10)), nil
	}
	return json.Marshal(string(id))
}

// Product represents a product as returned by the products API.
type Product struct {
	ID          ProductID `json:"id,omitempty"`
	LegacyID    ProductID `json:"_id,omitempty"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       *float64  `json:"price"`
	Inventory   *int      `json:"inventory"`
	Owner       string    `json:"owner"`
	Category    string    `json:"category"`
}

// Key returns the product identifier, preferring id over _id.
func (p Product) Key() ProductID {
	if p.ID != "" {
		return p.ID
	}
	return p.LegacyID
}

// ProductRequest is the body sent when creating or updating a product.
// Every key is always present; empty numbers are sent as null.
type ProductRequest struct {
	ID          ProductID `json:"id,omitempty"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       *float64  `json:"price"`
	Inventory   *int      `json:"inventory"`
	Owner       string    `json:"owner"`
	Category    string    `json:"category"`
}

package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rogerio-castellano/product-console/internal/models"
	"github.com/rogerio-castellano/product-console/internal/query"
)

const productsPath = "products"

func productPath(id models.ProductID) string {
	return productsPath + "/" + url.PathEscape(string(id))
}

// List returns the products matching rawQuery, which is appended to the
// collection URL as is. An empty query lists everything.
func (c *Client) List(ctx context.Context, rawQuery string) ([]models.Product, error) {
	var products []models.Product
	if _, err := c.do(ctx, http.MethodGet, productsPath, rawQuery, nil, &products); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

// Search lists the products matching the filter.
func (c *Client) Search(ctx context.Context, f query.FilterInput) ([]models.Product, error) {
	return c.List(ctx, query.Escaped(f))
}

// Get retrieves a single product.
func (c *Client) Get(ctx context.Context, id models.ProductID) (models.Product, error) {
	var p models.Product
	if _, err := c.do(ctx, http.MethodGet, productPath(id), "", nil, &p); err != nil {
		return models.Product{}, fmt.Errorf("get product %s: %w", id, err)
	}
	return p, nil
}

// Created is the result of a create call.
type Created struct {
	Product models.Product
	// Location is the URL of the new product, when the server sent one.
	Location string
}

// Create posts a new product.
func (c *Client) Create(ctx context.Context, req models.ProductRequest) (Created, error) {
	req.ID = ""
	var p models.Product
	header, err := c.do(ctx, http.MethodPost, productsPath, "", req, &p)
	if err != nil {
		return Created{}, fmt.Errorf("create product: %w", err)
	}
	return Created{Product: p, Location: header.Get("Location")}, nil
}

// Update replaces the product stored under id.
func (c *Client) Update(ctx context.Context, id models.ProductID, req models.ProductRequest) (models.Product, error) {
	req.ID = id
	var p models.Product
	if _, err := c.do(ctx, http.MethodPut, productPath(id), "", req, &p); err != nil {
		return models.Product{}, fmt.Errorf("update product %s: %w", id, err)
	}
	return p, nil
}

// Delete removes a product.
func (c *Client) Delete(ctx context.Context, id models.ProductID) error {
	if _, err := c.do(ctx, http.MethodDelete, productPath(id), "", nil, nil); err != nil {
		return fmt.Errorf("delete product %s: %w", id, err)
	}
	return nil
}

// Purchase buys amount units of a product.
func (c *Client) Purchase(ctx context.Context, id models.ProductID, amount int) (models.PurchaseResult, error) {
	req := models.PurchaseRequest{ID: id, Amount: amount}
	var res models.PurchaseResult
	if _, err := c.do(ctx, http.MethodPost, productPath(id)+"/purchase", "", req, &res); err != nil {
		return models.PurchaseResult{}, fmt.Errorf("purchase product %s: %w", id, err)
	}
	return res, nil
}

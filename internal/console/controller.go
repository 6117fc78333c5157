// Package console implements the actions behind the product form buttons.
package console

import (
	"context"
	"errors"
	"strings"

	"github.com/rogerio-castellano/product-console/internal/client"
	"github.com/rogerio-castellano/product-console/internal/form"
	"github.com/rogerio-castellano/product-console/internal/models"
	"github.com/rogerio-castellano/product-console/internal/query"
	"go.uber.org/zap"
)

const (
	MsgSuccess = "Success"
	MsgDeleted = "Product has been Deleted!"
)

// ProductService is the remote products resource.
type ProductService interface {
	Search(ctx context.Context, f query.FilterInput) ([]models.Product, error)
	Get(ctx context.Context, id models.ProductID) (models.Product, error)
	Create(ctx context.Context, req models.ProductRequest) (client.Created, error)
	Update(ctx context.Context, id models.ProductID, req models.ProductRequest) (models.Product, error)
	Delete(ctx context.Context, id models.ProductID) error
	Purchase(ctx context.Context, id models.ProductID, amount int) (models.PurchaseResult, error)
}

// View is what an action reads from and renders into.
type View interface {
	form.Form
	// Flash replaces the notification shown to the user.
	Flash(message string)
	// ShowResults replaces the search results table.
	ShowResults(products []models.Product)
}

// Controller runs form actions against a ProductService.
type Controller struct {
	products ProductService
	logger   *zap.Logger
}

func New(products ProductService, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{products: products, logger: logger}
}

// Message returns the user-facing text for an action error.
func Message(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	var fieldErr *form.FieldError
	if errors.As(err, &fieldErr) {
		return fieldErr.Error()
	}
	return err.Error()
}

func (c *Controller) fail(v View, action string, err error) error {
	c.logger.Info("action failed", zap.String("action", action), zap.Error(err))
	v.Flash(Message(err))
	return err
}

func formID(v View) (models.ProductID, error) {
	id := strings.TrimSpace(v.Value(form.FieldID))
	if id == "" {
		return "", &form.FieldError{Field: form.FieldID, Reason: "is required"}
	}
	return models.ProductID(id), nil
}

// Search lists the products matching the form's filter fields, shows them
// all and copies the first one into the form.
func (c *Controller) Search(ctx context.Context, v View) error {
	filter := form.ReadFilter(v)
	products, err := c.products.Search(ctx, filter)
	if err != nil {
		return c.fail(v, "search", err)
	}

	v.ShowResults(products)
	if len(products) > 0 {
		form.UpdateFormData(v, products[0])
	}
	c.logger.Debug("search",
		zap.String("query", query.Build(filter)),
		zap.Int("results", len(products)))
	v.Flash(MsgSuccess)
	return nil
}

// Create posts the form as a new product.
func (c *Controller) Create(ctx context.Context, v View) error {
	req, err := form.ReadProduct(v)
	if err != nil {
		return c.fail(v, "create", err)
	}
	created, err := c.products.Create(ctx, req)
	if err != nil {
		return c.fail(v, "create", err)
	}
	form.UpdateFormData(v, created.Product)
	c.logger.Info("product created",
		zap.String("id", string(created.Product.Key())),
		zap.String("location", created.Location))
	v.Flash(MsgSuccess)
	return nil
}

// Retrieve loads the product named by the id field.
func (c *Controller) Retrieve(ctx context.Context, v View) error {
	id, err := formID(v)
	if err != nil {
		form.ClearFormData(v)
		return c.fail(v, "retrieve", err)
	}
	p, err := c.products.Get(ctx, id)
	if err != nil {
		form.ClearFormData(v)
		return c.fail(v, "retrieve", err)
	}
	form.UpdateFormData(v, p)
	v.Flash(MsgSuccess)
	return nil
}

// Update saves the form over the product named by the id field.
func (c *Controller) Update(ctx context.Context, v View) error {
	id, err := formID(v)
	if err != nil {
		return c.fail(v, "update", err)
	}
	req, err := form.ReadProduct(v)
	if err != nil {
		return c.fail(v, "update", err)
	}
	p, err := c.products.Update(ctx, id, req)
	if err != nil {
		return c.fail(v, "update", err)
	}
	form.UpdateFormData(v, p)
	v.Flash(MsgSuccess)
	return nil
}

// Delete removes the product named by the id field.
func (c *Controller) Delete(ctx context.Context, v View) error {
	id, err := formID(v)
	if err != nil {
		return c.fail(v, "delete", err)
	}
	if err := c.products.Delete(ctx, id); err != nil {
		return c.fail(v, "delete", err)
	}
	form.ClearFormData(v)
	c.logger.Info("product deleted", zap.String("id", string(id)))
	v.Flash(MsgDeleted)
	return nil
}

// Clear empties the form, including the id, and the flash.
func (c *Controller) Clear(_ context.Context, v View) error {
	v.SetValue(form.FieldID, "")
	form.ClearFormData(v)
	v.Flash("")
	return nil
}

// Purchase buys the amount in the amount field and reloads the product.
func (c *Controller) Purchase(ctx context.Context, v View) error {
	id, err := formID(v)
	if err != nil {
		return c.fail(v, "purchase", err)
	}
	amount, err := form.ReadAmount(v)
	if err != nil {
		return c.fail(v, "purchase", err)
	}
	if _, err := c.products.Purchase(ctx, id, amount); err != nil {
		return c.fail(v, "purchase", err)
	}
	p, err := c.products.Get(ctx, id)
	if err != nil {
		return c.fail(v, "purchase", err)
	}
	form.UpdateFormData(v, p)
	v.SetValue(form.FieldAmount, "")
	c.logger.Info("product purchased", zap.String("id", string(id)), zap.Int("amount", amount))
	v.Flash(MsgSuccess)
	return nil
}

// Action is one form button.
type Action func(ctx context.Context, v View) error

// Actions maps action names to controller methods.
func (c *Controller) Actions() map[string]Action {
	return map[string]Action{
		"search":   c.Search,
		"create":   c.Create,
		"retrieve": c.Retrieve,
		"update":   c.Update,
		"delete":   c.Delete,
		"clear":    c.Clear,
		"purchase": c.Purchase,
	}
}

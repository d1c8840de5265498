package supplier

import (
	"context"
	"errors"

	"storefront_poc/internal/core"
	"storefront_poc/internal/logger"
	"storefront_poc/internal/services"
	"storefront_poc/pkg"
)

// BodyTemplate is the template of the supplier detail section
const BodyTemplate = "supplier/detail-body"

// Renderer renders a named template
type Renderer interface {
	Render(name string, data any) (string, error)
}

// Client renders the supplier detail section
type Client struct {
	suppliers services.SupplierLookup
	renderer  Renderer
}

// NewClient creates a supplier detail client
func NewClient(suppliers services.SupplierLookup, renderer Renderer) *Client {
	return &Client{suppliers: suppliers, renderer: renderer}
}

// Body renders the supplier. Lookup failures end up in the view's error
// list and the section is rendered without a supplier.
func (c *Client) Body(ctx context.Context, view *core.View, supplierID string) (string, error) {
	supplier, err := c.suppliers.GetItem(ctx, supplierID, []string{pkg.DomainMedia, pkg.DomainText})
	if err != nil {
		if !errors.Is(err, services.ErrSupplierNotFound) {
			return "", err
		}
		logger.Debug().Err(err).Str("supplier_id", supplierID).Msg("supplier lookup failed")
		view.AddError(err.Error())
	}

	return c.renderer.Render(BodyTemplate, map[string]any{
		"T":        view.T,
		"View":     view,
		"Supplier": supplier,
	})
}

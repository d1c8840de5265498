package services

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"storefront_poc/pkg"
)

// ErrProductNotFound is returned for unknown product IDs
var ErrProductNotFound = errors.New("product not found")

// ProductLookup returns a product aggregate including the related items of
// the given domains
type ProductLookup interface {
	GetItem(ctx context.Context, id string, domains []string) (*pkg.Product, error)
}

// ProductService handles product operations
type ProductService struct {
	products map[string]pkg.Product
}

// NewProductService creates service with simple mock data
func NewProductService() *ProductService {
	return NewProductServiceWith(mockProducts())
}

// NewProductServiceWith creates a service serving the given products
func NewProductServiceWith(products []pkg.Product) *ProductService {
	ps := &ProductService{products: make(map[string]pkg.Product, len(products))}
	for _, product := range products {
		ps.products[product.ID] = product
	}
	return ps
}

// GetItem returns the product with the related items of the requested
// domains only
func (ps *ProductService) GetItem(ctx context.Context, id string, domains []string) (*pkg.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	product, ok := ps.products[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}

	item := pkg.Product{
		ID:         product.ID,
		Code:       product.Code,
		Label:      product.Label,
		SupplierID: product.SupplierID,
		Expires:    product.Expires,
	}
	if slices.Contains(domains, pkg.DomainMedia) {
		item.Media = slices.Clone(product.Media)
	}
	if slices.Contains(domains, pkg.DomainPrice) {
		item.Prices = slices.Clone(product.Prices)
	}
	if slices.Contains(domains, pkg.DomainText) {
		item.Texts = slices.Clone(product.Texts)
	}
	if slices.Contains(domains, pkg.DomainAttribute) && product.Attributes != nil {
		item.Attributes = make(map[string]string, len(product.Attributes))
		for key, value := range product.Attributes {
			item.Attributes[key] = value
		}
	}
	return &item, nil
}

func mockProducts() []pkg.Product {
	return []pkg.Product{
		{
			ID:    "nb001",
			Code:  "macbook-pro",
			Label: "MacBook Pro",
			Media: []pkg.MediaItem{
				{ID: "m-nb001", Type: "default", URL: "/media/nb001.jpg", Preview: "/media/nb001-s.jpg", Label: "MacBook Pro"},
			},
			Prices: []pkg.PriceItem{
				{ID: "pr-nb001", Currency: "EUR", Value: 1999.00, TaxRate: 19, Quantity: 1},
			},
			Texts: []pkg.TextItem{
				{ID: "t-nb001-name", Type: "name", Language: "en", Content: "MacBook Pro 14"},
				{ID: "t-nb001-short", Type: "short", Language: "en", Content: "Notebook for heavy workloads"},
			},
			Attributes: map[string]string{"color": "space grey"},
			SupplierID: "sup-apple",
		},
		{
			ID:    "nb002",
			Code:  "thinkpad-x1",
			Label: "ThinkPad X1",
			Media: []pkg.MediaItem{
				{ID: "m-nb002", Type: "default", URL: "/media/nb002.jpg", Preview: "/media/nb002-s.jpg", Label: "ThinkPad X1"},
			},
			Prices: []pkg.PriceItem{
				{ID: "pr-nb002", Currency: "EUR", Value: 1599.00, TaxRate: 19, Quantity: 1},
			},
			Texts: []pkg.TextItem{
				{ID: "t-nb002-name", Type: "name", Language: "en", Content: "ThinkPad X1 Carbon"},
				{ID: "t-nb002-short", Type: "short", Language: "en", Content: "Business notebook"},
			},
			SupplierID: "sup-lenovo",
		},
		{
			ID:    "pc001",
			Code:  "imac-24",
			Label: "iMac 24-inch",
			Prices: []pkg.PriceItem{
				{ID: "pr-pc001", Currency: "EUR", Value: 1499.00, TaxRate: 19, Quantity: 1},
			},
			Texts: []pkg.TextItem{
				{ID: "t-pc001-short", Type: "short", Language: "en", Content: "Desktop computer"},
			},
			SupplierID: "sup-apple",
		},
		{
			ID:    "acc001",
			Code:  "magic-mouse",
			Label: "Magic Mouse",
			Prices: []pkg.PriceItem{
				{ID: "pr-acc001", Currency: "EUR", Value: 99.00, TaxRate: 19, Quantity: 1},
			},
			Texts: []pkg.TextItem{
				{ID: "t-acc001-short", Type: "short", Language: "en", Content: "Wireless mouse"},
			},
			SupplierID: "sup-apple",
		},
		{
			ID:    "bk001",
			Code:  "go-book",
			Label: "The Go Programming Language",
			Prices: []pkg.PriceItem{
				{ID: "pr-bk001", Currency: "EUR", Value: 39.90, TaxRate: 7, Quantity: 1},
			},
		},
	}
}

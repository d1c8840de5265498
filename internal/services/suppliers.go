package services

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"storefront_poc/pkg"
)

// ErrSupplierNotFound is returned for unknown supplier IDs
var ErrSupplierNotFound = errors.New("supplier not found")

// SupplierLookup returns a supplier including the related items of the
// given domains
type SupplierLookup interface {
	GetItem(ctx context.Context, id string, domains []string) (*pkg.Supplier, error)
}

// SupplierService serves suppliers from memory
type SupplierService struct {
	suppliers map[string]pkg.Supplier
}

// NewSupplierService creates service with simple mock data
func NewSupplierService() *SupplierService {
	return NewSupplierServiceWith([]pkg.Supplier{
		{
			ID:    "sup-apple",
			Code:  "apple",
			Label: "Apple",
			Media: []pkg.MediaItem{
				{ID: "m-apple", Type: "default", URL: "/media/apple.png", Preview: "/media/apple-s.png", Label: "Apple logo"},
			},
			Texts: []pkg.TextItem{
				{ID: "t-apple-short", Type: "short", Language: "en", Content: "Computers, phones and accessories"},
				{ID: "t-apple-long", Type: "long", Language: "en", Content: "Apple designs consumer electronics, software and online services."},
			},
		},
		{
			ID:    "sup-lenovo",
			Code:  "lenovo",
			Label: "Lenovo",
			Texts: []pkg.TextItem{
				{ID: "t-lenovo-short", Type: "short", Language: "en", Content: "Business notebooks"},
			},
		},
	})
}

// NewSupplierServiceWith creates a service serving the given suppliers
func NewSupplierServiceWith(suppliers []pkg.Supplier) *SupplierService {
	ss := &SupplierService{suppliers: make(map[string]pkg.Supplier, len(suppliers))}
	for _, supplier := range suppliers {
		ss.suppliers[supplier.ID] = supplier
	}
	return ss
}

// GetItem returns the supplier with the related items of the requested
// domains only
func (ss *SupplierService) GetItem(ctx context.Context, id string, domains []string) (*pkg.Supplier, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	supplier, ok := ss.suppliers[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSupplierNotFound, id)
	}

	item := pkg.Supplier{ID: supplier.ID, Code: supplier.Code, Label: supplier.Label}
	if slices.Contains(domains, pkg.DomainMedia) {
		item.Media = slices.Clone(supplier.Media)
	}
	if slices.Contains(domains, pkg.DomainText) {
		item.Texts = slices.Clone(supplier.Texts)
	}
	return &item, nil
}

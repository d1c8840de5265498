package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"storefront_poc/internal/storage"
	"storefront_poc/pkg"
)

// BasketSessionKey is the session key of the current basket
const BasketSessionKey = "order/basket"

// Basket parts that can be checked before an order is placed
const (
	PartProduct = 1 << iota
	PartAddress
	PartService

	PartsAll = PartProduct | PartAddress | PartService
)

// ErrBasketIncomplete is returned by Check for missing basket parts
var ErrBasketIncomplete = errors.New("basket incomplete")

// BasketController manages the basket of a session
type BasketController interface {
	Get(ctx context.Context, sessionID string) (*pkg.Basket, error)
	Save(ctx context.Context, sessionID string, basket *pkg.Basket) error
	SetComment(ctx context.Context, sessionID, comment string) error
	Check(ctx context.Context, sessionID string, parts int) error
}

// BasketService keeps baskets in the session store
type BasketService struct {
	sessions storage.SessionStore
}

// NewBasketService creates a basket service on top of the session store
func NewBasketService(sessions storage.SessionStore) *BasketService {
	return &BasketService{sessions: sessions}
}

// Get returns the basket of the session, an empty one if none exists yet
func (bs *BasketService) Get(ctx context.Context, sessionID string) (*pkg.Basket, error) {
	basket := &pkg.Basket{}
	if _, err := bs.sessions.Get(ctx, sessionID, BasketSessionKey, basket); err != nil {
		return nil, fmt.Errorf("failed to load basket: %w", err)
	}
	if basket.Addresses == nil {
		basket.Addresses = make(map[string]pkg.Address)
	}
	return basket, nil
}

// Save stores the basket in the session
func (bs *BasketService) Save(ctx context.Context, sessionID string, basket *pkg.Basket) error {
	if err := bs.sessions.Set(ctx, sessionID, BasketSessionKey, basket); err != nil {
		return fmt.Errorf("failed to save basket: %w", err)
	}
	return nil
}

// SetComment sets the customer comment and saves the basket
func (bs *BasketService) SetComment(ctx context.Context, sessionID, comment string) error {
	basket, err := bs.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	basket.Comment = comment
	return bs.Save(ctx, sessionID, basket)
}

// Check verifies that the requested parts of the basket are complete
func (bs *BasketService) Check(ctx context.Context, sessionID string, parts int) error {
	basket, err := bs.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	return CheckBasket(basket, parts)
}

// CheckBasket verifies that the requested parts of basket are complete
func CheckBasket(basket *pkg.Basket, parts int) error {
	if parts&PartProduct != 0 && len(basket.Products) == 0 {
		return fmt.Errorf("%w: no products", ErrBasketIncomplete)
	}
	if parts&PartAddress != 0 {
		if _, ok := basket.Address(pkg.AddressPayment); !ok {
			return fmt.Errorf("%w: no payment address", ErrBasketIncomplete)
		}
	}
	if parts&PartService != 0 {
		for _, serviceType := range []string{"delivery", "payment"} {
			found := false
			for _, service := range basket.Services {
				if service.Type == serviceType {
					found = true
					break
				}
			}
			if !found {
				return fmt.Errorf("%w: no %s option", ErrBasketIncomplete, serviceType)
			}
		}
	}
	return nil
}

// TaxRates sums up the product prices per tax rate. Prices include tax.
func TaxRates(basket *pkg.Basket) []pkg.TaxRate {
	if basket == nil {
		return nil
	}

	totals := make(map[float64]float64)
	for _, product := range basket.Products {
		totals[product.TaxRate] += product.Price * float64(product.Quantity)
	}

	rates := make([]pkg.TaxRate, 0, len(totals))
	for rate, gross := range totals {
		net := gross / (1 + rate/100)
		rates = append(rates, pkg.TaxRate{
			Rate:  rate,
			Net:   round(net),
			Tax:   round(gross - net),
			Gross: round(gross),
		})
	}
	sort.Slice(rates, func(i, j int) bool { return rates[i].Rate < rates[j].Rate })
	return rates
}

func round(value float64) float64 {
	return math.Round(value*100) / 100
}

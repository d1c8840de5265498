package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storefront_poc/pkg"
)

// ErrCustomerNotFound is returned when no customer matches
var ErrCustomerNotFound = errors.New("customer not found")

// CustomerFinder looks up registered customers
type CustomerFinder interface {
	FindByEmail(ctx context.Context, email string) (*pkg.Customer, error)
}

// CustomerService serves customers from memory
type CustomerService struct {
	byEmail map[string]pkg.Customer
}

// NewCustomerService creates a service serving the given customers
func NewCustomerService(customers ...pkg.Customer) *CustomerService {
	cs := &CustomerService{byEmail: make(map[string]pkg.Customer, len(customers))}
	for _, customer := range customers {
		cs.byEmail[strings.ToLower(customer.Email)] = customer
	}
	return cs
}

// FindByEmail returns the customer registered with the e-mail address
func (cs *CustomerService) FindByEmail(ctx context.Context, email string) (*pkg.Customer, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: empty e-mail address", ErrCustomerNotFound)
	}
	customer, ok := cs.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCustomerNotFound, email)
	}
	return &customer, nil
}

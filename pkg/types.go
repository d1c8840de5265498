package pkg

import (
	"time"
)

// Storefront domain types shared by the services and the fragment clients

// Domain names of related items that can be fetched together with an item
const (
	DomainAttribute = "attribute"
	DomainMedia     = "media"
	DomainPrice     = "price"
	DomainText      = "text"
	DomainSupplier  = "supplier"
)

// MediaItem represents an image or document attached to an item
type MediaItem struct {
	ID      string `json:"id"`
	Type    string `json:"type"` // default, variant, ...
	URL     string `json:"url"`
	Preview string `json:"preview"`
	Label   string `json:"label"`
}

// PriceItem represents one price of an item
type PriceItem struct {
	ID       string  `json:"id"`
	Currency string  `json:"currency"`
	Value    float64 `json:"value"`
	Costs    float64 `json:"costs"`
	TaxRate  float64 `json:"tax_rate"`
	Quantity int     `json:"quantity"`
}

// TextItem represents a localized text of an item
type TextItem struct {
	ID       string `json:"id"`
	Type     string `json:"type"` // name, short, long
	Language string `json:"language"`
	Content  string `json:"content"`
}

// Product is the product aggregate returned by the product service.
// Related items are only populated for the domains requested.
type Product struct {
	ID         string            `json:"id"`
	Code       string            `json:"code"`
	Label      string            `json:"label"`
	Media      []MediaItem       `json:"media,omitempty"`
	Prices     []PriceItem       `json:"prices,omitempty"`
	Texts      []TextItem        `json:"texts,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
	SupplierID string            `json:"supplier_id,omitempty"`
	Expires    *time.Time        `json:"expires,omitempty"` // end of availability, nil for none
}

// TextsOf returns the product texts of the given type
func (p *Product) TextsOf(textType string) []TextItem {
	return filterTexts(p.Texts, textType)
}

// Supplier is the supplier aggregate returned by the supplier service
type Supplier struct {
	ID    string      `json:"id"`
	Code  string      `json:"code"`
	Label string      `json:"label"`
	Media []MediaItem `json:"media,omitempty"`
	Texts []TextItem  `json:"texts,omitempty"`
}

// TextsOf returns the supplier texts of the given type
func (s *Supplier) TextsOf(textType string) []TextItem {
	return filterTexts(s.Texts, textType)
}

func filterTexts(texts []TextItem, textType string) []TextItem {
	var result []TextItem
	for _, text := range texts {
		if text.Type == textType {
			result = append(result, text)
		}
	}
	return result
}

// Customer represents a registered shop customer
type Customer struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Address types of a basket
const (
	AddressPayment  = "payment"
	AddressDelivery = "delivery"
)

// Address represents a basket address
type Address struct {
	Type      string `json:"type"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	City      string `json:"city"`
}

// BasketProduct is one ordered product line
type BasketProduct struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	TaxRate   float64 `json:"tax_rate"`
}

// BasketService is a delivery or payment option chosen in the basket
type BasketService struct {
	Type  string  `json:"type"` // delivery, payment
	Code  string  `json:"code"`
	Costs float64 `json:"costs"`
}

// Basket is the current order of a session
type Basket struct {
	Products  []BasketProduct    `json:"products"`
	Addresses map[string]Address `json:"addresses"`
	Services  []BasketService    `json:"services"`
	Comment   string             `json:"comment"`
	Currency  string             `json:"currency"`
}

// Address returns the address of the given type
func (b *Basket) Address(addrType string) (Address, bool) {
	if b == nil || b.Addresses == nil {
		return Address{}, false
	}
	addr, ok := b.Addresses[addrType]
	return addr, ok
}

// TaxRate summarises the amounts of a basket sharing the same tax rate
type TaxRate struct {
	Rate  float64 `json:"rate"`
	Net   float64 `json:"net"`
	Tax   float64 `json:"tax"`
	Gross float64 `json:"gross"`
}

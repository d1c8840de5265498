package core

import (
	"slices"

	"storefront_poc/internal/i18n"
	"storefront_poc/pkg"
)

// Checkout step names
const (
	StepAddress  = "address"
	StepDelivery = "delivery"
	StepPayment  = "payment"
	StepSummary  = "summary"
)

// View carries the request-scoped state shared by the fragment clients.
// Clients read their input from it and leave their results on it.
type View struct {
	SessionID string
	// UserID is the logged-in customer, empty for guests
	UserID string
	// ActiveStep is the current checkout step
	ActiveStep string
	// ErrorList is shown on top of the current step
	ErrorList []string
	// SummaryErrorCodes maps form fields like "option.terms" to errors
	SummaryErrorCodes map[string]string

	Basket     *pkg.Basket
	CustomerID string
	TaxRates   []pkg.TaxRate

	T i18n.Translator
}

// NewView creates a view translating with t
func NewView(sessionID string, t i18n.Translator) *View {
	if t == nil {
		t = i18n.NewTranslator(i18n.Default())
	}
	return &View{
		SessionID:         sessionID,
		SummaryErrorCodes: make(map[string]string),
		T:                 t,
	}
}

// AddError prepends an error message to the error list
func (v *View) AddError(message string) {
	v.ErrorList = slices.Insert(v.ErrorList, 0, message)
}

package summary

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"storefront_poc/internal/core"
	"storefront_poc/internal/i18n"
	"storefront_poc/internal/logger"
	"storefront_poc/internal/services"
	"storefront_poc/pkg"
)

// Template names
const (
	BodyTemplate   = "checkout/summary-body"
	HeaderTemplate = "checkout/summary-header"
)

// TermsErrorCode is the SummaryErrorCodes entry of unaccepted terms
const TermsErrorCode = "option.terms"

// ErrInvalidForm is returned for malformed summary submissions
var ErrInvalidForm = errors.New("invalid summary form")

// Renderer renders a named template
type Renderer interface {
	Render(name string, data any) (string, error)
}

// Visible reports whether the summary step is shown for the active step:
// either the summary itself is active or both are merged onto one page.
func Visible(step string, onepage []string) bool {
	if step == core.StepSummary {
		return true
	}
	return slices.Contains(onepage, core.StepSummary) && slices.Contains(onepage, step)
}

// Client renders and processes the checkout summary step
type Client struct {
	basket    services.BasketController
	customers services.CustomerFinder
	renderer  Renderer
	onepage   []string
}

// NewClient creates a summary client. onepage lists the checkout steps
// merged onto a single page.
func NewClient(basket services.BasketController, customers services.CustomerFinder, renderer Renderer, onepage []string) *Client {
	return &Client{
		basket:    basket,
		customers: customers,
		renderer:  renderer,
		onepage:   onepage,
	}
}

// Header returns the header markup, empty if the step is not shown
func (c *Client) Header(ctx context.Context, view *core.View) (string, error) {
	if !Visible(view.ActiveStep, c.onepage) {
		return "", nil
	}
	return c.renderer.Render(HeaderTemplate, map[string]any{"T": view.T, "View": view})
}

// Body returns the summary step, empty if the step is not shown
func (c *Client) Body(ctx context.Context, view *core.View) (string, error) {
	if !Visible(view.ActiveStep, c.onepage) {
		return "", nil
	}
	if err := c.AddData(ctx, view); err != nil {
		return "", err
	}
	return c.renderer.Render(BodyTemplate, map[string]any{"T": view.T, "View": view})
}

// Process handles a summary submission. Unaccepted terms are reported
// through the view. Any returned error leaves the summary as active step.
func (c *Client) Process(ctx context.Context, view *core.View, form Form) (err error) {
	defer func() {
		if err != nil {
			view.ActiveStep = core.StepSummary
		}
	}()

	if form.Order == nil {
		return nil
	}
	if err := form.Validate(); err != nil {
		return err
	}

	if form.Comment != nil {
		if err := c.basket.SetComment(ctx, view.SessionID, *form.Comment); err != nil {
			return err
		}
	}

	if !form.TermsAccepted() {
		msg := view.T(i18n.MsgAcceptTerms)
		if view.SummaryErrorCodes == nil {
			view.SummaryErrorCodes = make(map[string]string)
		}
		view.SummaryErrorCodes[TermsErrorCode] = msg
		view.ActiveStep = core.StepSummary
		view.AddError(msg)
	}

	if err := c.basket.Check(ctx, view.SessionID, services.PartsAll); err != nil {
		return fmt.Errorf("checkout summary: %w", err)
	}
	return nil
}

// ErrorMessage returns the translated text shown to shoppers for an error
// returned by Process
func ErrorMessage(t i18n.Translator, err error) string {
	switch {
	case errors.Is(err, ErrInvalidForm):
		return t(i18n.MsgInvalidInput)
	case errors.Is(err, services.ErrBasketIncomplete):
		return t(i18n.MsgBasketIncomplete)
	default:
		return t(i18n.MsgUnexpectedError)
	}
}

// AddData puts the basket, the customer ID and the tax rates on the view.
// A guest's customer ID is looked up by the payment address e-mail; a
// failed lookup leaves it empty.
func (c *Client) AddData(ctx context.Context, view *core.View) error {
	basket, err := c.basket.Get(ctx, view.SessionID)
	if err != nil {
		return err
	}
	view.Basket = basket

	view.CustomerID = view.UserID
	if view.CustomerID == "" {
		view.CustomerID = c.guestCustomerID(ctx, basket)
	}

	view.TaxRates = services.TaxRates(basket)
	return nil
}

func (c *Client) guestCustomerID(ctx context.Context, basket *pkg.Basket) string {
	addr, ok := basket.Address(pkg.AddressPayment)
	if !ok {
		return ""
	}
	customer, err := c.customers.FindByEmail(ctx, addr.Email)
	if err != nil {
		logger.Debug().Err(err).Msg("no customer for payment address")
		return ""
	}
	return customer.ID
}

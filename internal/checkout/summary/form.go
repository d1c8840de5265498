package summary

import (
	"fmt"
	"net/url"

	"github.com/go-playground/validator/v10"
)

// Form field names
const (
	FieldOrder            = "cs_order"
	FieldComment          = "cs_comment"
	FieldOptionTerms      = "cs_option_terms"
	FieldOptionTermsValue = "cs_option_terms_value"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Form is the submitted summary step. Nil fields were not sent.
type Form struct {
	Order            *string
	Comment          *string `validate:"omitempty,max=2000"`
	OptionTerms      *string
	OptionTermsValue string  `validate:"omitempty,oneof=0 1"`
}

// FormFromValues reads the summary fields from request parameters
func FormFromValues(values url.Values) Form {
	form := Form{
		Order:       param(values, FieldOrder),
		Comment:     param(values, FieldComment),
		OptionTerms: param(values, FieldOptionTerms),
	}
	if value := param(values, FieldOptionTermsValue); value != nil {
		form.OptionTermsValue = *value
	}
	return form
}

func param(values url.Values, name string) *string {
	if !values.Has(name) {
		return nil
	}
	value := values.Get(name)
	return &value
}

// Validate checks the submitted values
func (f Form) Validate() error {
	if err := validate.Struct(f); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidForm, err)
	}
	return nil
}

// TermsAccepted reports whether the terms were either not asked for or
// accepted
func (f Form) TermsAccepted() bool {
	return f.OptionTerms == nil || f.OptionTermsValue == "1"
}

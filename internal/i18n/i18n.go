package i18n

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Message keys used by the fragment clients
const (
	MsgAcceptTerms     = "Please accept the terms and conditions"
	MsgLastSeen        = "Last seen"
	MsgSummary         = "Summary"
	MsgDescription     = "Description"
	MsgCustomerComment = "Your comment"
	MsgTaxRate         = "Incl. %.2f%% VAT"

	MsgInvalidInput     = "Please check your input"
	MsgBasketIncomplete = "Your basket is not complete yet"
	MsgUnexpectedError  = "An error occurred, please try again later"
)

var supported = []language.Tag{language.English, language.German}

var matcher = language.NewMatcher(supported)

func init() {
	de := language.German
	message.SetString(de, MsgAcceptTerms, "Bitte akzeptieren Sie die Allgemeinen Geschäftsbedingungen")
	message.SetString(de, MsgLastSeen, "Zuletzt angesehen")
	message.SetString(de, MsgSummary, "Übersicht")
	message.SetString(de, MsgDescription, "Beschreibung")
	message.SetString(de, MsgCustomerComment, "Ihr Kommentar")
	message.SetString(de, MsgTaxRate, "Inkl. %.2f%% MwSt.")
	message.SetString(de, MsgInvalidInput, "Bitte überprüfen Sie Ihre Eingaben")
	message.SetString(de, MsgBasketIncomplete, "Ihr Warenkorb ist noch nicht vollständig")
	message.SetString(de, MsgUnexpectedError, "Ein Fehler ist aufgetreten, bitte versuchen Sie es später erneut")
}

// Default returns the default language tag
func Default() language.Tag {
	return supported[0]
}

// Resolve returns the best supported tag for an Accept-Language header value
func Resolve(acceptLanguage string) language.Tag {
	acceptLanguage = strings.TrimSpace(acceptLanguage)
	if acceptLanguage == "" {
		return Default()
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return Default()
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return Default()
	}
	return supported[index]
}

// Translator formats messages for one language
type Translator func(key string, args ...any) string

// NewTranslator returns a translator for tag
func NewTranslator(tag language.Tag) Translator {
	printer := message.NewPrinter(tag)
	return func(key string, args ...any) string {
		return printer.Sprintf(key, args...)
	}
}

// Package classify maps raw document text to a document type so the
// right extraction schema gets used downstream.
package classify

import (
	"strings"

	"github.com/gautam-rahul-09/genai-verification-system/internal/model"
)

// saleDeedKeywords indicate a sale / property document. Checked first:
// a document carrying both sale-deed and loan keywords classifies as
// a sale deed.
var saleDeedKeywords = []string{
	"sale deed",
	"deed of sale",
	"sale consideration",
	"agreement for sale",
	"conveyance",
	"property described",
	"schedule a",
	"immovable property",
}

// loanDocKeywords indicate a loan sanction document
var loanDocKeywords = []string{
	"loan sanction",
	"sanction letter",
	"home loan",
	"loan amount",
	"sanctioned amount",
	"credit facility",
}

// Detect returns the document type for the given extracted text via
// case-insensitive substring search over the ordered keyword lists.
func Detect(text string) model.DocumentType {
	lower := strings.ToLower(text)

	for _, kw := range saleDeedKeywords {
		if strings.Contains(lower, kw) {
			return model.DocTypeSaleDeed
		}
	}

	for _, kw := range loanDocKeywords {
		if strings.Contains(lower, kw) {
			return model.DocTypeLoanDoc
		}
	}

	return model.DocTypeUnknown
}

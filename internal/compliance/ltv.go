// Package compliance applies regulatory loan-to-value ceilings to
// reconciled document values.
package compliance

import (
	"errors"

	"github.com/gautam-rahul-09/genai-verification-system/internal/model"
)

// ErrZeroPropertyValue signals an LTV division against a zero
// property value. Upstream validation should prevent this; the guard
// exists because this function cannot assume it did.
var ErrZeroPropertyValue = errors.New("property value is zero; cannot compute LTV")

// Evaluate computes the loan-to-value ratio and compares it to the
// configured ceiling. Compliant iff ltv <= maxLTV.
func Evaluate(loanAmount, propertyValue, maxLTV float64) (model.Verdict, error) {
	if propertyValue == 0 {
		return model.Verdict{}, ErrZeroPropertyValue
	}

	ltv := loanAmount / propertyValue

	return model.Verdict{
		LTV:       ltv,
		Threshold: maxLTV,
		Compliant: ltv <= maxLTV,
	}, nil
}

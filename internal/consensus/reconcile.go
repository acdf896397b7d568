// Package consensus decides a single trusted value from two
// independent model extractions, or routes the field to human review.
package consensus

import "math"

// DefaultTolerance is the relative difference below which two amounts
// count as the same value
const DefaultTolerance = 0.05

// ScaleMisreadRatios are the exact ratios treated as OCR/unit-scale
// misreads (thousands vs lakhs vs crores). When the numeric and words
// forms differ by exactly one of these factors, the words form is
// trusted: spelling out the wrong scale is much rarer than dropping
// or gaining a digit group. This is a documented business rule, not
// an approximation.
var ScaleMisreadRatios = []float64{10, 100}

// Reconcile cross-checks the numeric-form and words-form amounts
// extracted by one model with the default tolerance
func Reconcile(numeric, words *float64) *float64 {
	return ReconcileWithTolerance(numeric, words, DefaultTolerance)
}

// ReconcileWithTolerance returns the single trusted value for a field
// given its numeric and words forms:
//
//   - one side absent: the present side is authoritative
//   - relative difference within tolerance: numeric wins
//   - ratio exactly in ScaleMisreadRatios: words wins
//   - otherwise: nil, the field is irreconcilable
func ReconcileWithTolerance(numeric, words *float64, tolerance float64) *float64 {
	if numeric == nil {
		return words
	}
	if words == nil {
		return numeric
	}

	n, w := *numeric, *words
	if n == w {
		return numeric
	}

	bigger := math.Max(n, w)
	smaller := math.Min(n, w)

	if bigger > 0 && math.Abs(n-w)/bigger <= tolerance {
		return numeric
	}

	if smaller > 0 {
		ratio := bigger / smaller
		for _, misread := range ScaleMisreadRatios {
			if ratio == misread {
				return words
			}
		}
	}

	return nil
}

// RelativeDifference computes |a-b| / max(a,b), the agreement metric
// used both inside one model and between the two models
func RelativeDifference(a, b float64) float64 {
	bigger := math.Max(a, b)
	if bigger == 0 {
		return 0
	}
	return math.Abs(a-b) / bigger
}

// Package identity resolves whether name strings extracted from
// different documents denote the same person.
package identity

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gautam-rahul-09/genai-verification-system/internal/parse"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	nonAlphaRe   = regexp.MustCompile(`[^a-z\s]`)
	nonDigitRe   = regexp.MustCompile(`\D`)
)

// NormalizeName lowercases, collapses whitespace and strips everything
// outside [a-z ]. Returns "" for names with no usable characters.
func NormalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = whitespaceRe.ReplaceAllString(name, " ")
	name = nonAlphaRe.ReplaceAllString(name, "")
	return strings.TrimSpace(name)
}

// NamesMatch decides whether two free-text names denote the same
// person. After normalization, exact equality, substring containment,
// or ordered token containment counts as a match — the latter
// tolerates middle-name and honorific differences ("Rahul Kumar
// Sharma" vs "rahul sharma").
//
// Known limitation: containment is permissive and can false-positive
// on very short names.
func NamesMatch(name1, name2 string) bool {
	n1 := NormalizeName(name1)
	n2 := NormalizeName(name2)

	if n1 == "" || n2 == "" {
		return false
	}

	if n1 == n2 {
		return true
	}

	if strings.Contains(n1, n2) || strings.Contains(n2, n1) {
		return true
	}

	return tokensContained(n1, n2) || tokensContained(n2, n1)
}

// tokensContained reports whether every token of inner appears, in
// order, among the tokens of outer
func tokensContained(outer, inner string) bool {
	out := strings.Fields(outer)
	in := strings.Fields(inner)
	if len(in) == 0 || len(in) > len(out) {
		return false
	}

	i := 0
	for _, tok := range out {
		if tok == in[i] {
			i++
			if i == len(in) {
				return true
			}
		}
	}
	return false
}

// MaskAadhaar renders a 12-digit Aadhaar number as its last four
// digits behind a fixed mask. Any other length is passed through
// unmasked. Display helper only; never used for matching.
func MaskAadhaar(aadhaar string) string {
	if aadhaar == "" {
		return ""
	}

	digits := nonDigitRe.ReplaceAllString(aadhaar, "")
	if len(digits) == 12 {
		return "XXXX-XXXX-" + digits[8:]
	}

	return aadhaar
}

// FormatIndianUnits renders a rupee amount as a lakh/crore string:
// 3500000 → "35 lakh", 12000000 → "1.2 crore".
func FormatIndianUnits(amount float64) string {
	switch {
	case amount >= parse.Crore:
		return trimZeros(amount/parse.Crore) + " crore"
	case amount >= parse.Lakh:
		return trimZeros(amount/parse.Lakh) + " lakh"
	default:
		return trimZeros(amount)
	}
}

func trimZeros(f float64) string {
	s := fmt.Sprintf("%.2f", f)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

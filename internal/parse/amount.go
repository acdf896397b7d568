// Package parse normalizes monetary amounts extracted from Indian
// mortgage documents into canonical rupee values.
package parse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gautam-rahul-09/genai-verification-system/internal/model"
)

// Indian numbering multipliers
const (
	Lakh  = 100_000
	Crore = 10_000_000
)

var (
	croreRe  = regexp.MustCompile(`(\d+(\.\d+)?)\s*crore`)
	lakhRe   = regexp.MustCompile(`(\d+(\.\d+)?)\s*lakh`)
	numberRe = regexp.MustCompile(`\d+(\.\d+)?`)
)

// Amount converts an extracted value into a canonical rupee amount.
// Numeric input passes through as-is. Strings are normalized and may
// carry currency markers, digit-group commas and lakh/crore suffixes:
//
//	"6300000", "63,00,000", "₹63,00,000", "Rs. 63,00,000/-",
//	"63 lakh", "6.3 crore", "INR 74.50 Lakh"
//
// Returns nil for null or unparseable input.
func Amount(v model.Scalar) *float64 {
	if v.Num != nil {
		n := *v.Num
		return &n
	}
	if v.Str == nil {
		return nil
	}
	return AmountString(*v.Str)
}

// AmountString parses a textual monetary representation.
// Matching is first-match-wins: crore beats lakh beats a bare number,
// and only the first occurrence in the string is used.
func AmountString(s string) *float64 {
	text := strings.ToLower(strings.TrimSpace(s))

	// Strip currency markers and separators
	text = strings.ReplaceAll(text, "₹", "")
	text = strings.ReplaceAll(text, "rs.", "")
	text = strings.ReplaceAll(text, "rs", "")
	text = strings.ReplaceAll(text, "inr", "")
	text = strings.ReplaceAll(text, "/-", "")
	text = strings.ReplaceAll(text, ",", "")
	text = strings.TrimSpace(text)

	if m := croreRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.ParseFloat(m[1], 64); err == nil {
			n *= Crore
			return &n
		}
	}

	if m := lakhRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.ParseFloat(m[1], 64); err == nil {
			n *= Lakh
			return &n
		}
	}

	if m := numberRe.FindString(text); m != "" {
		if n, err := strconv.ParseFloat(m, 64); err == nil {
			return &n
		}
	}

	return nil
}

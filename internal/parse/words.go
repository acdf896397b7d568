package parse

import "strings"

// unitWords maps number words to literal values
var unitWords = map[string]float64{
	"zero": 0,
	"one":  1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
	"eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14,
	"fifteen": 15, "sixteen": 16, "seventeen": 17, "eighteen": 18,
	"nineteen": 19,
	"twenty": 20, "thirty": 30, "forty": 40, "fifty": 50,
	"sixty": 60, "seventy": 70, "eighty": 80, "ninety": 90,
}

// multiplierWords scale the running sub-total
var multiplierWords = map[string]float64{
	"hundred":  100,
	"thousand": 1000,
	"lakh":     Lakh,
	"lakhs":    Lakh,
	"crore":    Crore,
	"crores":   Crore,
}

// Words converts an amount spelled out in the Indian numbering idiom
// into a rupee value: "Thirty Five Lakhs" → 3500000, "One Thousand
// Five Hundred" → 1500. The accumulator carries a sub-total into each
// multiplier, so a bare "hundred" reads as 100. Unrecognized tokens
// are skipped; the numeric/words cross-check catches the damage when
// a skipped token mattered. Returns nil when nothing was recognized.
func Words(text string) *float64 {
	if text == "" {
		return nil
	}

	text = strings.ToLower(text)
	text = strings.ReplaceAll(text, "rupees", "")
	text = strings.ReplaceAll(text, "only", "")
	text = strings.TrimSpace(text)

	var total, current float64

	for _, token := range strings.Fields(text) {
		if v, ok := unitWords[token]; ok {
			current += v
			continue
		}
		if mult, ok := multiplierWords[token]; ok {
			if current == 0 {
				current = 1
			}
			current *= mult
			total += current
			current = 0
		}
	}

	total += current

	if total <= 0 {
		return nil
	}
	return &total
}

package recommend

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// NormalizeText prepares one review text for classification and keyword
// matching: NFKC normalization, control characters out, whitespace runs
// collapsed to single spaces. Scraped reviews routinely carry doubled
// spaces, stray newlines and fullwidth forms; the stored Review is never
// edited.
func NormalizeText(text string) string {
	normed := norm.NFKC.String(text)
	normed = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, normed)
	return strings.Join(strings.Fields(normed), " ")
}

// NormalizeAll normalizes a review batch, preserving order. Order
// matters: score attribution downstream is positional.
func NormalizeAll(texts []string) []string {
	out := make([]string, len(texts))
	for i, t := range texts {
		out[i] = NormalizeText(t)
	}
	return out
}

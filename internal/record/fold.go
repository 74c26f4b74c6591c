package record

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// StripDiacritics removes combining marks, turning "Gürsey" into "Gursey".
// Input that cannot be transformed is returned unchanged.
func StripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// FoldName lowercases a name and strips diacritics for comparison.
func FoldName(s string) string {
	return strings.ToLower(StripDiacritics(strings.TrimSpace(s)))
}

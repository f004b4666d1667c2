// CLAUDE:SUMMARY Unicode normalization (accent stripping, lowercasing, character whitelist, whitespace collapsing) for entity names.
package match

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize canonicalizes a raw entity name for comparison:
// accents are stripped (Büro -> buro), the result is lowercased, every rune
// that is not a letter, digit, whitespace, '&', '-' or '.' is dropped, and
// whitespace runs collapse to a single space. Empty input yields "".
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	stripped, _, _ := transform.String(stripAccents, strings.ToLower(s))

	var b strings.Builder
	b.Grow(len(stripped))
	space := false
	for _, r := range stripped {
		switch {
		case unicode.IsSpace(r):
			space = true
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '&' || r == '-' || r == '.':
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteRune(r)
		}
	}
	return b.String()
}

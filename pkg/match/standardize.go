// CLAUDE:SUMMARY Regex-driven canonicalization of legal-entity terms (AG, GmbH, und/&) on whole-word boundaries.
package match

import (
	"regexp"
	"strings"
)

// legalTerm maps every spelling variant of a legal term to its canonical
// form. Patterns are anchored and applied per whitespace-delimited token,
// so a variant never matches inside a longer token ("&" glued to other
// characters stays as-is).
type legalTerm struct {
	pattern   *regexp.Regexp
	canonical string
}

var legalTerms = []legalTerm{
	{regexp.MustCompile(`(?i)^(?:aktiengesellschaft|a\.g\.?|ag)$`), "ag"},
	{regexp.MustCompile(`(?i)^(?:g\.m\.b\.h\.?|gmbh)$`), "gmbh"},
	{regexp.MustCompile(`(?i)^(?:und|u\.|&)$`), "and"},
}

// Standardize rewrites legal-entity terms to their canonical short form,
// case-insensitively: AG variants -> "ag", GmbH variants -> "gmbh",
// "und"/"u."/"&" -> "and". Unmatched tokens pass through unchanged.
func Standardize(s string) string {
	if s == "" {
		return ""
	}
	fields := strings.Fields(s)
	for i, f := range fields {
		for _, lt := range legalTerms {
			if lt.pattern.MatchString(f) {
				fields[i] = lt.canonical
				break
			}
		}
	}
	return strings.Join(fields, " ")
}

// Preprocess is the full pipeline applied to catalog entries and queries
// alike: Normalize then Standardize.
func Preprocess(s string) string {
	return Standardize(Normalize(s))
}

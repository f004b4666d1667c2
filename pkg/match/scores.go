// CLAUDE:SUMMARY Edit-distance and token-set similarity ratios over processed entity names.
package match

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// editScore is the normalized Levenshtein ratio between two processed
// strings: 1 - distance/(len(a)+len(b)) over runes. Identical strings
// (including two empty ones) score 1.0.
func editScore(a, b string) float64 {
	la := len([]rune(a))
	lb := len([]rune(b))
	if la+lb == 0 {
		return 1.0
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1.0 - float64(dist)/float64(la+lb)
}

// tokenSetScore compares the whitespace token sets of two processed
// strings, tolerant of reordering and duplicate tokens. The sorted
// intersection is compared against each side's sorted intersection+rest,
// and the best of the three pairwise edit ratios wins, so a query whose
// tokens are a subset of an entry's tokens scores 1.0. Two empty sets
// score 1.0; exactly one empty set scores 0, even though the base-vs-base
// comparison would be a vacuous perfect match.
func tokenSetScore(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		if len(setA) == len(setB) {
			return 1.0
		}
		return 0.0
	}

	var common, restA, restB []string
	for tok := range setA {
		if setB[tok] {
			common = append(common, tok)
		} else {
			restA = append(restA, tok)
		}
	}
	for tok := range setB {
		if !setA[tok] {
			restB = append(restB, tok)
		}
	}
	sort.Strings(common)
	sort.Strings(restA)
	sort.Strings(restB)

	base := strings.Join(common, " ")
	full := func(rest []string) string {
		if base == "" {
			return strings.Join(rest, " ")
		}
		if len(rest) == 0 {
			return base
		}
		return base + " " + strings.Join(rest, " ")
	}
	sa := full(restA)
	sb := full(restB)

	best := editScore(sa, sb)
	if s := editScore(base, sa); s > best {
		best = s
	}
	if s := editScore(base, sb); s > best {
		best = s
	}
	return best
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range strings.Fields(s) {
		set[tok] = true
	}
	return set
}

// Package match scores free-text entity names against a fixed catalog of
// canonical names. Three signals (TF-IDF cosine similarity, Levenshtein
// ratio, token-set ratio) are combined per catalog entry into a single
// weighted confidence, and candidates are returned ranked.
//
// A Matcher is built once from the catalog, preprocesses and vectorizes it
// at construction, and is immutable afterwards: concurrent Match calls
// share no mutable state and need no locking.
package match

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Weights are the mixing coefficients for the three similarity signals.
// Each must lie in [0,1] and the three must sum to 1.0.
type Weights struct {
	TFIDF    float64 `yaml:"tfidf"`
	Edit     float64 `yaml:"edit"`
	TokenSet float64 `yaml:"token_set"`
}

// DefaultWeights mirror the tuning of the original matching service.
func DefaultWeights() Weights {
	return Weights{TFIDF: 0.4, Edit: 0.4, TokenSet: 0.2}
}

const weightSumTolerance = 1e-9

func (w Weights) validate() error {
	for _, v := range []float64{w.TFIDF, w.Edit, w.TokenSet} {
		if v < 0 || v > 1 {
			return &ConfigError{Reason: fmt.Sprintf("weight %v outside [0,1]", v)}
		}
	}
	if sum := w.TFIDF + w.Edit + w.TokenSet; math.Abs(sum-1.0) > weightSumTolerance {
		return &ConfigError{Reason: fmt.Sprintf("weights sum to %v, want 1.0", sum)}
	}
	return nil
}

// Candidate is one scored catalog entry for a query. All four numeric
// fields are rounded to 4 decimals; ranking happens on full precision
// before rounding.
type Candidate struct {
	Entity     string  `json:"entity"`
	Confidence float64 `json:"confidence"`
	TFIDF      float64 `json:"tfidf"`
	Edit       float64 `json:"edit"`
	TokenSet   float64 `json:"token_set"`
}

// Matcher holds the immutable catalog, its preprocessed form, and the
// fitted vector space model.
type Matcher struct {
	entities  []string
	processed []string
	model     *vectorModel
	weights   Weights
}

// NewMatcher builds a Matcher over the given canonical entities. The
// catalog must be non-empty; entries are kept in order and never mutated.
func NewMatcher(entities []string, weights Weights) (*Matcher, error) {
	if len(entities) == 0 {
		return nil, &ConfigError{Reason: "canonical entity catalog is empty"}
	}
	if err := weights.validate(); err != nil {
		return nil, err
	}

	processed := make([]string, len(entities))
	for i, e := range entities {
		processed[i] = Preprocess(e)
	}

	return &Matcher{
		entities:  append([]string(nil), entities...),
		processed: processed,
		model:     fitVectorModel(processed),
		weights:   weights,
	}, nil
}

// Size returns the number of catalog entries.
func (m *Matcher) Size() int {
	return len(m.entities)
}

// Entities returns a copy of the canonical catalog in original order.
func (m *Matcher) Entities() []string {
	return append([]string(nil), m.entities...)
}

// Match scores query against every catalog entry and returns the topN best
// candidates by descending confidence. Ties keep catalog order. topN is
// clamped to the catalog size; topN < 1 or a blank query is a
// ValidationError.
func (m *Matcher) Match(query string, topN int) ([]Candidate, error) {
	if strings.TrimSpace(query) == "" {
		return nil, &ValidationError{Reason: "query must not be empty"}
	}
	if topN < 1 {
		return nil, &ValidationError{Reason: fmt.Sprintf("top_n must be at least 1, got %d", topN)}
	}
	if topN > len(m.entities) {
		topN = len(m.entities)
	}

	pq := Preprocess(query)
	tfidf := m.model.cosineScores(pq)

	type scored struct {
		idx        int
		confidence float64
	}
	ranked := make([]scored, len(m.entities))
	edit := make([]float64, len(m.entities))
	token := make([]float64, len(m.entities))
	for i, pe := range m.processed {
		edit[i] = editScore(pq, pe)
		token[i] = tokenSetScore(pq, pe)
		ranked[i] = scored{
			idx:        i,
			confidence: m.weights.TFIDF*tfidf[i] + m.weights.Edit*edit[i] + m.weights.TokenSet*token[i],
		}
	}

	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].confidence > ranked[b].confidence
	})

	out := make([]Candidate, topN)
	for i := 0; i < topN; i++ {
		r := ranked[i]
		out[i] = Candidate{
			Entity:     m.entities[r.idx],
			Confidence: round4(r.confidence),
			TFIDF:      round4(tfidf[r.idx]),
			Edit:       round4(edit[r.idx]),
			TokenSet:   round4(token[r.idx]),
		}
	}
	return out, nil
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

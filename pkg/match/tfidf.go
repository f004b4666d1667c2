// CLAUDE:SUMMARY TF-IDF vector space model fitted once over the processed catalog, with cosine similarity scoring.
package match

import (
	"math"
	"strings"
)

// vectorModel is a TF-IDF vector space fitted over the processed catalog.
// Vocabulary covers every distinct whitespace token; weights are raw term
// frequency times smooth inverse document frequency, L2-normalized per row.
// Fitted once at Matcher construction, read-only afterwards.
type vectorModel struct {
	vocab   map[string]int // token -> column index
	idf     []float64      // per column
	rows    [][]float64    // one normalized vector per catalog entry
}

// fitVectorModel builds the model from the processed catalog entries.
func fitVectorModel(docs []string) *vectorModel {
	m := &vectorModel{vocab: make(map[string]int)}

	tokenized := make([][]string, len(docs))
	docFreq := make(map[string]int)
	for i, doc := range docs {
		tokens := strings.Fields(doc)
		tokenized[i] = tokens
		seen := make(map[string]bool, len(tokens))
		for _, tok := range tokens {
			if !seen[tok] {
				seen[tok] = true
				docFreq[tok]++
			}
			if _, ok := m.vocab[tok]; !ok {
				m.vocab[tok] = len(m.vocab)
			}
		}
	}

	// Smooth IDF: ln((1+N)/(1+df)) + 1. Never zero, so a term present in
	// every document still carries weight.
	n := float64(len(docs))
	m.idf = make([]float64, len(m.vocab))
	for tok, col := range m.vocab {
		m.idf[col] = math.Log((1+n)/(1+float64(docFreq[tok]))) + 1
	}

	m.rows = make([][]float64, len(docs))
	for i, tokens := range tokenized {
		m.rows[i] = m.vectorize(tokens)
	}
	return m
}

// vectorize maps tokens into the fitted space and L2-normalizes the result.
// Out-of-vocabulary tokens contribute nothing; an all-zero vector (empty or
// fully out-of-vocabulary input) stays zero.
func (m *vectorModel) vectorize(tokens []string) []float64 {
	vec := make([]float64, len(m.idf))
	for _, tok := range tokens {
		if col, ok := m.vocab[tok]; ok {
			vec[col] += m.idf[col]
		}
	}
	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}

// cosineScores returns the cosine similarity of the processed query against
// every catalog row, each in [0,1].
func (m *vectorModel) cosineScores(processedQuery string) []float64 {
	q := m.vectorize(strings.Fields(processedQuery))
	scores := make([]float64, len(m.rows))
	for i, row := range m.rows {
		var dot float64
		for col, v := range row {
			dot += v * q[col]
		}
		scores[i] = dot
	}
	return scores
}

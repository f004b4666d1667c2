package match

import (
	"errors"
	"reflect"
	"testing"
)

var testCatalog = []string{
	"Büro AG",
	"Büro Offices Berlin GmbH & Co. KG",
	"Acme Corporation",
	"Test Entity GmbH",
}

func newTestMatcher(t *testing.T) *Matcher {
	t.Helper()
	m, err := NewMatcher(testCatalog, DefaultWeights())
	if err != nil {
		t.Fatalf("NewMatcher: %v", err)
	}
	return m
}

func TestNewMatcherEmptyCatalog(t *testing.T) {
	_, err := NewMatcher(nil, DefaultWeights())
	var ce *ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("NewMatcher(nil) error = %v, want ConfigError", err)
	}
}

func TestNewMatcherBadWeights(t *testing.T) {
	tests := []struct {
		name string
		w    Weights
	}{
		{"negative", Weights{TFIDF: -0.1, Edit: 0.9, TokenSet: 0.2}},
		{"above one", Weights{TFIDF: 1.2, Edit: -0.1, TokenSet: -0.1}},
		{"sum below one", Weights{TFIDF: 0.3, Edit: 0.3, TokenSet: 0.2}},
		{"sum above one", Weights{TFIDF: 0.5, Edit: 0.5, TokenSet: 0.2}},
	}
	for _, tt := range tests {
		_, err := NewMatcher(testCatalog, tt.w)
		var ce *ConfigError
		if !errors.As(err, &ce) {
			t.Errorf("%s: error = %v, want ConfigError", tt.name, err)
		}
	}
}

func TestMatchValidation(t *testing.T) {
	m := newTestMatcher(t)

	for _, q := range []string{"", "   ", "\t\n"} {
		_, err := m.Match(q, 3)
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("Match(%q) error = %v, want ValidationError", q, err)
		}
	}

	_, err := m.Match("Buro", 0)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Errorf("Match with top_n=0 error = %v, want ValidationError", err)
	}

	// Matcher stays usable after a validation failure.
	if _, err := m.Match("Buro AG", 1); err != nil {
		t.Errorf("Match after validation error: %v", err)
	}
}

func TestMatchTopNClamping(t *testing.T) {
	m := newTestMatcher(t)

	got, err := m.Match("Buro", 100)
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if len(got) != len(testCatalog) {
		t.Errorf("clamped result count = %d, want %d", len(got), len(testCatalog))
	}

	one, err := m.Match("Buro", 1)
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if len(one) != 1 {
		t.Errorf("top_n=1 result count = %d, want 1", len(one))
	}
}

func TestMatchOrderingAndRange(t *testing.T) {
	m := newTestMatcher(t)

	got, err := m.Match("Buero Offices", 4)
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("candidates = %d, want 4 (catalog size)", len(got))
	}
	for i, c := range got {
		for name, v := range map[string]float64{
			"confidence": c.Confidence, "tfidf": c.TFIDF, "edit": c.Edit, "token_set": c.TokenSet,
		} {
			if v < 0 || v > 1 {
				t.Errorf("candidate %d: %s = %v outside [0,1]", i, name, v)
			}
		}
		if i > 0 && c.Confidence > got[i-1].Confidence {
			t.Errorf("candidate %d: confidence %v > previous %v, want non-increasing", i, c.Confidence, got[i-1].Confidence)
		}
	}
}

func TestMatchDeterministic(t *testing.T) {
	m := newTestMatcher(t)

	first, err := m.Match("Buero AG", 4)
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := m.Match("Buero AG", 4)
		if err != nil {
			t.Fatalf("iteration %d: %v", i, err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("iteration %d: results differ from first call", i)
		}
	}
}

func TestMatchExactEntry(t *testing.T) {
	m := newTestMatcher(t)

	// "Buro AG" preprocesses identically to catalog entry "Büro AG".
	got, err := m.Match("Buro AG", 1)
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	top := got[0]
	if top.Entity != "Büro AG" {
		t.Fatalf("top entity = %q, want Büro AG", top.Entity)
	}
	if !closeTo(top.Edit, 1.0) {
		t.Errorf("edit score = %v, want 1.0 for identical processed strings", top.Edit)
	}
	if !closeTo(top.TokenSet, 1.0) {
		t.Errorf("token_set score = %v, want 1.0 for identical processed strings", top.TokenSet)
	}
}

func TestMatchMisspelledQuery(t *testing.T) {
	m := newTestMatcher(t)

	got, err := m.Match("Buero AG", 3)
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if got[0].Entity != "Büro AG" {
		t.Errorf("top entity = %q, want Büro AG", got[0].Entity)
	}
	if got[0].Confidence < 0.85 {
		t.Errorf("confidence = %v, want >= 0.85", got[0].Confidence)
	}
}

func TestMatchReorderedSubset(t *testing.T) {
	m := newTestMatcher(t)

	got, err := m.Match("Buro Offices Berlin", 1)
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if got[0].Confidence < 0.7 {
		t.Errorf("confidence = %v, want >= 0.7", got[0].Confidence)
	}
}

func TestMatchPunctuationOnlyQuery(t *testing.T) {
	m := newTestMatcher(t)

	// "???" is non-blank, so validation passes, but every rune is dropped
	// by normalization. Zero shared tokens must not look like a match.
	got, err := m.Match("???", 4)
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	for _, c := range got {
		if !closeTo(c.TokenSet, 0) {
			t.Errorf("%s: token_set = %v, want 0 for empty processed query", c.Entity, c.TokenSet)
		}
		if !closeTo(c.Confidence, 0) {
			t.Errorf("%s: confidence = %v, want 0 for empty processed query", c.Entity, c.Confidence)
		}
	}
}

func TestMatchEmptyProcessedEntry(t *testing.T) {
	m, err := NewMatcher([]string{"Acme Corporation", "???"}, DefaultWeights())
	if err != nil {
		t.Fatalf("NewMatcher: %v", err)
	}

	got, err := m.Match("Acme", 2)
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if got[0].Entity != "Acme Corporation" {
		t.Fatalf("top entity = %q, want Acme Corporation", got[0].Entity)
	}
	for _, c := range got {
		if c.Entity == "???" && !closeTo(c.TokenSet, 0) {
			t.Errorf("token_set = %v for entry with no tokens, want 0", c.TokenSet)
		}
	}
}

func TestMatchConcurrent(t *testing.T) {
	m := newTestMatcher(t)

	want, err := m.Match("Buero AG", 2)
	if err != nil {
		t.Fatalf("Match: %v", err)
	}

	done := make(chan error, 16)
	for i := 0; i < 16; i++ {
		go func() {
			for j := 0; j < 50; j++ {
				got, err := m.Match("Buero AG", 2)
				if err != nil {
					done <- err
					return
				}
				if !reflect.DeepEqual(got, want) {
					done <- errors.New("concurrent result differs")
					return
				}
			}
			done <- nil
		}()
	}
	for i := 0; i < 16; i++ {
		if err := <-done; err != nil {
			t.Fatal(err)
		}
	}
}

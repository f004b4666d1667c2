// CLAUDE:SUMMARY Reloadable service wrapper owning the immutable matcher, with batch matching and per-item error isolation.
package service

import (
	"log/slog"
	"sync"

	"github.com/hazyhaar/lodestone/pkg/catalog"
	"github.com/hazyhaar/lodestone/pkg/match"
)

// Service owns the current Matcher and rebuilds it on demand. Match calls
// read the matcher under an RLock; Reload swaps in a freshly built one, so
// in-flight matches always run against a consistent catalog.
type Service struct {
	mu      sync.RWMutex
	matcher *match.Matcher

	source  catalog.Config
	weights match.Weights
	logger  *slog.Logger
}

// New loads the catalog from the configured source and builds the matcher.
func New(source catalog.Config, weights match.Weights, logger *slog.Logger) (*Service, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{source: source, weights: weights, logger: logger}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload re-reads the catalog source and swaps in a new matcher.
// On failure the previous matcher stays in place.
func (s *Service) Reload() error {
	entities, err := catalog.Load(s.source)
	if err != nil {
		return err
	}
	m, err := match.NewMatcher(entities, s.weights)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.matcher = m
	s.mu.Unlock()

	s.logger.Info("catalog loaded", "entities", m.Size())
	return nil
}

func (s *Service) current() *match.Matcher {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.matcher
}

// Match scores a single query against the catalog.
func (s *Service) Match(query string, topN int) ([]match.Candidate, error) {
	return s.current().Match(query, topN)
}

// BatchItem is the outcome for one input in a batch. A failed item carries
// its error message and a zero confidence; other items are unaffected.
type BatchItem struct {
	Input      string  `json:"input"`
	Match      string  `json:"match,omitempty"`
	Confidence float64 `json:"confidence"`
	Error      string  `json:"error,omitempty"`
}

// MatchBatch matches every input independently, best candidate only.
// Item failures are isolated: the failed row reports its error and the
// remaining rows still succeed.
func (s *Service) MatchBatch(inputs []string) []BatchItem {
	m := s.current()
	items := make([]BatchItem, 0, len(inputs))
	for _, in := range inputs {
		candidates, err := m.Match(in, 1)
		if err != nil {
			s.logger.Warn("batch item failed", "input", in, "error", err)
			items = append(items, BatchItem{Input: in, Error: err.Error()})
			continue
		}
		items = append(items, BatchItem{
			Input:      in,
			Match:      candidates[0].Entity,
			Confidence: candidates[0].Confidence,
		})
	}
	return items
}

// Entities returns the canonical catalog in original order.
func (s *Service) Entities() []string {
	return s.current().Entities()
}

// Size returns the catalog entry count.
func (s *Service) Size() int {
	return s.current().Size()
}

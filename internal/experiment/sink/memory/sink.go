// Package memory provides an in-memory result sink for tests and local
// inspection.
package memory

import (
	"context"
	"sync"

	"switchyard/internal/experiment"
)

// Sink retains published comparisons in order. Safe for concurrent use.
type Sink struct {
	mu      sync.Mutex
	results []experiment.ComparisonResult
}

// New constructs an empty in-memory sink.
func New() *Sink {
	return &Sink{}
}

// Publish appends the comparison.
func (s *Sink) Publish(_ context.Context, result experiment.ComparisonResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, result)
}

// List returns a copy of everything published so far.
func (s *Sink) List() []experiment.ComparisonResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]experiment.ComparisonResult, len(s.results))
	copy(out, s.results)
	return out
}

// Len returns the number of published comparisons.
func (s *Sink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.results)
}

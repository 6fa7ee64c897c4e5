// Package bucket implements deterministic percentage bucketing. A subject's
// in/out decision depends only on its identifier, so the same user lands on
// the same side of the rollout on every request and on every replica.
package bucket

import (
	"math/rand"
	"sync"
)

// InBucket reports whether the subject falls inside the rollout percentage.
// The draw is seeded solely from subjectID: repeated calls with the same
// arguments return the same answer, in this process or any other.
func InBucket(subjectID int64, percentage int) bool {
	if percentage <= 0 {
		return false
	}
	if percentage >= 100 {
		return true
	}
	// Fresh per-call source; no shared generator state across goroutines.
	draw := rand.New(rand.NewSource(subjectID)).Intn(100)
	return draw < percentage
}

// Sampler draws from a single stream seeded at construction. Unlike InBucket
// it is allowed to answer differently call-to-call for the same input, so it
// must only gate work where per-subject consistency does not matter, such as
// sampling a fraction of anonymous calls.
type Sampler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSampler constructs a sampler seeded from seed.
func NewSampler(seed int64) *Sampler {
	return &Sampler{rng: rand.New(rand.NewSource(seed))}
}

// Sample reports whether this call falls inside the given percentage.
// Safe for concurrent use.
func (s *Sampler) Sample(percentage int) bool {
	if percentage <= 0 {
		return false
	}
	if percentage >= 100 {
		return true
	}
	s.mu.Lock()
	draw := s.rng.Intn(100)
	s.mu.Unlock()
	return draw < percentage
}

package bucket

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInBucket_Deterministic(t *testing.T) {
	for _, id := range []int64{0, 1, 42, 999_999, -7, math.MaxInt64} {
		first := InBucket(id, 50)
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, InBucket(id, 50),
				"subject %d must land on the same side every call", id)
		}
	}
}

func TestInBucket_Boundaries(t *testing.T) {
	for _, id := range []int64{1, 17, 123456} {
		assert.False(t, InBucket(id, 0), "0%% must exclude everyone")
		assert.False(t, InBucket(id, -5))
		assert.True(t, InBucket(id, 100), "100%% must include everyone")
		assert.True(t, InBucket(id, 150))
	}
}

func TestInBucket_Distribution(t *testing.T) {
	const population = 20_000
	for _, pct := range []int{10, 30, 50, 80} {
		in := 0
		for id := int64(0); id < population; id++ {
			if InBucket(id, pct) {
				in++
			}
		}
		got := float64(in) / population * 100
		assert.InDelta(t, float64(pct), got, 2.0,
			"fraction in bucket should converge to the percentage")
	}
}

func TestSampler_Boundaries(t *testing.T) {
	s := NewSampler(1)
	assert.False(t, s.Sample(0))
	assert.True(t, s.Sample(100))
}

func TestSampler_Distribution(t *testing.T) {
	s := NewSampler(7)
	const draws = 20_000
	in := 0
	for i := 0; i < draws; i++ {
		if s.Sample(25) {
			in++
		}
	}
	got := float64(in) / draws * 100
	assert.InDelta(t, 25.0, got, 2.0)
}

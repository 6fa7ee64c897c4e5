package experiment

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Observation records one execution of a control or candidate path. Value is
// opaque to the engine; comparison is structural unless the caller overrides
// it.
type Observation struct {
	Name     string
	Value    any
	Duration time.Duration
	Err      error
}

// Failed reports whether the execution ended in an error.
func (o Observation) Failed() bool {
	return o.Err != nil
}

// observationJSON is the wire shape; errors serialize as strings so the raw
// failure signal survives alongside the matched flag.
type observationJSON struct {
	Name          string `json:"name"`
	Value         any    `json:"value"`
	DurationNanos int64  `json:"duration_nanos"`
	Error         string `json:"error,omitempty"`
}

func (o Observation) MarshalJSON() ([]byte, error) {
	out := observationJSON{
		Name:          o.Name,
		Value:         o.Value,
		DurationNanos: o.Duration.Nanoseconds(),
	}
	if o.Err != nil {
		out.Error = o.Err.Error()
	}
	return json.Marshal(out)
}

// ComparisonResult is the structured output of one dual-path execution. It is
// built once, handed to the sink, and never retained by the engine.
type ComparisonResult struct {
	ID         uuid.UUID      `json:"id"`
	Experiment string         `json:"experiment"`
	Control    Observation    `json:"control"`
	Candidates []Observation  `json:"candidates"`
	Matched    bool           `json:"matched"`
	Contexts   map[string]any `json:"contexts"`
}

// Context keys the runner always populates.
const (
	ContextKeyTimestamp  = "timestamp"
	ContextKeyPercentage = "rollout_percentage"
)

// Sink consumes comparison records. Implementations own their failures:
// nothing a sink does may propagate back into the runner or the caller.
type Sink interface {
	Publish(ctx context.Context, result ComparisonResult)
}

// NoopSink discards comparisons. Substituted per-call when publication is
// switched off.
type NoopSink struct{}

func (NoopSink) Publish(context.Context, ComparisonResult) {}

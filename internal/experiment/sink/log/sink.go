// Package log provides a structured-logging result sink, the default for
// development and single-process deployments.
package log

import (
	"context"
	"log/slog"

	"switchyard/internal/experiment"
)

// Sink writes one log line per comparison. Mismatches log at Warn so they
// stand out in aggregated logs.
type Sink struct {
	logger *slog.Logger
}

// New constructs a logging sink.
func New(logger *slog.Logger) *Sink {
	return &Sink{logger: logger}
}

// Publish logs the comparison record.
func (s *Sink) Publish(ctx context.Context, result experiment.ComparisonResult) {
	attrs := []any{
		"comparison_id", result.ID.String(),
		"experiment", result.Experiment,
		"matched", result.Matched,
		"control_duration", result.Control.Duration,
		"contexts", result.Contexts,
	}
	for _, cand := range result.Candidates {
		attrs = append(attrs, "candidate_duration", cand.Duration)
		if cand.Err != nil {
			attrs = append(attrs, "candidate_error", cand.Err.Error())
		}
	}
	if result.Control.Err != nil {
		attrs = append(attrs, "control_error", result.Control.Err.Error())
	}

	if result.Matched {
		s.logger.InfoContext(ctx, "comparison published", attrs...)
		return
	}
	s.logger.WarnContext(ctx, "comparison mismatch", attrs...)
}

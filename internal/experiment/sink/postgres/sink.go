// Package postgres provides a result sink that persists comparison records
// for offline analysis and audit.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	_ "github.com/lib/pq"

	"switchyard/internal/experiment"
)

// Sink inserts one row per comparison. Insert failures are logged and
// dropped; persistence problems are this sink's concern, never the runner's.
type Sink struct {
	db     *sql.DB
	logger *slog.Logger
}

// Option configures the Sink.
type Option func(*Sink)

// WithLogger sets a logger for insert failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Sink) {
		s.logger = logger
	}
}

// New opens a connection pool against dsn and verifies connectivity.
func New(dsn string, opts ...Option) (*Sink, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres ping failed: %w", err)
	}

	s := &Sink{
		db:     db,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// EnsureSchema creates the comparisons table when it does not exist yet.
func (s *Sink) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS comparisons (
			id UUID PRIMARY KEY,
			experiment TEXT NOT NULL,
			matched BOOLEAN NOT NULL,
			control JSONB NOT NULL,
			candidates JSONB NOT NULL,
			contexts JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("ensure comparisons schema: %w", err)
	}
	return nil
}

// Publish inserts the comparison record.
func (s *Sink) Publish(ctx context.Context, result experiment.ComparisonResult) {
	control, err := json.Marshal(result.Control)
	if err != nil {
		s.logComparisonError(ctx, result, "encode control", err)
		return
	}
	candidates, err := json.Marshal(result.Candidates)
	if err != nil {
		s.logComparisonError(ctx, result, "encode candidates", err)
		return
	}
	contexts, err := json.Marshal(result.Contexts)
	if err != nil {
		s.logComparisonError(ctx, result, "encode contexts", err)
		return
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO comparisons (id, experiment, matched, control, candidates, contexts)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		result.ID, result.Experiment, result.Matched, control, candidates, contexts,
	)
	if err != nil {
		s.logComparisonError(ctx, result, "insert", err)
	}
}

// Close releases the connection pool.
func (s *Sink) Close() error {
	return s.db.Close()
}

func (s *Sink) logComparisonError(ctx context.Context, result experiment.ComparisonResult, op string, err error) {
	s.logger.ErrorContext(ctx, "comparison persistence failed",
		"op", op,
		"comparison_id", result.ID.String(),
		"experiment", result.Experiment,
		"error", err,
	)
}

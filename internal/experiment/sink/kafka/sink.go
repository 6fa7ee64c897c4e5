// Package kafka provides a result sink that produces comparison records to a
// Kafka topic for downstream analysis.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kgo"

	"switchyard/internal/experiment"
)

// Sink produces one JSON record per comparison, keyed by experiment name so
// records for the same experiment stay ordered within a partition.
type Sink struct {
	client *kgo.Client
	topic  string
	logger *slog.Logger
}

// Option configures the Sink.
type Option func(*Sink)

// WithLogger sets a logger for delivery failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Sink) {
		s.logger = logger
	}
}

// New constructs a Kafka sink producing to topic via the seed brokers.
func New(seeds []string, topic string, opts ...Option) (*Sink, error) {
	if len(seeds) == 0 {
		return nil, fmt.Errorf("at least one seed broker is required")
	}
	if topic == "" {
		return nil, fmt.Errorf("topic is required")
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(seeds...),
		kgo.ProducerLinger(0),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}

	s := &Sink{
		client: client,
		topic:  topic,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Publish produces the comparison asynchronously. Delivery failures are
// logged and dropped; they never reach the runner.
func (s *Sink) Publish(ctx context.Context, result experiment.ComparisonResult) {
	payload, err := json.Marshal(result)
	if err != nil {
		s.logger.ErrorContext(ctx, "comparison encode failed",
			"comparison_id", result.ID.String(),
			"experiment", result.Experiment,
			"error", err,
		)
		return
	}

	record := &kgo.Record{
		Topic: s.topic,
		Key:   []byte(result.Experiment),
		Value: payload,
	}
	s.client.Produce(ctx, record, func(_ *kgo.Record, err error) {
		if err != nil {
			s.logger.Error("comparison produce failed",
				"comparison_id", result.ID.String(),
				"experiment", result.Experiment,
				"error", err,
			)
		}
	})
}

// Close flushes outstanding records and releases the client.
func (s *Sink) Close(ctx context.Context) error {
	if err := s.client.Flush(ctx); err != nil {
		s.client.Close()
		return fmt.Errorf("flush kafka producer: %w", err)
	}
	s.client.Close()
	return nil
}

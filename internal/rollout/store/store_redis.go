package store

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
)

var (
	readDurationMs = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "switchyard_config_read_duration_ms",
		Help:    "Latency of config store reads in milliseconds",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25},
	})
	readFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "switchyard_config_read_failures_total",
		Help: "Config store reads that fell back to the default value",
	})
)

// RedisStore is a Redis-backed ConfigStore. It is the production
// implementation for distributed deployments where every replica must observe
// the same rollout state.
type RedisStore struct {
	client *redis.Client
	logger *slog.Logger
}

// RedisStoreOption configures a RedisStore instance.
type RedisStoreOption func(*RedisStore)

// WithLogger sets a logger for read failures.
func WithLogger(logger *slog.Logger) RedisStoreOption {
	return func(s *RedisStore) {
		s.logger = logger
	}
}

// NewRedisStore constructs a Redis-backed config store.
func NewRedisStore(client *redis.Client, opts ...RedisStoreOption) *RedisStore {
	s := &RedisStore{
		client: client,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// GetString returns the stored value for key, falling back on missing keys
// and backend failures. Failures are logged and counted, never propagated:
// a flaky store must not turn the rollout on.
func (s *RedisStore) GetString(ctx context.Context, key, fallback string) string {
	start := time.Now()
	defer func() {
		readDurationMs.Observe(float64(time.Since(start).Microseconds()) / 1000.0)
	}()

	val, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return fallback
	}
	if err != nil {
		readFailures.Inc()
		s.logger.WarnContext(ctx, "config read failed, using fallback",
			"key", key,
			"error", err,
		)
		return fallback
	}
	return val
}

// GetInt returns the stored integer for key, falling back when the key is
// missing, unreadable, or not numeric.
func (s *RedisStore) GetInt(ctx context.Context, key string, fallback int) int {
	raw := s.GetString(ctx, key, "")
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		readFailures.Inc()
		s.logger.WarnContext(ctx, "config value is not numeric, using fallback",
			"key", key,
			"value", raw,
		)
		return fallback
	}
	return v
}

// SetString stores value under key with no TTL; rollout state lives until
// the operator changes it.
func (s *RedisStore) SetString(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, key, value, 0).Err()
}

// Package service exposes typed reads and writes of the rollout and
// eligibility configuration over the shared config store. The service keeps
// no private copy: every read goes back to the store, so a change made by one
// replica is visible to all of them on the next call.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"switchyard/internal/rollout/metrics"
	"switchyard/internal/rollout/models"
	"switchyard/internal/rollout/store"
	dErrors "switchyard/pkg/domain-errors"
)

type Service struct {
	store   store.ConfigStore
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func New(configStore store.ConfigStore, opts ...Option) (*Service, error) {
	if configStore == nil {
		return nil, fmt.Errorf("config store is required")
	}

	svc := &Service{
		store:  configStore,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(svc)
	}

	return svc, nil
}

// Rollout reads the current rollout state. The percentage invariant holds on
// every read: out-of-range stored values clamp to 0 so a corrupted key can
// never switch traffic on.
func (s *Service) Rollout(ctx context.Context) models.RolloutConfig {
	pct := s.store.GetInt(ctx, models.KeyRolloutPercentage, 0)
	if pct < 0 || pct > 100 {
		s.logger.WarnContext(ctx, "stored percentage out of range, treating as 0",
			"percentage", pct,
		)
		pct = 0
	}

	return models.RolloutConfig{
		Enabled:        s.getBool(ctx, models.KeyRolloutEnabled, false),
		Percentage:     pct,
		PublishResults: s.getBool(ctx, models.KeyPublishResults, true),
	}
}

// Eligibility reads the current criteria configuration.
func (s *Service) Eligibility(ctx context.Context) models.EligibilityConfig {
	return models.EligibilityConfig{
		CriteriaValidationActive: s.getBool(ctx, models.KeyCriteriaActive, false),
		MultipleCriteriaEnabled:  s.getBool(ctx, models.KeyMultipleCriteria, false),
		AllowedSubjectTypes:      s.getList(ctx, models.KeyAllowedSubjectTypes),
		AllowedAllowlistIDs:      s.getList(ctx, models.KeyAllowedAllowlistIDs),
		AllowedRegions:           s.getList(ctx, models.KeyAllowedRegions),
	}
}

// SetEnabled switches the rollout on or off.
func (s *Service) SetEnabled(ctx context.Context, enabled bool) error {
	return s.setBool(ctx, models.KeyRolloutEnabled, enabled)
}

// SetPercentage updates the rollout percentage. Values outside [0,100] are
// rejected and the prior value stays in effect.
func (s *Service) SetPercentage(ctx context.Context, percentage int) error {
	if percentage < 0 || percentage > 100 {
		s.metrics.IncRejectedWrite(models.KeyRolloutPercentage)
		return dErrors.New(dErrors.CodeValidation,
			fmt.Sprintf("percentage must be between 0 and 100, got %d", percentage))
	}
	return s.set(ctx, models.KeyRolloutPercentage, strconv.Itoa(percentage))
}

// SetPublishResults toggles comparison publication.
func (s *Service) SetPublishResults(ctx context.Context, publish bool) error {
	return s.setBool(ctx, models.KeyPublishResults, publish)
}

// SetCriteriaValidationActive toggles layered criteria evaluation.
func (s *Service) SetCriteriaValidationActive(ctx context.Context, active bool) error {
	return s.setBool(ctx, models.KeyCriteriaActive, active)
}

// SetMultipleCriteriaEnabled toggles behavioral and contextual checks on top
// of the functional ones.
func (s *Service) SetMultipleCriteriaEnabled(ctx context.Context, enabled bool) error {
	return s.setBool(ctx, models.KeyMultipleCriteria, enabled)
}

// SetAllowedSubjectTypes replaces the allowed subject type set.
func (s *Service) SetAllowedSubjectTypes(ctx context.Context, types []string) error {
	return s.setList(ctx, models.KeyAllowedSubjectTypes, types)
}

// SetAllowedAllowlistIDs replaces the identifier allowlist.
func (s *Service) SetAllowedAllowlistIDs(ctx context.Context, ids []string) error {
	return s.setList(ctx, models.KeyAllowedAllowlistIDs, ids)
}

// SetAllowedRegions replaces the allowed region set.
func (s *Service) SetAllowedRegions(ctx context.Context, regions []string) error {
	return s.setList(ctx, models.KeyAllowedRegions, regions)
}

func (s *Service) getBool(ctx context.Context, key string, fallback bool) bool {
	raw := s.store.GetString(ctx, key, strconv.FormatBool(fallback))
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return fallback
	}
	return v
}

func (s *Service) getList(ctx context.Context, key string) []string {
	raw := s.store.GetString(ctx, key, "")
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (s *Service) setBool(ctx context.Context, key string, value bool) error {
	return s.set(ctx, key, strconv.FormatBool(value))
}

func (s *Service) setList(ctx context.Context, key string, values []string) error {
	cleaned := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			cleaned = append(cleaned, v)
		}
	}
	return s.set(ctx, key, strings.Join(cleaned, ","))
}

func (s *Service) set(ctx context.Context, key, value string) error {
	if err := s.store.SetString(ctx, key, value); err != nil {
		return dErrors.Wrap(dErrors.CodeUnavailable, "config store write failed", err)
	}
	s.metrics.IncWrite(key)
	s.logger.InfoContext(ctx, "config updated",
		"key", key,
		"value", value,
	)
	return nil
}

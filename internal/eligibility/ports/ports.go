// Package ports defines the collaborator interfaces the eligibility policy
// evaluates against, keeping the policy free of transport and storage
// dependencies.
package ports

//go:generate mockgen -source=ports.go -destination=../mocks/mocks.go -package=mocks

import (
	"context"

	"switchyard/internal/rollout/models"
)

// ConfigSource supplies the live rollout and criteria configuration. Every
// evaluation re-reads through it; implementations must not cache per call.
type ConfigSource interface {
	Rollout(ctx context.Context) models.RolloutConfig
	Eligibility(ctx context.Context) models.EligibilityConfig
}

// ExternalEligibility is the external oracle consulted when criteria request
// it. Its boolean answer is authoritative for that sub-check.
type ExternalEligibility interface {
	IsEligible(ctx context.Context, normalizedID string, subjectID int64) (bool, error)
}

// ExternalEligibilityFunc adapts a plain function to ExternalEligibility.
type ExternalEligibilityFunc func(ctx context.Context, normalizedID string, subjectID int64) (bool, error)

func (f ExternalEligibilityFunc) IsEligible(ctx context.Context, normalizedID string, subjectID int64) (bool, error) {
	return f(ctx, normalizedID, subjectID)
}

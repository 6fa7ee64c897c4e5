// Package service orchestrates the CPF formatting demo: each request is
// evaluated against the eligibility policy and then run through the dual-path
// engine, with the legacy formatter as control and the regexp formatter as
// candidate.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"switchyard/internal/cpf"
	"switchyard/internal/eligibility"
	"switchyard/internal/experiment"
)

// ExperimentName identifies the formatter comparison in published results.
const ExperimentName = "cpf-format"

// PolicyEvaluator decides per-request rollout eligibility.
type PolicyEvaluator interface {
	Evaluate(ctx context.Context, criteria eligibility.Criteria) eligibility.Verdict
}

type Service struct {
	policy PolicyEvaluator
	runner *experiment.Runner
	logger *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func New(policy PolicyEvaluator, runner *experiment.Runner, opts ...Option) (*Service, error) {
	if policy == nil {
		return nil, fmt.Errorf("policy evaluator is required")
	}
	if runner == nil {
		return nil, fmt.Errorf("experiment runner is required")
	}

	s := &Service{
		policy: policy,
		runner: runner,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// FormatInput is one formatting request with its eligibility attributes.
type FormatInput struct {
	SubjectID   int64
	SubjectType string
	CPF         string
	Behavioral  map[string]any
	Contextual  map[string]any
}

// FormatResult carries the control's output plus the verdict that gated the
// candidate, so callers can see why the comparison did or did not run.
type FormatResult struct {
	Formatted string
	Verdict   eligibility.Verdict
}

// Format evaluates eligibility for the subject and runs the formatter
// comparison. The returned value always comes from the legacy formatter.
func (s *Service) Format(ctx context.Context, in FormatInput) (FormatResult, error) {
	criteria := s.buildCriteria(in)
	verdict := s.policy.Evaluate(ctx, criteria)

	s.logger.DebugContext(ctx, "cpf format evaluated",
		"subject_id", in.SubjectID,
		"eligible", verdict.Eligible,
		"reason", verdict.Reason,
	)

	formatted, err := experiment.Run(ctx, s.runner, ExperimentName, in.SubjectID,
		func(ctx context.Context) (string, error) { return cpf.FormatLegacy(in.CPF) },
		func(ctx context.Context) (string, error) { return cpf.Format(in.CPF) },
		experiment.WithVerdict(verdict),
		experiment.WithCandidateName("regexp-formatter"),
		experiment.WithContext(map[string]any{
			"subject_id":   in.SubjectID,
			"subject_type": in.SubjectType,
		}),
	)
	if err != nil {
		return FormatResult{Verdict: verdict}, err
	}

	return FormatResult{Formatted: formatted, Verdict: verdict}, nil
}

// buildCriteria assembles a fresh criteria snapshot. The CPF doubles as the
// allowlist identifier unless the caller supplied one explicitly.
func (s *Service) buildCriteria(in FormatInput) eligibility.Criteria {
	contextual := make(map[string]any, len(in.Contextual)+1)
	for k, v := range in.Contextual {
		contextual[k] = v
	}
	if _, ok := contextual[eligibility.AttrAllowlistID]; !ok {
		contextual[eligibility.AttrAllowlistID] = in.CPF
	}

	return eligibility.Criteria{
		SubjectID:   in.SubjectID,
		SubjectType: in.SubjectType,
		Behavioral:  in.Behavioral,
		Contextual:  contextual,
	}
}

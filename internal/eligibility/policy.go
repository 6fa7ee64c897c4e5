// Package eligibility decides, per subject, whether a dual-path comparison
// may run. The policy layers a percentage gate with functional, behavioral,
// and contextual criteria and an external oracle, and fails closed: anything
// unexpected during evaluation yields an ineligible verdict rather than
// switching on an unvetted code path.
package eligibility

import (
	"context"
	"fmt"
	"log/slog"

	"switchyard/internal/eligibility/bucket"
	"switchyard/internal/eligibility/metrics"
	"switchyard/internal/eligibility/ports"
	rollout "switchyard/internal/rollout/models"
)

// Policy evaluates eligibility criteria against the live configuration.
// Stateless between calls: each Evaluate is a pure function of the current
// config and the criteria snapshot.
type Policy struct {
	config   ports.ConfigSource
	external ports.ExternalEligibility
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

type Option func(*Policy)

func WithLogger(logger *slog.Logger) Option {
	return func(p *Policy) {
		p.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Policy) {
		p.metrics = m
	}
}

// WithExternal sets the external eligibility oracle. Without one, criteria
// requesting an external check are ineligible.
func WithExternal(external ports.ExternalEligibility) Option {
	return func(p *Policy) {
		p.external = external
	}
}

func NewPolicy(config ports.ConfigSource, opts ...Option) (*Policy, error) {
	if config == nil {
		return nil, fmt.Errorf("config source is required")
	}

	p := &Policy{
		config: config,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p, nil
}

// Evaluate produces an eligibility verdict for the criteria snapshot.
// Short-circuits on the first failing gate; any panic during evaluation is
// converted to an ineligible verdict carrying the failure as its reason.
func (p *Policy) Evaluate(ctx context.Context, criteria Criteria) (verdict Verdict) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.ErrorContext(ctx, "eligibility evaluation panicked, failing closed",
				"subject_id", criteria.SubjectID,
				"panic", r,
			)
			p.metrics.IncVerdict("ineligible", "error")
			verdict = ineligible(fmt.Sprintf("evaluation failed: %v", r))
		}
	}()

	verdict, gate := p.evaluate(ctx, criteria)
	outcome := "ineligible"
	if verdict.Eligible {
		outcome = "eligible"
	}
	p.metrics.IncVerdict(outcome, gate)
	return verdict
}

func (p *Policy) evaluate(ctx context.Context, criteria Criteria) (Verdict, string) {
	cfg := p.config.Rollout(ctx)
	if !cfg.Enabled {
		return ineligible("rollout disabled"), "disabled"
	}

	inBucket := bucket.InBucket(criteria.SubjectID, cfg.Percentage)

	elig := p.config.Eligibility(ctx)
	if !elig.CriteriaValidationActive {
		// Fast path: percentage-only gating.
		if !inBucket {
			return ineligible(fmt.Sprintf("subject outside %d%% rollout", cfg.Percentage)), "percentage"
		}
		return eligible(fmt.Sprintf("subject inside %d%% rollout", cfg.Percentage)), "percentage"
	}

	if !inBucket {
		return ineligible(fmt.Sprintf("subject outside %d%% rollout", cfg.Percentage)), "percentage"
	}

	if v := p.checkFunctional(ctx, elig, criteria); !v.Eligible {
		return v, "functional"
	}

	if elig.MultipleCriteriaEnabled {
		if v := p.checkBehavioral(criteria); !v.Eligible {
			return v, "behavioral"
		}
		if v := p.checkContextual(elig, criteria); !v.Eligible {
			return v, "contextual"
		}
		return eligible("all criteria passed"), "contextual"
	}

	return eligible("functional criteria passed"), "functional"
}

// checkFunctional applies subject type, allowlist, and external oracle gates.
func (p *Policy) checkFunctional(ctx context.Context, cfg rollout.EligibilityConfig, criteria Criteria) Verdict {
	if len(cfg.AllowedSubjectTypes) > 0 && !cfg.SubjectTypeAllowed(criteria.SubjectType) {
		return ineligible(fmt.Sprintf("subject type %q not allowed", criteria.SubjectType))
	}

	normalizedID := NormalizeIdentifier(criteria.AllowlistID())

	if criteria.AllowlistID() != "" && len(cfg.AllowedAllowlistIDs) > 0 &&
		!cfg.AllowlistIDAllowed(normalizedID) {
		return ineligible("identifier not in allowlist")
	}

	if criteria.CheckExternal() {
		return p.checkExternal(ctx, normalizedID, criteria.SubjectID)
	}

	return eligible("functional criteria passed")
}

// checkExternal consults the oracle. A missing identifier or unreachable
// oracle is a failed check, never a skipped one.
func (p *Policy) checkExternal(ctx context.Context, normalizedID string, subjectID int64) Verdict {
	if normalizedID == "" {
		p.metrics.IncExternalCheck("error")
		return ineligible("external check failed: empty identifier")
	}
	if p.external == nil {
		p.metrics.IncExternalCheck("error")
		return ineligible("external check failed: no oracle configured")
	}

	ok, err := p.external.IsEligible(ctx, normalizedID, subjectID)
	if err != nil {
		p.metrics.IncExternalCheck("error")
		p.logger.WarnContext(ctx, "external eligibility check failed",
			"subject_id", subjectID,
			"error", err,
		)
		return ineligible(fmt.Sprintf("external check failed: %v", err))
	}
	if !ok {
		p.metrics.IncExternalCheck("ineligible")
		return ineligible("external service declined subject")
	}
	p.metrics.IncExternalCheck("eligible")
	return eligible("external service accepted subject")
}

// behavioralPredicates are evaluated in order; new predicates append here
// without touching the gate ordering above.
var behavioralPredicates = []struct {
	name  string
	check func(attrs map[string]any) bool
}{
	{
		name: AttrPurchaseHistory,
		check: func(attrs map[string]any) bool {
			v, present := attrs[AttrPurchaseHistory]
			if !present {
				return true
			}
			return truthy(v)
		},
	},
}

func (p *Policy) checkBehavioral(criteria Criteria) Verdict {
	for _, pred := range behavioralPredicates {
		if !pred.check(criteria.Behavioral) {
			return ineligible(fmt.Sprintf("behavioral criterion %q failed", pred.name))
		}
	}
	return eligible("behavioral criteria passed")
}

// checkContextual passes when the region attribute is absent or no region
// allowlist is configured.
func (p *Policy) checkContextual(cfg rollout.EligibilityConfig, criteria Criteria) Verdict {
	region := criteria.Region()
	if region == "" || len(cfg.AllowedRegions) == 0 {
		return eligible("contextual criteria passed")
	}
	if !cfg.RegionAllowed(region) {
		return ineligible(fmt.Sprintf("region %q not allowed", region))
	}
	return eligible("contextual criteria passed")
}

package experiment

import (
	"context"

	"switchyard/internal/eligibility/bucket"
)

// RunIf is the conditional variant of Run: an arbitrary predicate decides
// which implementation plays the control role. When useControl is true the
// first implementation is trusted and the second runs in shadow; when false
// the roles swap. Both always execute, and the caller receives the trusted
// side's result.
func RunIf[T any](ctx context.Context, r *Runner, name string, useControl bool, whenTrue, whenFalse func(context.Context) (T, error), opts ...RunOption) (T, error) {
	rc := newRunConfig(opts)
	cfg := r.config.Rollout(ctx)

	control, candidate := whenTrue, whenFalse
	if !useControl {
		control, candidate = whenFalse, whenTrue
	}

	return runBoth(ctx, r, name, cfg, rc, control, candidate)
}

// RunPercent derives the RunIf predicate from deterministic bucketing on the
// subject id against the configured percentage: subjects inside the rollout
// receive whenIn's result with whenOut shadowed, subjects outside receive
// whenOut's with whenIn shadowed. With the rollout disabled only whenOut
// executes; no comparison is built.
func RunPercent[T any](ctx context.Context, r *Runner, name string, subjectID int64, whenIn, whenOut func(context.Context) (T, error), opts ...RunOption) (T, error) {
	cfg := r.config.Rollout(ctx)
	if !cfg.Enabled {
		r.metrics.IncOutcome(name, "skipped")
		return whenOut(ctx)
	}

	inBucket := bucket.InBucket(subjectID, cfg.Percentage)
	return RunIf(ctx, r, name, inBucket, whenIn, whenOut, opts...)
}

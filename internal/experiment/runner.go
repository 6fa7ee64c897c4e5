// Package experiment executes a trusted control path and a shadow candidate
// path side by side, compares their outputs, and ships the comparison to a
// pluggable sink. The caller always receives the control's result: nothing
// the candidate or the sink does can turn a successful control call into a
// failure.
package experiment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"switchyard/internal/eligibility"
	"switchyard/internal/eligibility/bucket"
	exmetrics "switchyard/internal/experiment/metrics"
	rollout "switchyard/internal/rollout/models"
	"switchyard/pkg/requestcontext"
)

// ConfigSource supplies the live rollout state. The runner re-reads it on
// every call so an operator change takes effect immediately.
type ConfigSource interface {
	Rollout(ctx context.Context) rollout.RolloutConfig
}

// Runner is the dual-path execution engine. One Runner serves any number of
// named experiments; it holds no per-experiment state.
type Runner struct {
	config  ConfigSource
	sink    Sink
	logger  *slog.Logger
	metrics *exmetrics.Metrics
	tracer  trace.Tracer
}

type Option func(*Runner)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

func WithMetrics(m *exmetrics.Metrics) Option {
	return func(r *Runner) {
		r.metrics = m
	}
}

func New(config ConfigSource, sink Sink, opts ...Option) (*Runner, error) {
	if config == nil {
		return nil, fmt.Errorf("config source is required")
	}
	if sink == nil {
		return nil, fmt.Errorf("result sink is required")
	}

	r := &Runner{
		config: config,
		sink:   sink,
		logger: slog.Default(),
		tracer: otel.Tracer("switchyard/experiment"),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r, nil
}

// runConfig carries per-call settings.
type runConfig struct {
	candidateName string
	contexts      map[string]any
	compare       Comparator
	clean         func(any) any
	verdict       *eligibility.Verdict
}

// RunOption customizes a single Run call.
type RunOption func(*runConfig)

// WithContext merges caller-supplied context into the published record.
func WithContext(contexts map[string]any) RunOption {
	return func(c *runConfig) {
		c.contexts = contexts
	}
}

// WithComparator overrides the default agreement rule.
func WithComparator(compare Comparator) RunOption {
	return func(c *runConfig) {
		c.compare = compare
	}
}

// WithCleaner transforms observation values before they reach the sink,
// typically to redact sensitive fields. The caller-visible return value is
// never cleaned.
func WithCleaner(clean func(any) any) RunOption {
	return func(c *runConfig) {
		c.clean = clean
	}
}

// WithCandidateName names the candidate observation in the published record.
func WithCandidateName(name string) RunOption {
	return func(c *runConfig) {
		c.candidateName = name
	}
}

// WithVerdict layers an eligibility policy verdict on top of the runner's
// own enabled/percentage gate: an ineligible verdict forces the control-only
// path even when the subject is inside the rollout percentage.
func WithVerdict(v eligibility.Verdict) RunOption {
	return func(c *runConfig) {
		c.verdict = &v
	}
}

func newRunConfig(opts []RunOption) runConfig {
	c := runConfig{
		candidateName: "candidate",
		compare:       defaultMatched,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Run executes the named comparison for a subject. Ineligible calls execute
// only control and return its result; the candidate is never invoked on that
// path. Eligible calls run both to completion, compare, publish, and still
// return exactly what control produced.
func Run[T any](ctx context.Context, r *Runner, name string, subjectID int64, control, candidate func(context.Context) (T, error), opts ...RunOption) (T, error) {
	rc := newRunConfig(opts)
	cfg := r.config.Rollout(ctx)

	eligible := cfg.Enabled && bucket.InBucket(subjectID, cfg.Percentage)
	if eligible && rc.verdict != nil {
		eligible = rc.verdict.Eligible
	}
	if !eligible {
		r.metrics.IncOutcome(name, "skipped")
		return control(ctx)
	}

	return runBoth(ctx, r, name, cfg, rc, control, candidate)
}

// runBoth executes both paths, builds the comparison, and hands it off.
func runBoth[T any](ctx context.Context, r *Runner, name string, cfg rollout.RolloutConfig, rc runConfig, control, candidate func(context.Context) (T, error)) (T, error) {
	ctx, span := r.tracer.Start(ctx, "experiment.run",
		trace.WithAttributes(attribute.String("experiment.name", name)))
	defer span.End()

	var (
		controlObs Observation
		controlVal T
		controlErr error
		candObs    Observation
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		controlObs, controlVal, controlErr = observe(gctx, "control", control)
		return nil
	})
	g.Go(func() error {
		candObs, _, _ = observe(gctx, rc.candidateName, candidate)
		return nil
	})
	// Both closures trap their own failures; Wait only synchronizes.
	_ = g.Wait()

	matched := rc.compare(controlObs, candObs)

	r.metrics.ObservePath(name, "control", controlObs.Duration)
	r.metrics.ObservePath(name, "candidate", candObs.Duration)
	outcome := "mismatched"
	if matched {
		outcome = "matched"
	}
	r.metrics.IncOutcome(name, outcome)
	span.SetAttributes(attribute.Bool("experiment.matched", matched))

	if !matched {
		r.logger.WarnContext(ctx, "experiment mismatch",
			"experiment", name,
			"control_error", errString(controlObs.Err),
			"candidate_error", errString(candObs.Err),
		)
	}

	result := ComparisonResult{
		ID:         uuid.New(),
		Experiment: name,
		Control:    cleaned(controlObs, rc.clean),
		Candidates: []Observation{cleaned(candObs, rc.clean)},
		Matched:    matched,
		Contexts:   buildContexts(ctx, cfg, rc.contexts),
	}
	r.publish(ctx, cfg, result)

	return controlVal, controlErr
}

// observe runs one path, trapping errors and panics into the observation.
func observe[T any](ctx context.Context, name string, fn func(context.Context) (T, error)) (obs Observation, value T, err error) {
	start := time.Now()
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v", rec)
			obs = Observation{Name: name, Duration: time.Since(start), Err: err}
		}
	}()

	value, err = fn(ctx)
	obs = Observation{Name: name, Value: value, Duration: time.Since(start), Err: err}
	return obs, value, err
}

func cleaned(obs Observation, clean func(any) any) Observation {
	if clean == nil || obs.Failed() {
		return obs
	}
	obs.Value = clean(obs.Value)
	return obs
}

func buildContexts(ctx context.Context, cfg rollout.RolloutConfig, extra map[string]any) map[string]any {
	contexts := map[string]any{
		ContextKeyTimestamp:  requestcontext.Now(ctx).UTC().Format(time.RFC3339Nano),
		ContextKeyPercentage: cfg.Percentage,
	}
	for k, v := range extra {
		contexts[k] = v
	}
	return contexts
}

// publish hands the comparison to the sink without making the caller wait on
// delivery. When publication is disabled the comparison is still built for
// behavioral consistency but goes to a no-op sink for this call only.
func (r *Runner) publish(ctx context.Context, cfg rollout.RolloutConfig, result ComparisonResult) {
	sink := r.sink
	if !cfg.PublishResults {
		sink = NoopSink{}
	}

	bg := context.WithoutCancel(ctx)
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				r.metrics.IncSinkError()
				r.logger.Error("result sink panicked",
					"experiment", result.Experiment,
					"panic", rec,
				)
			}
		}()
		sink.Publish(bg, result)
	}()
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

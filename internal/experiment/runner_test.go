package experiment_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"switchyard/internal/eligibility"
	. "switchyard/internal/experiment"
	memorysink "switchyard/internal/experiment/sink/memory"
	"switchyard/internal/rollout/service"
	"switchyard/internal/rollout/store"
)

func newTestRunner(t *testing.T) (*Runner, *service.Service, *memorysink.Sink) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	cfg, err := service.New(store.NewMemoryStore(), service.WithLogger(logger))
	require.NoError(t, err)

	sink := memorysink.New()
	runner, err := New(cfg, sink, WithLogger(logger))
	require.NoError(t, err)

	return runner, cfg, sink
}

func enable(t *testing.T, cfg *service.Service, percentage int) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, cfg.SetEnabled(ctx, true))
	require.NoError(t, cfg.SetPercentage(ctx, percentage))
}

func waitForResults(t *testing.T, sink *memorysink.Sink, n int) []ComparisonResult {
	t.Helper()
	require.Eventually(t, func() bool {
		return sink.Len() >= n
	}, time.Second, 5*time.Millisecond, "expected %d published comparisons", n)
	return sink.List()
}

func TestRun_DisabledRolloutSkipsCandidate(t *testing.T) {
	runner, _, sink := newTestRunner(t)
	ctx := context.Background()

	var candidateCalls atomic.Int32
	got, err := Run(ctx, runner, "cpf-format", 1,
		func(context.Context) (string, error) { return "control-value", nil },
		func(context.Context) (string, error) {
			candidateCalls.Add(1)
			return "candidate-value", nil
		},
	)

	require.NoError(t, err)
	assert.Equal(t, "control-value", got)
	assert.Zero(t, candidateCalls.Load(), "candidate must never run while the rollout is disabled")

	time.Sleep(20 * time.Millisecond)
	assert.Zero(t, sink.Len(), "nothing may be published on the control-only path")
}

func TestRun_ZeroPercentSkipsCandidate(t *testing.T) {
	runner, cfg, sink := newTestRunner(t)
	enable(t, cfg, 0)
	ctx := context.Background()

	var candidateCalls atomic.Int32
	for id := int64(1); id <= 20; id++ {
		got, err := Run(ctx, runner, "cpf-format", id,
			func(context.Context) (string, error) { return "control-value", nil },
			func(context.Context) (string, error) {
				candidateCalls.Add(1)
				return "candidate-value", nil
			},
		)
		require.NoError(t, err)
		assert.Equal(t, "control-value", got)
	}

	assert.Zero(t, candidateCalls.Load())
	time.Sleep(20 * time.Millisecond)
	assert.Zero(t, sink.Len())
}

func TestRun_FullRolloutMatch(t *testing.T) {
	runner, cfg, sink := newTestRunner(t)
	enable(t, cfg, 100)
	ctx := context.Background()

	got, err := Run(ctx, runner, "cpf-format", 7,
		func(context.Context) (string, error) { return "A", nil },
		func(context.Context) (string, error) { return "A", nil },
	)

	require.NoError(t, err)
	assert.Equal(t, "A", got)

	results := waitForResults(t, sink, 1)
	assert.True(t, results[0].Matched)
	assert.Equal(t, "cpf-format", results[0].Experiment)
	assert.Equal(t, "A", results[0].Control.Value)
	require.Len(t, results[0].Candidates, 1)
	assert.Equal(t, "A", results[0].Candidates[0].Value)
	assert.Equal(t, 100, results[0].Contexts[ContextKeyPercentage])
	assert.NotEmpty(t, results[0].Contexts[ContextKeyTimestamp])
}

func TestRun_Mismatch(t *testing.T) {
	runner, cfg, sink := newTestRunner(t)
	enable(t, cfg, 100)

	got, err := Run(context.Background(), runner, "cpf-format", 7,
		func(context.Context) (string, error) { return "A", nil },
		func(context.Context) (string, error) { return "B", nil },
	)

	require.NoError(t, err)
	assert.Equal(t, "A", got, "the caller always receives control's value")

	results := waitForResults(t, sink, 1)
	assert.False(t, results[0].Matched)
}

func TestRun_CandidateErrorContained(t *testing.T) {
	runner, cfg, sink := newTestRunner(t)
	enable(t, cfg, 100)

	got, err := Run(context.Background(), runner, "cpf-format", 7,
		func(context.Context) (string, error) { return "A", nil },
		func(context.Context) (string, error) { return "", errors.New("candidate blew up") },
	)

	require.NoError(t, err, "candidate failure must never surface to the caller")
	assert.Equal(t, "A", got)

	results := waitForResults(t, sink, 1)
	assert.False(t, results[0].Matched)
	require.Len(t, results[0].Candidates, 1)
	assert.EqualError(t, results[0].Candidates[0].Err, "candidate blew up")
}

func TestRun_CandidatePanicContained(t *testing.T) {
	runner, cfg, sink := newTestRunner(t)
	enable(t, cfg, 100)

	got, err := Run(context.Background(), runner, "cpf-format", 7,
		func(context.Context) (string, error) { return "A", nil },
		func(context.Context) (string, error) { panic("boom") },
	)

	require.NoError(t, err)
	assert.Equal(t, "A", got)

	results := waitForResults(t, sink, 1)
	require.Len(t, results[0].Candidates, 1)
	require.Error(t, results[0].Candidates[0].Err)
	assert.Contains(t, results[0].Candidates[0].Err.Error(), "panic")
}

func TestRun_ControlErrorPropagates(t *testing.T) {
	runner, cfg, _ := newTestRunner(t)
	enable(t, cfg, 100)

	controlErr := errors.New("control failed")
	_, err := Run(context.Background(), runner, "cpf-format", 7,
		func(context.Context) (string, error) { return "", controlErr },
		func(context.Context) (string, error) { return "B", nil },
	)

	require.ErrorIs(t, err, controlErr)
}

func TestRun_MatchedOnErrorSymmetry(t *testing.T) {
	runner, cfg, sink := newTestRunner(t)
	enable(t, cfg, 100)

	_, err := Run(context.Background(), runner, "cpf-format", 7,
		func(context.Context) (string, error) { return "", errors.New("control broke") },
		func(context.Context) (string, error) { return "", errors.New("candidate broke") },
	)
	require.Error(t, err)

	results := waitForResults(t, sink, 1)
	assert.True(t, results[0].Matched, "symmetric failure counts as agreement")
	require.Error(t, results[0].Control.Err)
	require.Error(t, results[0].Candidates[0].Err)
}

func TestRun_PublishDisabledStillComputes(t *testing.T) {
	runner, cfg, sink := newTestRunner(t)
	enable(t, cfg, 100)
	require.NoError(t, cfg.SetPublishResults(context.Background(), false))

	var candidateCalls atomic.Int32
	got, err := Run(context.Background(), runner, "cpf-format", 7,
		func(context.Context) (string, error) { return "A", nil },
		func(context.Context) (string, error) {
			candidateCalls.Add(1)
			return "A", nil
		},
	)

	require.NoError(t, err)
	assert.Equal(t, "A", got)
	assert.Equal(t, int32(1), candidateCalls.Load(), "both paths still run with publication off")

	time.Sleep(20 * time.Millisecond)
	assert.Zero(t, sink.Len(), "nothing reaches the sink with publication off")
}

func TestRun_VerdictOverridesPercentage(t *testing.T) {
	runner, cfg, _ := newTestRunner(t)
	enable(t, cfg, 100)

	var candidateCalls atomic.Int32
	got, err := Run(context.Background(), runner, "cpf-format", 7,
		func(context.Context) (string, error) { return "A", nil },
		func(context.Context) (string, error) {
			candidateCalls.Add(1)
			return "A", nil
		},
		WithVerdict(eligibility.Verdict{Eligible: false, Reason: "subject type not allowed"}),
	)

	require.NoError(t, err)
	assert.Equal(t, "A", got)
	assert.Zero(t, candidateCalls.Load(), "an ineligible verdict forces the control-only path")
}

func TestRun_CustomComparator(t *testing.T) {
	runner, cfg, sink := newTestRunner(t)
	enable(t, cfg, 100)

	_, err := Run(context.Background(), runner, "cpf-format", 7,
		func(context.Context) (string, error) { return "a", nil },
		func(context.Context) (string, error) { return "A", nil },
		WithComparator(func(control, candidate Observation) bool {
			c1, _ := control.Value.(string)
			c2, _ := candidate.Value.(string)
			return len(c1) == len(c2)
		}),
	)
	require.NoError(t, err)

	results := waitForResults(t, sink, 1)
	assert.True(t, results[0].Matched)
}

func TestRun_CleanerRedactsPublishedValues(t *testing.T) {
	runner, cfg, sink := newTestRunner(t)
	enable(t, cfg, 100)

	got, err := Run(context.Background(), runner, "cpf-format", 7,
		func(context.Context) (string, error) { return "123.456.789-09", nil },
		func(context.Context) (string, error) { return "123.456.789-09", nil },
		WithCleaner(func(any) any { return "[redacted]" }),
	)

	require.NoError(t, err)
	assert.Equal(t, "123.456.789-09", got, "the caller-visible value is never cleaned")

	results := waitForResults(t, sink, 1)
	assert.Equal(t, "[redacted]", results[0].Control.Value)
	assert.Equal(t, "[redacted]", results[0].Candidates[0].Value)
}

func TestRun_CallerContextMerged(t *testing.T) {
	runner, cfg, sink := newTestRunner(t)
	enable(t, cfg, 100)

	_, err := Run(context.Background(), runner, "cpf-format", 7,
		func(context.Context) (string, error) { return "A", nil },
		func(context.Context) (string, error) { return "A", nil },
		WithContext(map[string]any{"channel": "api"}),
	)
	require.NoError(t, err)

	results := waitForResults(t, sink, 1)
	assert.Equal(t, "api", results[0].Contexts["channel"])
	assert.Equal(t, 100, results[0].Contexts[ContextKeyPercentage])
}

func TestRun_DeterministicBucketingAcrossCalls(t *testing.T) {
	runner, cfg, _ := newTestRunner(t)
	enable(t, cfg, 50)
	ctx := context.Background()

	var candidateCalls atomic.Int32
	run := func(id int64) {
		_, err := Run(ctx, runner, "cpf-format", id,
			func(context.Context) (string, error) { return "A", nil },
			func(context.Context) (string, error) {
				candidateCalls.Add(1)
				return "A", nil
			},
		)
		require.NoError(t, err)
	}

	run(1234)
	first := candidateCalls.Load()
	for i := 0; i < 5; i++ {
		run(1234)
	}
	if first == 0 {
		assert.Zero(t, candidateCalls.Load(), "a subject outside the bucket stays outside")
	} else {
		assert.Equal(t, int32(6), candidateCalls.Load(), "a subject inside the bucket stays inside")
	}
}

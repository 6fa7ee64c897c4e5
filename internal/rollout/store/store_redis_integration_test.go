//go:build integration

package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"switchyard/pkg/testutil/containers"
)

func TestRedisStore_Integration(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	ctx := context.Background()
	require.NoError(t, rc.FlushAll(ctx))

	s := NewRedisStore(rc.Client)

	t.Run("missing key yields fallback", func(t *testing.T) {
		assert.Equal(t, "none", s.GetString(ctx, "rollout:enabled", "none"))
		assert.Equal(t, 0, s.GetInt(ctx, "rollout:percentage", 0))
	})

	t.Run("string round trip", func(t *testing.T) {
		require.NoError(t, s.SetString(ctx, "rollout:enabled", "true"))
		assert.Equal(t, "true", s.GetString(ctx, "rollout:enabled", "false"))
	})

	t.Run("int round trip", func(t *testing.T) {
		require.NoError(t, s.SetString(ctx, "rollout:percentage", "35"))
		assert.Equal(t, 35, s.GetInt(ctx, "rollout:percentage", 0))
	})

	t.Run("non numeric value falls back", func(t *testing.T) {
		require.NoError(t, s.SetString(ctx, "rollout:percentage", "garbage"))
		assert.Equal(t, 0, s.GetInt(ctx, "rollout:percentage", 0))
	})
}

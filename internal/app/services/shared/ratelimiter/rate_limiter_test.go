package ratelimiter

import (
	"context"
	"mediscan-service/internal/pkg/testutil"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestResourceLimiter_Allow(t *testing.T) {
	ctx := context.Background()
	limiter := NewResourceLimiter(testutil.NewRedisRepository(), zap.NewNop())
	quota := Quota{Group: "reserve", Limit: 2, Window: time.Minute}
	now := time.Date(2024, 5, 1, 10, 0, 15, 0, time.UTC)

	for i := 0; i < 2; i++ {
		decision, err := limiter.Allow(ctx, quota, "Patient@Example.com", now)
		require.NoError(t, err)
		assert.True(t, decision.Allowed)
	}

	decision, err := limiter.Allow(ctx, quota, "Patient@Example.com", now)
	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Equal(t, 46*time.Second, decision.RetryAfter)

	t.Run("next window resets the quota", func(t *testing.T) {
		decision, err := limiter.Allow(ctx, quota, "Patient@Example.com", now.Add(time.Minute))
		require.NoError(t, err)
		assert.True(t, decision.Allowed)
	})

	t.Run("subjects are case insensitive", func(t *testing.T) {
		decision, err := limiter.Allow(ctx, quota, "patient@example.com", now)
		require.NoError(t, err)
		assert.False(t, decision.Allowed)
	})

	t.Run("groups are counted separately", func(t *testing.T) {
		other := quota
		other.Group = "upload"
		decision, err := limiter.Allow(ctx, other, "patient@example.com", now)
		require.NoError(t, err)
		assert.True(t, decision.Allowed)
	})
}

func TestResourceLimiter_Disabled(t *testing.T) {
	limiter := NewResourceLimiter(testutil.NewRedisRepository(), zap.NewNop())
	for i := 0; i < 5; i++ {
		decision, err := limiter.Allow(context.Background(), Quota{Group: "reserve"}, "a@b.c", time.Now())
		require.NoError(t, err)
		assert.True(t, decision.Allowed)
	}
}

func TestResourceLimiter_EmptySubjectRejected(t *testing.T) {
	limiter := NewResourceLimiter(testutil.NewRedisRepository(), zap.NewNop())
	decision, err := limiter.Allow(context.Background(), Quota{Group: "reserve", Limit: 1, Window: time.Minute}, "  ", time.Now())
	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Equal(t, time.Minute, decision.RetryAfter)
}

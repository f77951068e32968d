package locker

import (
	"context"
	"mediscan-service/internal/pkg/testutil"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLockService_OnlyOneHolder(t *testing.T) {
	ctx := context.Background()
	svc := NewLockService(testutil.NewRedisRepository(), zap.NewNop())

	acquired, value, err := svc.TryLock(ctx, "worker:leader", time.Minute)
	require.NoError(t, err)
	assert.True(t, acquired)
	assert.NotEmpty(t, value)

	acquired, _, err = svc.TryLock(ctx, "worker:leader", time.Minute)
	require.NoError(t, err)
	assert.False(t, acquired, "second caller must not get the lock")

	require.NoError(t, svc.Unlock(ctx, "worker:leader", value))

	acquired, _, err = svc.TryLock(ctx, "worker:leader", time.Minute)
	require.NoError(t, err)
	assert.True(t, acquired, "lock should be free after unlock")
}

func TestLockService_UnlockByStranger(t *testing.T) {
	ctx := context.Background()
	svc := NewLockService(testutil.NewRedisRepository(), zap.NewNop())

	_, _, err := svc.TryLock(ctx, "worker:leader", time.Minute)
	require.NoError(t, err)

	err = svc.Unlock(ctx, "worker:leader", "not-the-owner")
	assert.Error(t, err)

	err = svc.Refresh(ctx, "worker:leader", "not-the-owner", time.Minute)
	assert.Error(t, err)
}

func TestLockService_UnlockExpired(t *testing.T) {
	svc := NewLockService(testutil.NewRedisRepository(), zap.NewNop())
	assert.NoError(t, svc.Unlock(context.Background(), "missing", "whatever"))
}

func TestLockService_Refresh(t *testing.T) {
	ctx := context.Background()
	svc := NewLockService(testutil.NewRedisRepository(), zap.NewNop())

	acquired, token, err := svc.TryLock(ctx, "worker:leader", time.Minute)
	require.NoError(t, err)
	require.True(t, acquired)

	assert.NoError(t, svc.Refresh(ctx, "worker:leader", token, time.Minute))

	require.NoError(t, svc.Unlock(ctx, "worker:leader", token))
	assert.Error(t, svc.Refresh(ctx, "worker:leader", token, time.Minute), "refresh after release must fail")
}

package banners

import (
	"context"
	"errors"
	"mediscan-service/internal/app/config"
	"mediscan-service/internal/app/models"
	"mediscan-service/internal/app/services/core/auth"
	"mediscan-service/internal/pkg/constvars"
	"mediscan-service/internal/pkg/dto/requests"
	"mediscan-service/internal/pkg/exceptions"
	"mediscan-service/internal/pkg/testutil"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	adminIdentity = &models.Identity{Email: "admin@example.com"}
	userIdentity  = &models.Identity{Email: "user@example.com"}
)

func newTestBannerUsecase(banners *testutil.BannerRepository) *bannerUsecase {
	users := testutil.NewUserRepository()
	users.Seed(models.User{Email: adminIdentity.Email, Role: constvars.UserRoleAdmin, Status: constvars.UserStatusActive})
	users.Seed(models.User{Email: userIdentity.Email, Role: constvars.UserRoleUser, Status: constvars.UserStatusActive})

	cfg := &config.InternalConfig{
		Banner: config.AppBanner{
			ActivationRequiresAdmin: true,
			DeactivateMaxAttempts:   3,
			DeactivateBackoff:       time.Millisecond,
		},
	}
	log := zap.NewNop()
	return NewBannerUsecase(banners, auth.NewAuthUsecase(users, cfg, log), cfg, log).(*bannerUsecase)
}

func seedBanners(repo *testutil.BannerRepository, n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = repo.Seed(models.Banner{Name: "banner", Title: "Eid offer"})
	}
	return ids
}

func TestCreate_StoresInactive(t *testing.T) {
	repo := testutil.NewBannerRepository()
	uc := newTestBannerUsecase(repo)

	created, err := uc.Create(context.Background(), &requests.CreateBanner{
		Name: "eid", Image: "https://cdn.example.com/eid.png", Title: "Eid offer", CouponRate: 10,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.IsActive)
	assert.Empty(t, repo.ActiveIDs())
}

func TestActivate_SequentialLeavesLatestActive(t *testing.T) {
	ctx := context.Background()
	repo := testutil.NewBannerRepository()
	uc := newTestBannerUsecase(repo)
	ids := seedBanners(repo, 3)

	for _, id := range ids {
		activated, err := uc.Activate(ctx, adminIdentity, id)
		require.NoError(t, err)
		assert.True(t, activated.IsActive)
		assert.Equal(t, []string{id}, repo.ActiveIDs())
	}

	active, err := uc.GetActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, ids[2], active.ID)
}

func TestActivate_ConcurrentLeavesExactlyOneActive(t *testing.T) {
	ctx := context.Background()
	repo := testutil.NewBannerRepository()
	uc := newTestBannerUsecase(repo)
	ids := seedBanners(repo, 20)

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := uc.Activate(ctx, adminIdentity, id)
			assert.NoError(t, err)
		}(id)
	}
	wg.Wait()

	require.Len(t, repo.ActiveIDs(), 1)
	active, err := uc.GetActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(len(ids)), active.ActivationSeq)
}

func TestActivate_ReactivatingSameBanner(t *testing.T) {
	ctx := context.Background()
	repo := testutil.NewBannerRepository()
	uc := newTestBannerUsecase(repo)
	ids := seedBanners(repo, 2)

	_, err := uc.Activate(ctx, adminIdentity, ids[0])
	require.NoError(t, err)
	_, err = uc.Activate(ctx, adminIdentity, ids[0])
	require.NoError(t, err)

	assert.Equal(t, []string{ids[0]}, repo.ActiveIDs())
}

func TestActivate_RetriesTransientDeactivateFailure(t *testing.T) {
	ctx := context.Background()
	repo := testutil.NewBannerRepository()
	uc := newTestBannerUsecase(repo)
	ids := seedBanners(repo, 2)

	_, err := uc.Activate(ctx, adminIdentity, ids[0])
	require.NoError(t, err)

	repo.DeactivateFailures = 2
	_, err = uc.Activate(ctx, adminIdentity, ids[1])
	require.NoError(t, err)
	assert.Equal(t, []string{ids[1]}, repo.ActiveIDs())
}

func TestActivate_PartialActivationThenRepair(t *testing.T) {
	ctx := context.Background()
	repo := testutil.NewBannerRepository()
	uc := newTestBannerUsecase(repo)
	ids := seedBanners(repo, 2)

	_, err := uc.Activate(ctx, adminIdentity, ids[0])
	require.NoError(t, err)

	repo.DeactivateErr = errors.New("primary stepped down")
	_, err = uc.Activate(ctx, adminIdentity, ids[1])
	assert.True(t, exceptions.HasErrorCode(err, constvars.ErrCodePartialActivation), "got %v", err)

	// readers already see the newer banner
	active, err := uc.GetActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, ids[1], active.ID)
	assert.Len(t, repo.ActiveIDs(), 2)

	repo.DeactivateErr = nil
	result, err := uc.Repair(ctx)
	require.NoError(t, err)
	assert.Equal(t, ids[1], result.ActiveBannerID)
	assert.Equal(t, int64(1), result.Deactivated)
	assert.Equal(t, []string{ids[1]}, repo.ActiveIDs())
}

func TestActivate_Rejected(t *testing.T) {
	ctx := context.Background()
	repo := testutil.NewBannerRepository()
	uc := newTestBannerUsecase(repo)
	ids := seedBanners(repo, 2)

	_, err := uc.Activate(ctx, adminIdentity, ids[0])
	require.NoError(t, err)

	t.Run("unknown banner", func(t *testing.T) {
		_, err := uc.Activate(ctx, adminIdentity, "65f1c0de1111111111111111")
		assert.True(t, exceptions.HasErrorCode(err, constvars.ErrCodeNotFound))
		assert.Equal(t, []string{ids[0]}, repo.ActiveIDs())
	})

	t.Run("non admin", func(t *testing.T) {
		_, err := uc.Activate(ctx, userIdentity, ids[1])
		assert.True(t, exceptions.HasErrorCode(err, constvars.ErrCodeForbidden))
		assert.Equal(t, []string{ids[0]}, repo.ActiveIDs())
	})

	t.Run("admin not required", func(t *testing.T) {
		uc.InternalConfig.Banner.ActivationRequiresAdmin = false
		defer func() { uc.InternalConfig.Banner.ActivationRequiresAdmin = true }()

		_, err := uc.Activate(ctx, userIdentity, ids[1])
		require.NoError(t, err)
		assert.Equal(t, []string{ids[1]}, repo.ActiveIDs())
	})
}

func TestGetActive(t *testing.T) {
	ctx := context.Background()

	t.Run("none active", func(t *testing.T) {
		uc := newTestBannerUsecase(testutil.NewBannerRepository())
		_, err := uc.GetActive(ctx)
		assert.True(t, exceptions.HasErrorCode(err, constvars.ErrCodeNotFound))
	})

	t.Run("stale duplicates resolve to highest sequence", func(t *testing.T) {
		repo := testutil.NewBannerRepository()
		uc := newTestBannerUsecase(repo)
		repo.Seed(models.Banner{Name: "old", IsActive: true, ActivationSeq: 4})
		newest := repo.Seed(models.Banner{Name: "new", IsActive: true, ActivationSeq: 9})
		repo.Seed(models.Banner{Name: "legacy", IsActive: true})

		active, err := uc.GetActive(ctx)
		require.NoError(t, err)
		assert.Equal(t, newest, active.ID)
	})
}

func TestRepair_NothingToDo(t *testing.T) {
	ctx := context.Background()
	repo := testutil.NewBannerRepository()
	uc := newTestBannerUsecase(repo)

	result, err := uc.Repair(ctx)
	require.NoError(t, err)
	assert.Empty(t, result.ActiveBannerID)
	assert.Zero(t, result.Deactivated)

	id := repo.Seed(models.Banner{Name: "only", IsActive: true, ActivationSeq: 1})
	result, err = uc.Repair(ctx)
	require.NoError(t, err)
	assert.Equal(t, id, result.ActiveBannerID)
	assert.Zero(t, result.Deactivated)
}

func TestDeleteByID(t *testing.T) {
	ctx := context.Background()
	repo := testutil.NewBannerRepository()
	uc := newTestBannerUsecase(repo)
	ids := seedBanners(repo, 1)

	err := uc.DeleteByID(ctx, userIdentity, ids[0])
	assert.True(t, exceptions.HasErrorCode(err, constvars.ErrCodeForbidden))

	require.NoError(t, uc.DeleteByID(ctx, adminIdentity, ids[0]))

	err = uc.DeleteByID(ctx, adminIdentity, ids[0])
	assert.True(t, exceptions.HasErrorCode(err, constvars.ErrCodeNotFound))
}

func TestRepairWorker_Run(t *testing.T) {
	repo := testutil.NewBannerRepository()
	uc := newTestBannerUsecase(repo)
	repo.Seed(models.Banner{Name: "a", IsActive: true, ActivationSeq: 1})
	latest := repo.Seed(models.Banner{Name: "b", IsActive: true, ActivationSeq: 2})

	NewRepairWorker(zap.NewNop(), uc).Run(context.Background())

	assert.Equal(t, []string{latest}, repo.ActiveIDs())
}

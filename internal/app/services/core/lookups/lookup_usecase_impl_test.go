package lookups

import (
	"context"
	"mediscan-service/internal/app/models"
	"mediscan-service/internal/pkg/constvars"
	"mediscan-service/internal/pkg/testutil"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newLookupFixture() (*lookupUsecase, *testutil.LookupRepository, *testutil.RedisRepository) {
	repo := &testutil.LookupRepository{
		Districts: []models.District{
			{ID: "1", DivisionID: "3", Name: "Dhaka", BnName: "ঢাকা"},
			{ID: "2", DivisionID: "1", Name: "Chattogram", BnName: "চট্টগ্রাম"},
		},
		Upazilas: []models.Upazila{
			{ID: "10", DistrictID: "1", Name: "Savar", BnName: "সাভার"},
			{ID: "11", DistrictID: "1", Name: "Dhamrai", BnName: "ধামরাই"},
			{ID: "20", DistrictID: "2", Name: "Patiya", BnName: "পটিয়া"},
		},
	}
	redis := testutil.NewRedisRepository()
	return NewLookupUsecase(repo, redis, time.Hour, zap.NewNop()).(*lookupUsecase), repo, redis
}

func TestFindAllDistricts_ServedFromCacheAfterFirstRead(t *testing.T) {
	ctx := context.Background()
	uc, repo, redis := newLookupFixture()

	first, err := uc.FindAllDistricts(ctx)
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, 1, repo.Calls)

	cached, err := redis.Get(ctx, constvars.RedisKeyDistrictList)
	require.NoError(t, err)
	assert.NotEmpty(t, cached)

	second, err := uc.FindAllDistricts(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.Calls)
}

func TestFindUpazilas_FiltersByDistrict(t *testing.T) {
	ctx := context.Background()
	uc, repo, _ := newLookupFixture()

	all, err := uc.FindUpazilas(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	dhaka, err := uc.FindUpazilas(ctx, "1")
	require.NoError(t, err)
	require.Len(t, dhaka, 2)
	for _, upazila := range dhaka {
		assert.Equal(t, "1", upazila.DistrictID)
	}

	none, err := uc.FindUpazilas(ctx, "99")
	require.NoError(t, err)
	assert.Empty(t, none)
	assert.Equal(t, 1, repo.Calls)
}

func TestFindAllDistricts_UnreadableCacheEntryIsReplaced(t *testing.T) {
	ctx := context.Background()
	uc, repo, redis := newLookupFixture()
	require.NoError(t, redis.Set(ctx, constvars.RedisKeyDistrictList, "not a list", 0))

	districts, err := uc.FindAllDistricts(ctx)
	require.NoError(t, err)
	assert.Len(t, districts, 2)
	assert.Equal(t, 1, repo.Calls)
}

func TestFindAllDistricts_RedisDownFallsBackToStore(t *testing.T) {
	ctx := context.Background()
	uc, repo, redis := newLookupFixture()
	redis.GetErr = testutil.ErrInjected

	for i := 0; i < 2; i++ {
		districts, err := uc.FindAllDistricts(ctx)
		require.NoError(t, err)
		assert.Len(t, districts, 2)
	}
	assert.Equal(t, 2, repo.Calls)
}

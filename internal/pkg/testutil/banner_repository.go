package testutil

import (
	"context"
	"mediscan-service/internal/app/contracts"
	"mediscan-service/internal/app/models"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BannerRepository struct {
	mu      sync.Mutex
	banners map[string]models.Banner
	seq     int64

	// DeactivateFailures makes the next n DeactivateOlderThan calls fail.
	DeactivateFailures int
	// DeactivateErr makes every DeactivateOlderThan call fail while set.
	DeactivateErr error
}

var _ contracts.BannerRepository = (*BannerRepository)(nil)

func NewBannerRepository() *BannerRepository {
	return &BannerRepository{banners: map[string]models.Banner{}}
}

func (r *BannerRepository) Seed(banner models.Banner) string {
	id, _ := r.Create(context.Background(), &banner)
	return id
}

// ActiveIDs lists active banners, most recently activated first.
func (r *BannerRepository) ActiveIDs() []string {
	active, _ := r.FindActive(context.Background())
	ids := make([]string, 0, len(active))
	for _, banner := range active {
		ids = append(ids, banner.ID)
	}
	return ids
}

func (r *BannerRepository) Create(ctx context.Context, banner *models.Banner) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if banner.ID == "" {
		banner.ID = primitive.NewObjectID().Hex()
	}
	r.banners[banner.ID] = *banner
	return banner.ID, nil
}

func (r *BannerRepository) FindAll(ctx context.Context) ([]models.Banner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]models.Banner, 0, len(r.banners))
	for _, banner := range r.banners {
		result = append(result, banner)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *BannerRepository) FindByID(ctx context.Context, bannerID string) (*models.Banner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	banner, ok := r.banners[bannerID]
	if !ok {
		return nil, nil
	}
	return &banner, nil
}

func (r *BannerRepository) DeleteByID(ctx context.Context, bannerID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.banners[bannerID]
	delete(r.banners, bannerID)
	return ok, nil
}

func (r *BannerRepository) NextActivationSeq(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	return r.seq, nil
}

func (r *BannerRepository) MarkActive(ctx context.Context, bannerID string, seq int64, activatedAt time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	banner, ok := r.banners[bannerID]
	if !ok {
		return false, nil
	}
	banner.IsActive = true
	banner.ActivationSeq = seq
	banner.ActivatedAt = &activatedAt
	r.banners[bannerID] = banner
	return true, nil
}

func (r *BannerRepository) DeactivateOlderThan(ctx context.Context, bannerID string, seq int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.DeactivateErr != nil {
		return 0, r.DeactivateErr
	}
	if r.DeactivateFailures > 0 {
		r.DeactivateFailures--
		return 0, ErrInjected
	}

	var modified int64
	for id, banner := range r.banners {
		if id != bannerID && banner.IsActive && banner.ActivationSeq < seq {
			banner.IsActive = false
			r.banners[id] = banner
			modified++
		}
	}
	return modified, nil
}

func (r *BannerRepository) FindActiveNewerThan(ctx context.Context, seq int64) (*models.Banner, error) {
	active, _ := r.FindActive(ctx)
	if len(active) > 0 && active[0].ActivationSeq > seq {
		return &active[0], nil
	}
	return nil, nil
}

func (r *BannerRepository) DeactivateIfSeq(ctx context.Context, bannerID string, seq int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	banner, ok := r.banners[bannerID]
	if !ok || !banner.IsActive || banner.ActivationSeq != seq {
		return false, nil
	}
	banner.IsActive = false
	r.banners[bannerID] = banner
	return true, nil
}

func (r *BannerRepository) FindActive(ctx context.Context) ([]models.Banner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]models.Banner, 0)
	for _, banner := range r.banners {
		if banner.IsActive {
			result = append(result, banner)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ActivationSeq > result[j].ActivationSeq })
	return result, nil
}

func (r *BannerRepository) DeactivateAllExcept(ctx context.Context, bannerID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var modified int64
	for id, banner := range r.banners {
		if id != bannerID && banner.IsActive {
			banner.IsActive = false
			r.banners[id] = banner
			modified++
		}
	}
	return modified, nil
}

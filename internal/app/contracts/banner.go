package contracts

import (
	"context"
	"mediscan-service/internal/app/models"
	"mediscan-service/internal/pkg/dto/requests"
	"mediscan-service/internal/pkg/dto/responses"
	"time"
)

type BannerUsecase interface {
	Create(ctx context.Context, request *requests.CreateBanner) (*responses.Banner, error)
	FindAll(ctx context.Context) ([]responses.Banner, error)
	DeleteByID(ctx context.Context, identity *models.Identity, bannerID string) error
	Activate(ctx context.Context, identity *models.Identity, bannerID string) (*responses.Banner, error)
	GetActive(ctx context.Context) (*responses.Banner, error)
	Repair(ctx context.Context) (*responses.BannerRepair, error)
}

type BannerRepository interface {
	Create(ctx context.Context, banner *models.Banner) (bannerID string, err error)
	FindAll(ctx context.Context) ([]models.Banner, error)
	FindByID(ctx context.Context, bannerID string) (*models.Banner, error)
	DeleteByID(ctx context.Context, bannerID string) (deleted bool, err error)
	// NextActivationSeq draws the next value of the monotonic activation counter.
	NextActivationSeq(ctx context.Context) (int64, error)
	// MarkActive stamps the banner active with seq and reports whether it exists.
	MarkActive(ctx context.Context, bannerID string, seq int64, activatedAt time.Time) (matched bool, err error)
	// DeactivateOlderThan deactivates every other active banner whose sequence is lower than seq.
	DeactivateOlderThan(ctx context.Context, bannerID string, seq int64) (modified int64, err error)
	// FindActiveNewerThan returns an active banner with a sequence above seq, if any.
	FindActiveNewerThan(ctx context.Context, seq int64) (*models.Banner, error)
	// DeactivateIfSeq deactivates the banner only while it still holds seq.
	DeactivateIfSeq(ctx context.Context, bannerID string, seq int64) (modified bool, err error)
	// FindActive returns active banners, most recently activated first.
	FindActive(ctx context.Context) ([]models.Banner, error)
	DeactivateAllExcept(ctx context.Context, bannerID string) (modified int64, err error)
}

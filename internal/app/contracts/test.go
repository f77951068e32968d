package contracts

import (
	"context"
	"mediscan-service/internal/app/models"
	"mediscan-service/internal/pkg/dto/requests"
	"mediscan-service/internal/pkg/dto/responses"
	"time"
)

type TestUsecase interface {
	Create(ctx context.Context, identity *models.Identity, request *requests.CreateTest) (*responses.Test, error)
	FindAll(ctx context.Context) ([]responses.Test, error)
	ListUpcoming(ctx context.Context, now time.Time) ([]responses.Test, error)
	FindByID(ctx context.Context, testID string) (*responses.Test, error)
	Update(ctx context.Context, identity *models.Identity, testID string, request *requests.UpdateTest) (*responses.Test, error)
	DeleteByID(ctx context.Context, identity *models.Identity, testID string) error
	// TryClaimSlot takes one slot from the test or fails with SoldOut or NotFound.
	TryClaimSlot(ctx context.Context, testID string) (*models.Test, error)
	// ReleaseSlot gives one slot back to the test.
	ReleaseSlot(ctx context.Context, testID string) (*models.Test, error)
}

type TestRepository interface {
	Create(ctx context.Context, test *models.Test) (testID string, err error)
	FindAll(ctx context.Context) ([]models.Test, error)
	FindStartingFrom(ctx context.Context, from time.Time) ([]models.Test, error)
	FindByID(ctx context.Context, testID string) (*models.Test, error)
	Update(ctx context.Context, testID string, update models.TestUpdate) (*models.Test, error)
	DeleteByID(ctx context.Context, testID string) (deleted bool, err error)
	// DecrementSlotIfAvailable is a single conditional update. It returns nil
	// without error when the test is missing or has no slot left.
	DecrementSlotIfAvailable(ctx context.Context, testID string) (*models.Test, error)
	IncrementSlot(ctx context.Context, testID string) (*models.Test, error)
}

package contracts

import (
	"context"
	"mediscan-service/internal/app/models"
	"mediscan-service/internal/pkg/dto/requests"
	"mediscan-service/internal/pkg/dto/responses"
)

type BookingUsecase interface {
	Reserve(ctx context.Context, identity *models.Identity, testID string, request *requests.ReserveTest) (*responses.Booking, error)
	ListForTest(ctx context.Context, identity *models.Identity, testID string) ([]responses.Booking, error)
	ListForUser(ctx context.Context, identity *models.Identity, email string) ([]responses.Booking, error)
	FindByID(ctx context.Context, identity *models.Identity, bookingID string) (*responses.Booking, error)
	Cancel(ctx context.Context, identity *models.Identity, bookingID string) error
	RecordResult(ctx context.Context, identity *models.Identity, bookingID string, request *requests.RecordResult) (*responses.Booking, error)
	UploadResult(ctx context.Context, identity *models.Identity, bookingID string, request *requests.UploadResult) (*responses.Booking, error)
}

type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) (bookingID string, err error)
	FindByID(ctx context.Context, bookingID string) (*models.Booking, error)
	FindByTestID(ctx context.Context, testID string) ([]models.Booking, error)
	FindByEmail(ctx context.Context, email string) ([]models.Booking, error)
	// DeleteByID removes the booking and returns it, nil when nothing matched.
	DeleteByID(ctx context.Context, bookingID string) (*models.Booking, error)
	MarkDone(ctx context.Context, bookingID, pdfLink string) (*models.Booking, error)
}

// SlotReleaser hands a slot release to the durable release queue.
type SlotReleaser interface {
	EnqueueRelease(ctx context.Context, testID, reason string) error
}

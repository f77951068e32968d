package testutil

import (
	"context"
	"mediscan-service/internal/app/contracts"
	"mediscan-service/internal/app/models"
	"mediscan-service/internal/pkg/constvars"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingRepository struct {
	mu       sync.Mutex
	bookings map[string]models.Booking

	// CreateErr makes every Create call fail while set.
	CreateErr error
	// CreateLostAckErr stores the booking and still returns the error, the
	// way a write acknowledged after its deadline looks to the caller.
	CreateLostAckErr error
	FindByIDErr      error
}

var _ contracts.BookingRepository = (*BookingRepository)(nil)

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{bookings: map[string]models.Booking{}}
}

func (r *BookingRepository) Seed(booking models.Booking) string {
	id, _ := r.Create(context.Background(), &booking)
	return id
}

func (r *BookingRepository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.bookings)
}

func (r *BookingRepository) Create(ctx context.Context, booking *models.Booking) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.CreateErr != nil {
		return "", r.CreateErr
	}
	if booking.ID == "" {
		booking.ID = primitive.NewObjectID().Hex()
	}
	r.bookings[booking.ID] = *booking
	if r.CreateLostAckErr != nil {
		return "", r.CreateLostAckErr
	}
	return booking.ID, nil
}

func (r *BookingRepository) FindByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FindByIDErr != nil {
		return nil, r.FindByIDErr
	}
	booking, ok := r.bookings[bookingID]
	if !ok {
		return nil, nil
	}
	return &booking, nil
}

func (r *BookingRepository) FindByTestID(ctx context.Context, testID string) ([]models.Booking, error) {
	return r.filter(func(b models.Booking) bool { return b.TestID == testID }), nil
}

func (r *BookingRepository) FindByEmail(ctx context.Context, email string) ([]models.Booking, error) {
	return r.filter(func(b models.Booking) bool { return b.Email == email }), nil
}

func (r *BookingRepository) DeleteByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	booking, ok := r.bookings[bookingID]
	if !ok {
		return nil, nil
	}
	delete(r.bookings, bookingID)
	return &booking, nil
}

func (r *BookingRepository) MarkDone(ctx context.Context, bookingID, pdfLink string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	booking, ok := r.bookings[bookingID]
	if !ok {
		return nil, nil
	}
	booking.ReportStatus = constvars.BookingReportStatusDone
	booking.PdfLink = pdfLink
	booking.UpdatedAt = time.Now()
	r.bookings[bookingID] = booking
	return &booking, nil
}

func (r *BookingRepository) filter(keep func(models.Booking) bool) []models.Booking {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]models.Booking, 0)
	for _, booking := range r.bookings {
		if keep(booking) {
			result = append(result, booking)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

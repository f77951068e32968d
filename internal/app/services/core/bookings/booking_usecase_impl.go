package bookings

import (
	"bytes"
	"context"
	"mediscan-service/internal/app/config"
	"mediscan-service/internal/app/contracts"
	"mediscan-service/internal/app/models"
	"mediscan-service/internal/pkg/constvars"
	"mediscan-service/internal/pkg/dto/requests"
	"mediscan-service/internal/pkg/dto/responses"
	"mediscan-service/internal/pkg/exceptions"
	"mediscan-service/internal/pkg/utils"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const (
	defaultSagaTimeout  = 15 * time.Second
	enqueueTimeout      = 5 * time.Second
	resultObjectPrefix  = "result"
	releaseReasonInsert = "booking_insert_failed"
	releaseReasonCancel = "booking_cancelled"
)

type bookingUsecase struct {
	BookingRepository contracts.BookingRepository
	TestUsecase       contracts.TestUsecase
	AuthUsecase       contracts.AuthUsecase
	SlotReleaser      contracts.SlotReleaser
	Storage           contracts.Storage
	InternalConfig    *config.InternalConfig
	Log               *zap.Logger
}

func NewBookingUsecase(
	bookingRepository contracts.BookingRepository,
	testUsecase contracts.TestUsecase,
	authUsecase contracts.AuthUsecase,
	slotReleaser contracts.SlotReleaser,
	storage contracts.Storage,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.BookingUsecase {
	return &bookingUsecase{
		BookingRepository: bookingRepository,
		TestUsecase:       testUsecase,
		AuthUsecase:       authUsecase,
		SlotReleaser:      slotReleaser,
		Storage:           storage,
		InternalConfig:    internalConfig,
		Log:               logger,
	}
}

// Reserve claims a slot and records a pending booking. Both steps and the
// compensation run on a context detached from the request, so a client that
// disconnects mid way cannot leave a claimed slot without a booking.
func (uc *bookingUsecase) Reserve(ctx context.Context, identity *models.Identity, testID string, request *requests.ReserveTest) (*responses.Booking, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("bookingUsecase.Reserve called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTestIDKey, testID),
	)

	if identity == nil || identity.Email == "" {
		return nil, exceptions.ErrMissingIdentity(nil)
	}

	sagaCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), uc.sagaTimeout())
	defer cancel()

	test, err := uc.TestUsecase.TryClaimSlot(sagaCtx, testID)
	if err != nil {
		return nil, err
	}

	// the id is fixed before the insert so an ambiguous write can be checked
	booking := &models.Booking{
		ID:           primitive.NewObjectID().Hex(),
		TestID:       testID,
		Email:        identity.Email,
		Payload:      request.Payload,
		ReportStatus: constvars.BookingReportStatusPending,
	}
	booking.SetCreatedAtUpdatedAt()

	_, err = uc.BookingRepository.Create(sagaCtx, booking)
	if err != nil {
		persisted, settled := uc.insertOutcome(sagaCtx, requestID, booking.ID)
		if persisted == nil {
			if settled {
				uc.Log.Error("bookingUsecase.Reserve error inserting booking, compensating claimed slot",
					zap.String(constvars.LoggingRequestIDKey, requestID),
					zap.String(constvars.LoggingTestIDKey, testID),
					zap.Error(err),
				)
				uc.releaseSlot(sagaCtx, testID, releaseReasonInsert)
			}
			return nil, err
		}
		uc.Log.Warn("bookingUsecase.Reserve insert reported an error but the booking was stored",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingBookingIDKey, booking.ID),
			zap.Error(err),
		)
		booking = persisted
	}

	utils.LogBusinessEvent(uc.Log, "test_reserved", requestID,
		zap.String(constvars.LoggingTestIDKey, testID),
		zap.String(constvars.LoggingBookingIDKey, booking.ID),
		zap.Int(constvars.LoggingSlotsKey, test.Slots),
	)
	response := booking.ConvertIntoResponse()
	return &response, nil
}

func (uc *bookingUsecase) ListForTest(ctx context.Context, identity *models.Identity, testID string) ([]responses.Booking, error) {
	if err := uc.AuthUsecase.AuthorizeAdmin(ctx, identity); err != nil {
		return nil, err
	}

	bookings, err := uc.BookingRepository.FindByTestID(ctx, testID)
	if err != nil {
		return nil, err
	}
	return convertBookings(bookings), nil
}

// ListForUser returns the caller's own bookings. Only admins may ask for
// another email.
func (uc *bookingUsecase) ListForUser(ctx context.Context, identity *models.Identity, email string) ([]responses.Booking, error) {
	if identity == nil || identity.Email == "" {
		return nil, exceptions.ErrMissingIdentity(nil)
	}
	if email == "" {
		email = identity.Email
	}
	if email != identity.Email {
		if err := uc.AuthUsecase.AuthorizeAdmin(ctx, identity); err != nil {
			return nil, err
		}
	}

	bookings, err := uc.BookingRepository.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return convertBookings(bookings), nil
}

func (uc *bookingUsecase) FindByID(ctx context.Context, identity *models.Identity, bookingID string) (*responses.Booking, error) {
	booking, err := uc.findOwned(ctx, identity, bookingID)
	if err != nil {
		return nil, err
	}

	response := booking.ConvertIntoResponse()
	return &response, nil
}

// Cancel deletes the booking. The slot is only given back when configured and
// the booking was still pending, a finished test keeps its capacity consumed.
func (uc *bookingUsecase) Cancel(ctx context.Context, identity *models.Identity, bookingID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("bookingUsecase.Cancel called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBookingIDKey, bookingID),
	)

	if _, err := uc.findOwned(ctx, identity, bookingID); err != nil {
		return err
	}

	deleted, err := uc.BookingRepository.DeleteByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if deleted == nil {
		return exceptions.ErrBookingNotFound(nil, bookingID)
	}

	if uc.InternalConfig.Booking.CancelRestoresSlot && deleted.IsPending() {
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), uc.sagaTimeout())
		defer cancel()
		uc.releaseSlot(releaseCtx, deleted.TestID, releaseReasonCancel)
	}

	utils.LogBusinessEvent(uc.Log, "booking_cancelled", requestID,
		zap.String(constvars.LoggingBookingIDKey, bookingID),
		zap.String(constvars.LoggingTestIDKey, deleted.TestID),
	)
	return nil
}

// RecordResult marks the booking done. Repeating it with the same link
// succeeds and leaves the booking unchanged.
func (uc *bookingUsecase) RecordResult(ctx context.Context, identity *models.Identity, bookingID string, request *requests.RecordResult) (*responses.Booking, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("bookingUsecase.RecordResult called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBookingIDKey, bookingID),
	)

	if err := uc.AuthUsecase.AuthorizeAdmin(ctx, identity); err != nil {
		return nil, err
	}
	return uc.markDone(ctx, bookingID, request.PdfLink)
}

func (uc *bookingUsecase) UploadResult(ctx context.Context, identity *models.Identity, bookingID string, request *requests.UploadResult) (*responses.Booking, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("bookingUsecase.UploadResult called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBookingIDKey, bookingID),
	)

	if err := uc.AuthUsecase.AuthorizeAdmin(ctx, identity); err != nil {
		return nil, err
	}

	// no orphan objects for unknown bookings
	booking, err := uc.BookingRepository.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, exceptions.ErrBookingNotFound(nil, bookingID)
	}

	bucketName := uc.InternalConfig.Minio.ResultBucketName
	objectName := utils.GenerateFileName(resultObjectPrefix, bookingID, utils.FileExtension(request.FileName))
	contentType := request.ContentType
	if contentType == "" {
		contentType = constvars.MIMEApplicationPDF
	}

	pdfLink, err := uc.Storage.UploadFile(ctx, bytes.NewReader(request.File), int64(len(request.File)), bucketName, objectName, contentType)
	if err != nil {
		uc.Log.Error("bookingUsecase.UploadResult error uploading result file",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingBucketNameKey, bucketName),
			zap.String(constvars.LoggingObjectNameKey, objectName),
			zap.Error(err),
		)
		return nil, err
	}

	return uc.markDone(ctx, bookingID, pdfLink)
}

func (uc *bookingUsecase) markDone(ctx context.Context, bookingID, pdfLink string) (*responses.Booking, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	booking, err := uc.BookingRepository.MarkDone(ctx, bookingID, pdfLink)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, exceptions.ErrBookingNotFound(nil, bookingID)
	}

	utils.LogBusinessEvent(uc.Log, "result_recorded", requestID,
		zap.String(constvars.LoggingBookingIDKey, bookingID),
	)
	response := booking.ConvertIntoResponse()
	return &response, nil
}

// insertOutcome reports whether a failed insert left the booking behind.
// settled is false when the store could not answer, the slot then stays
// claimed since restoring it next to a stored booking would overbook.
func (uc *bookingUsecase) insertOutcome(ctx context.Context, requestID, bookingID string) (persisted *models.Booking, settled bool) {
	// the saga deadline may be what failed the insert
	lookupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), enqueueTimeout)
	defer cancel()

	persisted, err := uc.BookingRepository.FindByID(lookupCtx, bookingID)
	if err != nil {
		uc.Log.Error("bookingUsecase.Reserve unable to confirm failed insert, slot kept claimed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingBookingIDKey, bookingID),
			zap.Error(err),
		)
		return nil, false
	}
	return persisted, true
}

// findOwned loads a booking the caller owns. Anyone else needs the admin role.
func (uc *bookingUsecase) findOwned(ctx context.Context, identity *models.Identity, bookingID string) (*models.Booking, error) {
	if identity == nil || identity.Email == "" {
		return nil, exceptions.ErrMissingIdentity(nil)
	}

	booking, err := uc.BookingRepository.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, exceptions.ErrBookingNotFound(nil, bookingID)
	}

	if booking.Email != identity.Email {
		if err := uc.AuthUsecase.AuthorizeAdmin(ctx, identity); err != nil {
			return nil, err
		}
	}
	return booking, nil
}

// releaseSlot gives one slot back to the test, retrying in line first and
// handing the release to the durable queue when the store stays unreachable.
// Errors are logged only, the caller already has its own outcome to report.
func (uc *bookingUsecase) releaseSlot(ctx context.Context, testID, reason string) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	attempts := uc.InternalConfig.Booking.CompensationMaxAttempts
	if attempts <= 0 {
		attempts = 1
	}

retry:
	for attempt := 1; attempt <= attempts; attempt++ {
		_, err := uc.TestUsecase.ReleaseSlot(ctx, testID)
		if err == nil {
			uc.Log.Info("bookingUsecase.releaseSlot slot restored",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingTestIDKey, testID),
				zap.Int(constvars.LoggingAttemptKey, attempt),
			)
			return
		}
		if exceptions.HasErrorCode(err, constvars.ErrCodeNotFound) {
			uc.Log.Warn("bookingUsecase.releaseSlot test no longer exists, nothing to restore",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingTestIDKey, testID),
			)
			return
		}

		uc.Log.Warn("bookingUsecase.releaseSlot attempt failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingTestIDKey, testID),
			zap.Int(constvars.LoggingAttemptKey, attempt),
			zap.Error(err),
		)
		if attempt == attempts {
			break
		}
		select {
		case <-time.After(uc.InternalConfig.Booking.CompensationBackoff):
		case <-ctx.Done():
			break retry
		}
	}

	enqueueCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), enqueueTimeout)
	defer cancel()
	if err := uc.SlotReleaser.EnqueueRelease(enqueueCtx, testID, reason); err != nil {
		uc.Log.Error("bookingUsecase.releaseSlot slot could not be restored nor queued",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingTestIDKey, testID),
			zap.Error(err),
		)
		return
	}

	uc.Log.Warn("bookingUsecase.releaseSlot release handed to queue",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTestIDKey, testID),
	)
}

func (uc *bookingUsecase) sagaTimeout() time.Duration {
	if uc.InternalConfig.Booking.SagaTimeout > 0 {
		return uc.InternalConfig.Booking.SagaTimeout
	}
	return defaultSagaTimeout
}

func convertBookings(bookings []models.Booking) []responses.Booking {
	response := make([]responses.Booking, len(bookings))
	for i, eachBooking := range bookings {
		response[i] = eachBooking.ConvertIntoResponse()
	}
	return response
}

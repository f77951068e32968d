package bookings

import (
	"context"
	"mediscan-service/internal/app/config"
	"mediscan-service/internal/app/models"
	"mediscan-service/internal/app/services/core/auth"
	"mediscan-service/internal/app/services/core/tests"
	"mediscan-service/internal/pkg/constvars"
	"mediscan-service/internal/pkg/dto/requests"
	"mediscan-service/internal/pkg/dto/responses"
	"mediscan-service/internal/pkg/exceptions"
	"mediscan-service/internal/pkg/testutil"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	adminIdentity   = &models.Identity{Email: "admin@example.com"}
	patientIdentity = &models.Identity{Email: "patient@example.com"}
	otherIdentity   = &models.Identity{Email: "other@example.com"}
)

type bookingFixture struct {
	usecase  *bookingUsecase
	worker   *SlotReleaseWorker
	tests    *testutil.TestRepository
	bookings *testutil.BookingRepository
	queue    *testutil.SlotReleaseQueue
	storage  *testutil.Storage
	cfg      *config.InternalConfig
}

func newBookingFixture() *bookingFixture {
	users := testutil.NewUserRepository()
	users.Seed(models.User{Email: adminIdentity.Email, Role: constvars.UserRoleAdmin, Status: constvars.UserStatusActive})
	users.Seed(models.User{Email: patientIdentity.Email, Role: constvars.UserRoleUser, Status: constvars.UserStatusActive})
	users.Seed(models.User{Email: otherIdentity.Email, Role: constvars.UserRoleUser, Status: constvars.UserStatusActive})

	cfg := &config.InternalConfig{
		Booking: config.AppBooking{
			SagaTimeout:             5 * time.Second,
			CompensationMaxAttempts: 3,
			CompensationBackoff:     time.Millisecond,
		},
		Worker: config.AppWorker{
			ReleaseMaxBatch: 10,
			ReleaseMaxRetry: 3,
		},
		Minio: config.AppMinio{ResultBucketName: "results"},
	}

	log := zap.NewNop()
	authUsecase := auth.NewAuthUsecase(users, cfg, log)
	testRepo := testutil.NewTestRepository()
	testUsecase := tests.NewTestUsecase(testRepo, authUsecase, log)
	bookingRepo := testutil.NewBookingRepository()
	queue := testutil.NewSlotReleaseQueue()
	storage := testutil.NewStorage()

	return &bookingFixture{
		usecase:  NewBookingUsecase(bookingRepo, testUsecase, authUsecase, queue, storage, cfg, log).(*bookingUsecase),
		worker:   NewSlotReleaseWorker(log, cfg, queue, testUsecase),
		tests:    testRepo,
		bookings: bookingRepo,
		queue:    queue,
		storage:  storage,
		cfg:      cfg,
	}
}

func TestReserve_LastSlotTwoConcurrentCallers(t *testing.T) {
	ctx := context.Background()
	f := newBookingFixture()
	testID := f.tests.Seed(models.Test{TestName: "T1", Slots: 1})

	var (
		wg      sync.WaitGroup
		results [2]*responses.Booking
		errs    [2]error
	)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = f.usecase.Reserve(ctx, patientIdentity, testID, &requests.ReserveTest{})
		}(i)
	}
	wg.Wait()

	var booked, soldOut int
	for i := 0; i < 2; i++ {
		if errs[i] == nil {
			booked++
			assert.Equal(t, constvars.BookingReportStatusPending, results[i].ReportStatus)
		} else if exceptions.HasErrorCode(errs[i], constvars.ErrCodeSoldOut) {
			soldOut++
		}
	}
	assert.Equal(t, 1, booked)
	assert.Equal(t, 1, soldOut)
	assert.Equal(t, 0, f.tests.Slots(testID))
	assert.Equal(t, 1, f.bookings.Count())
}

func TestReserve_ConcurrentCallersMatchCapacity(t *testing.T) {
	const (
		slots   = 9
		callers = 40
	)
	ctx := context.Background()
	f := newBookingFixture()
	testID := f.tests.Seed(models.Test{TestName: "Lipid profile", Slots: slots})

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		booked  int
		soldOut int
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.usecase.Reserve(ctx, patientIdentity, testID, &requests.ReserveTest{})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				booked++
			} else if exceptions.HasErrorCode(err, constvars.ErrCodeSoldOut) {
				soldOut++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, slots, booked)
	assert.Equal(t, callers-slots, soldOut)
	assert.Equal(t, 0, f.tests.Slots(testID))
	assert.Equal(t, slots, f.bookings.Count(), "every claimed slot has exactly one booking")
}

func TestReserve_UnknownTest(t *testing.T) {
	f := newBookingFixture()

	_, err := f.usecase.Reserve(context.Background(), patientIdentity, "65f1c0de1111111111111111", &requests.ReserveTest{})
	assert.True(t, exceptions.HasErrorCode(err, constvars.ErrCodeNotFound))
	assert.Equal(t, 0, f.bookings.Count())
}

func TestReserve_InsertFailureRestoresSlot(t *testing.T) {
	ctx := context.Background()
	f := newBookingFixture()
	testID := f.tests.Seed(models.Test{TestName: "CBC", Slots: 3})
	f.bookings.CreateErr = exceptions.ErrMongoDBInsertDocument(testutil.ErrInjected)

	_, err := f.usecase.Reserve(ctx, patientIdentity, testID, &requests.ReserveTest{})
	require.Error(t, err)
	assert.True(t, exceptions.HasErrorCode(err, constvars.ErrCodeStoreError), "caller sees the original store error")

	assert.Equal(t, 3, f.tests.Slots(testID))
	assert.Equal(t, 0, f.bookings.Count())
	assert.Empty(t, f.queue.Pending())
}

func TestReserve_InsertErrorAfterWriteKeepsBooking(t *testing.T) {
	ctx := context.Background()
	f := newBookingFixture()
	testID := f.tests.Seed(models.Test{TestName: "CBC", Slots: 1})
	f.bookings.CreateLostAckErr = exceptions.ErrMongoDBInsertDocument(context.DeadlineExceeded)

	booking, err := f.usecase.Reserve(ctx, patientIdentity, testID, &requests.ReserveTest{})
	require.NoError(t, err)
	require.NotNil(t, booking)

	assert.Equal(t, 1, f.bookings.Count())
	assert.Equal(t, 0, f.tests.Slots(testID), "slot stays with the stored booking")
	assert.Empty(t, f.queue.Pending())

	stored, err := f.bookings.FindByID(ctx, booking.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, patientIdentity.Email, stored.Email)
}

func TestReserve_UnconfirmedInsertKeepsSlotClaimed(t *testing.T) {
	ctx := context.Background()
	f := newBookingFixture()
	testID := f.tests.Seed(models.Test{TestName: "CBC", Slots: 1})
	f.bookings.CreateLostAckErr = exceptions.ErrMongoDBInsertDocument(context.DeadlineExceeded)
	f.bookings.FindByIDErr = exceptions.ErrMongoDBFindDocument(testutil.ErrInjected)

	_, err := f.usecase.Reserve(ctx, patientIdentity, testID, &requests.ReserveTest{})
	require.Error(t, err)

	assert.Equal(t, 1, f.bookings.Count())
	assert.Equal(t, 0, f.tests.Slots(testID))
	assert.Empty(t, f.queue.Pending())
}

func TestReserve_TransientCompensationFailureIsRetried(t *testing.T) {
	ctx := context.Background()
	f := newBookingFixture()
	testID := f.tests.Seed(models.Test{TestName: "CBC", Slots: 3})
	f.bookings.CreateErr = exceptions.ErrMongoDBInsertDocument(testutil.ErrInjected)
	f.tests.IncrementFailures = 2

	_, err := f.usecase.Reserve(ctx, patientIdentity, testID, &requests.ReserveTest{})
	require.Error(t, err)

	assert.Equal(t, 3, f.tests.Slots(testID))
	assert.Equal(t, 3, f.tests.IncrementCalls)
	assert.Empty(t, f.queue.Pending())
}

func TestReserve_PersistentCompensationFailureIsQueued(t *testing.T) {
	ctx := context.Background()
	f := newBookingFixture()
	testID := f.tests.Seed(models.Test{TestName: "CBC", Slots: 3})
	f.bookings.CreateErr = exceptions.ErrMongoDBInsertDocument(testutil.ErrInjected)
	f.tests.IncrementErr = exceptions.ErrMongoDBUpdateDocument(testutil.ErrInjected)

	_, err := f.usecase.Reserve(ctx, patientIdentity, testID, &requests.ReserveTest{})
	require.Error(t, err)
	assert.Equal(t, 2, f.tests.Slots(testID))

	pending := f.queue.Pending()
	require.Len(t, pending, 1)
	assert.Equal(t, testID, pending[0].TestID)
	assert.Equal(t, releaseReasonInsert, pending[0].Reason)

	// store comes back, the worker settles the release
	f.tests.IncrementErr = nil
	restored := f.worker.ProcessBatch(ctx)
	assert.Equal(t, 1, restored)
	assert.Equal(t, 3, f.tests.Slots(testID))
	assert.Empty(t, f.queue.Pending())
	assert.Zero(t, f.queue.Unacked())
}

func TestReserve_DetachedFromCallerCancellation(t *testing.T) {
	f := newBookingFixture()
	testID := f.tests.Seed(models.Test{TestName: "CBC", Slots: 1})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	booking, err := f.usecase.Reserve(ctx, patientIdentity, testID, &requests.ReserveTest{
		Payload: map[string]interface{}{"name": "Karim"},
	})
	require.NoError(t, err)
	assert.Equal(t, patientIdentity.Email, booking.Email)
	assert.Equal(t, "Karim", booking.Payload["name"])
	assert.Equal(t, 0, f.tests.Slots(testID))
}

func TestRecordResult_Idempotent(t *testing.T) {
	ctx := context.Background()
	f := newBookingFixture()
	testID := f.tests.Seed(models.Test{TestName: "CBC", Slots: 1})
	booking, err := f.usecase.Reserve(ctx, patientIdentity, testID, &requests.ReserveTest{})
	require.NoError(t, err)

	request := &requests.RecordResult{PdfLink: "https://files.example.com/report.pdf"}
	for i := 0; i < 2; i++ {
		done, err := f.usecase.RecordResult(ctx, adminIdentity, booking.ID, request)
		require.NoError(t, err, "attempt %d", i+1)
		assert.Equal(t, constvars.BookingReportStatusDone, done.ReportStatus)
		assert.Equal(t, request.PdfLink, done.PdfLink)
	}

	_, err = f.usecase.RecordResult(ctx, adminIdentity, "65f1c0de1111111111111111", request)
	assert.True(t, exceptions.HasErrorCode(err, constvars.ErrCodeNotFound))
}

func TestRecordResult_ForbiddenLeavesBookingUntouched(t *testing.T) {
	ctx := context.Background()
	f := newBookingFixture()
	testID := f.tests.Seed(models.Test{TestName: "CBC", Slots: 1})
	booking, err := f.usecase.Reserve(ctx, patientIdentity, testID, &requests.ReserveTest{})
	require.NoError(t, err)

	_, err = f.usecase.RecordResult(ctx, patientIdentity, booking.ID, &requests.RecordResult{PdfLink: "https://x.example.com/a.pdf"})
	assert.True(t, exceptions.HasErrorCode(err, constvars.ErrCodeForbidden))

	stored, err := f.bookings.FindByID(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, constvars.BookingReportStatusPending, stored.ReportStatus)
	assert.Empty(t, stored.PdfLink)
}

func TestUploadResult(t *testing.T) {
	ctx := context.Background()
	f := newBookingFixture()
	testID := f.tests.Seed(models.Test{TestName: "CBC", Slots: 1})
	booking, err := f.usecase.Reserve(ctx, patientIdentity, testID, &requests.ReserveTest{})
	require.NoError(t, err)

	pdf := []byte("%PDF-1.4 report")
	done, err := f.usecase.UploadResult(ctx, adminIdentity, booking.ID, &requests.UploadResult{
		File:        pdf,
		FileName:    "report.pdf",
		ContentType: constvars.MIMEApplicationPDF,
	})
	require.NoError(t, err)
	assert.Equal(t, constvars.BookingReportStatusDone, done.ReportStatus)
	assert.True(t, strings.HasPrefix(done.PdfLink, testutil.StorageBaseUrl+"/results/result_"+booking.ID))
	assert.Len(t, f.storage.Objects, 1)

	t.Run("unknown booking uploads nothing", func(t *testing.T) {
		_, err := f.usecase.UploadResult(ctx, adminIdentity, "65f1c0de1111111111111111", &requests.UploadResult{File: pdf, FileName: "x.pdf"})
		assert.True(t, exceptions.HasErrorCode(err, constvars.ErrCodeNotFound))
		assert.Len(t, f.storage.Objects, 1)
	})
}

func TestCancel(t *testing.T) {
	ctx := context.Background()

	t.Run("owner cancels without restoring the slot by default", func(t *testing.T) {
		f := newBookingFixture()
		testID := f.tests.Seed(models.Test{TestName: "CBC", Slots: 1})
		booking, err := f.usecase.Reserve(ctx, patientIdentity, testID, &requests.ReserveTest{})
		require.NoError(t, err)

		require.NoError(t, f.usecase.Cancel(ctx, patientIdentity, booking.ID))
		assert.Equal(t, 0, f.bookings.Count())
		assert.Equal(t, 0, f.tests.Slots(testID))

		err = f.usecase.Cancel(ctx, patientIdentity, booking.ID)
		assert.True(t, exceptions.HasErrorCode(err, constvars.ErrCodeNotFound))
	})

	t.Run("configured cancellation restores a pending slot", func(t *testing.T) {
		f := newBookingFixture()
		f.cfg.Booking.CancelRestoresSlot = true
		testID := f.tests.Seed(models.Test{TestName: "CBC", Slots: 1})
		booking, err := f.usecase.Reserve(ctx, patientIdentity, testID, &requests.ReserveTest{})
		require.NoError(t, err)

		require.NoError(t, f.usecase.Cancel(ctx, adminIdentity, booking.ID))
		assert.Equal(t, 1, f.tests.Slots(testID))
	})

	t.Run("finished bookings keep their slot consumed", func(t *testing.T) {
		f := newBookingFixture()
		f.cfg.Booking.CancelRestoresSlot = true
		testID := f.tests.Seed(models.Test{TestName: "CBC", Slots: 1})
		booking, err := f.usecase.Reserve(ctx, patientIdentity, testID, &requests.ReserveTest{})
		require.NoError(t, err)
		_, err = f.usecase.RecordResult(ctx, adminIdentity, booking.ID, &requests.RecordResult{PdfLink: "https://x.example.com/a.pdf"})
		require.NoError(t, err)

		require.NoError(t, f.usecase.Cancel(ctx, adminIdentity, booking.ID))
		assert.Equal(t, 0, f.tests.Slots(testID))
	})

	t.Run("strangers are forbidden", func(t *testing.T) {
		f := newBookingFixture()
		testID := f.tests.Seed(models.Test{TestName: "CBC", Slots: 1})
		booking, err := f.usecase.Reserve(ctx, patientIdentity, testID, &requests.ReserveTest{})
		require.NoError(t, err)

		err = f.usecase.Cancel(ctx, otherIdentity, booking.ID)
		assert.True(t, exceptions.HasErrorCode(err, constvars.ErrCodeForbidden))
		assert.Equal(t, 1, f.bookings.Count())
	})
}

func TestListBookings(t *testing.T) {
	ctx := context.Background()
	f := newBookingFixture()
	testID := f.tests.Seed(models.Test{TestName: "CBC", Slots: 5})
	for _, identity := range []*models.Identity{patientIdentity, patientIdentity, otherIdentity} {
		_, err := f.usecase.Reserve(ctx, identity, testID, &requests.ReserveTest{})
		require.NoError(t, err)
	}

	own, err := f.usecase.ListForUser(ctx, patientIdentity, "")
	require.NoError(t, err)
	assert.Len(t, own, 2)

	_, err = f.usecase.ListForUser(ctx, patientIdentity, otherIdentity.Email)
	assert.True(t, exceptions.HasErrorCode(err, constvars.ErrCodeForbidden))

	others, err := f.usecase.ListForUser(ctx, adminIdentity, otherIdentity.Email)
	require.NoError(t, err)
	assert.Len(t, others, 1)

	all, err := f.usecase.ListForTest(ctx, adminIdentity, testID)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = f.usecase.ListForTest(ctx, patientIdentity, testID)
	assert.True(t, exceptions.HasErrorCode(err, constvars.ErrCodeForbidden))
}

package tests

import (
	"context"
	"mediscan-service/internal/app/contracts"
	"mediscan-service/internal/app/models"
	"mediscan-service/internal/pkg/constvars"
	"mediscan-service/internal/pkg/dto/requests"
	"mediscan-service/internal/pkg/dto/responses"
	"mediscan-service/internal/pkg/exceptions"
	"time"

	"go.uber.org/zap"
)

type testUsecase struct {
	TestRepository contracts.TestRepository
	AuthUsecase    contracts.AuthUsecase
	Log            *zap.Logger
}

func NewTestUsecase(
	testRepository contracts.TestRepository,
	authUsecase contracts.AuthUsecase,
	logger *zap.Logger,
) contracts.TestUsecase {
	return &testUsecase{
		TestRepository: testRepository,
		AuthUsecase:    authUsecase,
		Log:            logger,
	}
}

func (uc *testUsecase) Create(ctx context.Context, identity *models.Identity, request *requests.CreateTest) (*responses.Test, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("testUsecase.Create called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	if err := uc.AuthUsecase.AuthorizeAdmin(ctx, identity); err != nil {
		return nil, err
	}

	test := &models.Test{
		TestName:      request.TestName,
		Image:         request.Image,
		Details:       request.Details,
		Price:         request.Price,
		Slots:         request.Slots,
		TestStartDate: request.TestStartDate,
	}
	test.SetCreatedAtUpdatedAt()

	testID, err := uc.TestRepository.Create(ctx, test)
	if err != nil {
		uc.Log.Error("testUsecase.Create error inserting test",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	test.ID = testID

	uc.Log.Info("testUsecase.Create succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTestIDKey, testID),
	)
	response := test.ConvertIntoResponse()
	return &response, nil
}

func (uc *testUsecase) FindAll(ctx context.Context) ([]responses.Test, error) {
	tests, err := uc.TestRepository.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return convertTests(tests), nil
}

// ListUpcoming returns tests starting at or after now.
func (uc *testUsecase) ListUpcoming(ctx context.Context, now time.Time) ([]responses.Test, error) {
	tests, err := uc.TestRepository.FindStartingFrom(ctx, now)
	if err != nil {
		return nil, err
	}
	return convertTests(tests), nil
}

func (uc *testUsecase) FindByID(ctx context.Context, testID string) (*responses.Test, error) {
	test, err := uc.TestRepository.FindByID(ctx, testID)
	if err != nil {
		return nil, err
	}
	if test == nil {
		return nil, exceptions.ErrTestNotFound(nil, testID)
	}

	response := test.ConvertIntoResponse()
	return &response, nil
}

func (uc *testUsecase) Update(ctx context.Context, identity *models.Identity, testID string, request *requests.UpdateTest) (*responses.Test, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("testUsecase.Update called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTestIDKey, testID),
	)

	if err := uc.AuthUsecase.AuthorizeAdmin(ctx, identity); err != nil {
		return nil, err
	}

	test, err := uc.TestRepository.Update(ctx, testID, models.TestUpdate{
		TestName:      request.TestName,
		Image:         request.Image,
		Details:       request.Details,
		Price:         request.Price,
		Slots:         request.Slots,
		TestStartDate: request.TestStartDate,
	})
	if err != nil {
		uc.Log.Error("testUsecase.Update error updating test",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if test == nil {
		return nil, exceptions.ErrTestNotFound(nil, testID)
	}

	response := test.ConvertIntoResponse()
	return &response, nil
}

func (uc *testUsecase) DeleteByID(ctx context.Context, identity *models.Identity, testID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("testUsecase.DeleteByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTestIDKey, testID),
	)

	if err := uc.AuthUsecase.AuthorizeAdmin(ctx, identity); err != nil {
		return err
	}

	deleted, err := uc.TestRepository.DeleteByID(ctx, testID)
	if err != nil {
		return err
	}
	if !deleted {
		return exceptions.ErrTestNotFound(nil, testID)
	}
	return nil
}

// TryClaimSlot relies on the conditional decrement alone. The follow-up read
// only classifies a miss and never decides whether a slot is taken.
func (uc *testUsecase) TryClaimSlot(ctx context.Context, testID string) (*models.Test, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	test, err := uc.TestRepository.DecrementSlotIfAvailable(ctx, testID)
	if err != nil {
		uc.Log.Error("testUsecase.TryClaimSlot error claiming slot",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingTestIDKey, testID),
			zap.Error(err),
		)
		return nil, err
	}
	if test != nil {
		uc.Log.Info("testUsecase.TryClaimSlot claimed slot",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingTestIDKey, testID),
			zap.Int(constvars.LoggingSlotsKey, test.Slots),
		)
		return test, nil
	}

	existing, err := uc.TestRepository.FindByID(ctx, testID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, exceptions.ErrTestNotFound(nil, testID)
	}
	return nil, exceptions.ErrSoldOut(nil, testID)
}

func (uc *testUsecase) ReleaseSlot(ctx context.Context, testID string) (*models.Test, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	test, err := uc.TestRepository.IncrementSlot(ctx, testID)
	if err != nil {
		return nil, err
	}
	if test == nil {
		return nil, exceptions.ErrTestNotFound(nil, testID)
	}

	uc.Log.Info("testUsecase.ReleaseSlot released slot",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTestIDKey, testID),
		zap.Int(constvars.LoggingSlotsKey, test.Slots),
	)
	return test, nil
}

func convertTests(tests []models.Test) []responses.Test {
	response := make([]responses.Test, len(tests))
	for i, eachTest := range tests {
		response[i] = eachTest.ConvertIntoResponse()
	}
	return response
}

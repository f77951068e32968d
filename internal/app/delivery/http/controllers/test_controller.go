package controllers

import (
	"context"
	"mediscan-service/internal/app/contracts"
	"mediscan-service/internal/pkg/constvars"
	"mediscan-service/internal/pkg/dto/requests"
	"mediscan-service/internal/pkg/exceptions"
	"mediscan-service/internal/pkg/utils"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type TestController struct {
	Log         *zap.Logger
	TestUsecase contracts.TestUsecase
}

func NewTestController(logger *zap.Logger, testUsecase contracts.TestUsecase) *TestController {
	return &TestController{
		Log:         logger,
		TestUsecase: testUsecase,
	}
}

// FindAll lists every test, or only the upcoming ones with ?upcoming=true.
func (ctrl *TestController) FindAll(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	upcoming := utils.ParseBoolQueryParam(r, constvars.URLQueryParamUpcoming)
	ctrl.Log.Info("TestController.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Bool(constvars.URLQueryParamUpcoming, upcoming),
	)

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	var (
		result interface{}
		err    error
	)
	if upcoming {
		result, err = ctrl.TestUsecase.ListUpcoming(ctx, time.Now())
	} else {
		result, err = ctrl.TestUsecase.FindAll(ctx)
	}
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetTestsSuccessMessage, result)
}

func (ctrl *TestController) FindByID(w http.ResponseWriter, r *http.Request) {
	testID := chi.URLParam(r, constvars.URLParamID)
	if err := utils.ValidateUrlParamID(testID); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(err, constvars.URLParamID))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	result, err := ctrl.TestUsecase.FindByID(ctx, testID)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetTestSuccessMessage, result)
}

func (ctrl *TestController) Create(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	ctrl.Log.Info("TestController.Create called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	request := new(requests.CreateTest)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		ctrl.Log.Error("TestController.Create error decoding JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	utils.SanitizeCreateTestRequest(request)

	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	result, err := ctrl.TestUsecase.Create(ctx, identityFromRequest(r), request)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreateTestSuccessMessage, result)
}

func (ctrl *TestController) Update(w http.ResponseWriter, r *http.Request) {
	testID := chi.URLParam(r, constvars.URLParamID)
	if err := utils.ValidateUrlParamID(testID); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(err, constvars.URLParamID))
		return
	}

	request := new(requests.UpdateTest)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	result, err := ctrl.TestUsecase.Update(ctx, identityFromRequest(r), testID, request)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UpdateTestSuccessMessage, result)
}

func (ctrl *TestController) DeleteByID(w http.ResponseWriter, r *http.Request) {
	testID := chi.URLParam(r, constvars.URLParamID)
	if err := utils.ValidateUrlParamID(testID); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(err, constvars.URLParamID))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	if err := ctrl.TestUsecase.DeleteByID(ctx, identityFromRequest(r), testID); err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DeleteTestSuccessMessage, nil)
}

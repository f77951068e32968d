package controllers

import (
	"context"
	"io"
	"mediscan-service/internal/app/config"
	"mediscan-service/internal/app/contracts"
	"mediscan-service/internal/pkg/constvars"
	"mediscan-service/internal/pkg/dto/requests"
	"mediscan-service/internal/pkg/exceptions"
	"mediscan-service/internal/pkg/utils"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type BookingController struct {
	Log            *zap.Logger
	BookingUsecase contracts.BookingUsecase
	InternalConfig *config.InternalConfig
}

func NewBookingController(logger *zap.Logger, bookingUsecase contracts.BookingUsecase, internalConfig *config.InternalConfig) *BookingController {
	return &BookingController{
		Log:            logger,
		BookingUsecase: bookingUsecase,
		InternalConfig: internalConfig,
	}
}

// Reserve claims a slot of the test in the path. The body is an optional
// free form payload stored with the booking.
func (ctrl *BookingController) Reserve(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	testID := chi.URLParam(r, constvars.URLParamID)
	ctrl.Log.Info("BookingController.Reserve called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTestIDKey, testID),
	)

	if err := utils.ValidateUrlParamID(testID); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(err, constvars.URLParamID))
		return
	}

	request := new(requests.ReserveTest)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil && err != io.EOF {
		ctrl.Log.Error("BookingController.Reserve error decoding JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	result, err := ctrl.BookingUsecase.Reserve(ctx, identityFromRequest(r), testID, request)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.ReserveTestSuccessMessage, result)
}

func (ctrl *BookingController) ListForTest(w http.ResponseWriter, r *http.Request) {
	testID := chi.URLParam(r, constvars.URLParamID)
	if err := utils.ValidateUrlParamID(testID); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(err, constvars.URLParamID))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	result, err := ctrl.BookingUsecase.ListForTest(ctx, identityFromRequest(r), testID)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetBookingsSuccessMessage, result)
}

// ListForUser returns the caller's bookings. Admins may pass ?email= to look
// at someone else's.
func (ctrl *BookingController) ListForUser(w http.ResponseWriter, r *http.Request) {
	email := strings.ToLower(strings.TrimSpace(r.URL.Query().Get(constvars.URLQueryParamEmail)))

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	result, err := ctrl.BookingUsecase.ListForUser(ctx, identityFromRequest(r), email)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetBookingsSuccessMessage, result)
}

func (ctrl *BookingController) FindByID(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, constvars.URLParamID)
	if err := utils.ValidateUrlParamID(bookingID); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(err, constvars.URLParamID))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	result, err := ctrl.BookingUsecase.FindByID(ctx, identityFromRequest(r), bookingID)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetBookingSuccessMessage, result)
}

func (ctrl *BookingController) Cancel(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, constvars.URLParamID)
	if err := utils.ValidateUrlParamID(bookingID); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(err, constvars.URLParamID))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	if err := ctrl.BookingUsecase.Cancel(ctx, identityFromRequest(r), bookingID); err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.CancelBookingSuccessMessage, nil)
}

func (ctrl *BookingController) RecordResult(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	bookingID := chi.URLParam(r, constvars.URLParamID)
	ctrl.Log.Info("BookingController.RecordResult called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBookingIDKey, bookingID),
	)

	if err := utils.ValidateUrlParamID(bookingID); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(err, constvars.URLParamID))
		return
	}

	request := new(requests.RecordResult)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	utils.SanitizeRecordResultRequest(request)

	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	result, err := ctrl.BookingUsecase.RecordResult(ctx, identityFromRequest(r), bookingID, request)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.RecordResultSuccessMessage, result)
}

// UploadResult expects the PDF in the "result" field of a multipart form.
func (ctrl *BookingController) UploadResult(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	bookingID := chi.URLParam(r, constvars.URLParamID)
	ctrl.Log.Info("BookingController.UploadResult called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBookingIDKey, bookingID),
	)

	if err := utils.ValidateUrlParamID(bookingID); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(err, constvars.URLParamID))
		return
	}

	maxSize := ctrl.InternalConfig.Minio.ResultMaxUploadSizeInMB
	request, err := utils.BuildUploadResultRequest(r, maxSize)
	if err != nil {
		ctrl.Log.Error("BookingController.UploadResult error parsing multipart form",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseMultipartForm(err))
		return
	}

	if err := utils.ValidateResultFile(request.FileName, request.File, maxSize); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrResultFileValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	result, err := ctrl.BookingUsecase.UploadResult(ctx, identityFromRequest(r), bookingID, request)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.RecordResultSuccessMessage, result)
}

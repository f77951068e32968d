package controllers

import (
	"context"
	"mediscan-service/internal/app/contracts"
	"mediscan-service/internal/pkg/constvars"
	"mediscan-service/internal/pkg/dto/requests"
	"mediscan-service/internal/pkg/exceptions"
	"mediscan-service/internal/pkg/utils"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type BannerController struct {
	Log           *zap.Logger
	BannerUsecase contracts.BannerUsecase
	AuthUsecase   contracts.AuthUsecase
}

func NewBannerController(logger *zap.Logger, bannerUsecase contracts.BannerUsecase, authUsecase contracts.AuthUsecase) *BannerController {
	return &BannerController{
		Log:           logger,
		BannerUsecase: bannerUsecase,
		AuthUsecase:   authUsecase,
	}
}

func (ctrl *BannerController) FindAll(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	result, err := ctrl.BannerUsecase.FindAll(ctx)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetBannersSuccessMessage, result)
}

func (ctrl *BannerController) GetActive(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	result, err := ctrl.BannerUsecase.GetActive(ctx)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetActiveBannerSuccessMessage, result)
}

func (ctrl *BannerController) Create(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	ctrl.Log.Info("BannerController.Create called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	request := new(requests.CreateBanner)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		ctrl.Log.Error("BannerController.Create error decoding JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	utils.SanitizeCreateBannerRequest(request)

	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	result, err := ctrl.BannerUsecase.Create(ctx, request)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreateBannerSuccessMessage, result)
}

func (ctrl *BannerController) Activate(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	bannerID := chi.URLParam(r, constvars.URLParamID)
	ctrl.Log.Info("BannerController.Activate called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBannerIDKey, bannerID),
	)

	if err := utils.ValidateUrlParamID(bannerID); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(err, constvars.URLParamID))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	result, err := ctrl.BannerUsecase.Activate(ctx, identityFromRequest(r), bannerID)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ActivateBannerSuccessMessage, result)
}

// Repair runs the same collapse as the repair worker, on demand.
func (ctrl *BannerController) Repair(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	if err := ctrl.AuthUsecase.AuthorizeAdmin(ctx, identityFromRequest(r)); err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	result, err := ctrl.BannerUsecase.Repair(ctx)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.RepairBannersSuccessMessage, result)
}

func (ctrl *BannerController) DeleteByID(w http.ResponseWriter, r *http.Request) {
	bannerID := chi.URLParam(r, constvars.URLParamID)
	if err := utils.ValidateUrlParamID(bannerID); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(err, constvars.URLParamID))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	if err := ctrl.BannerUsecase.DeleteByID(ctx, identityFromRequest(r), bannerID); err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DeleteBannerSuccessMessage, nil)
}

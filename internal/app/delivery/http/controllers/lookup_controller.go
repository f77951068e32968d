package controllers

import (
	"context"
	"mediscan-service/internal/app/contracts"
	"mediscan-service/internal/pkg/constvars"
	"mediscan-service/internal/pkg/utils"
	"net/http"

	"go.uber.org/zap"
)

type LookupController struct {
	Log           *zap.Logger
	LookupUsecase contracts.LookupUsecase
}

func NewLookupController(logger *zap.Logger, lookupUsecase contracts.LookupUsecase) *LookupController {
	return &LookupController{
		Log:           logger,
		LookupUsecase: lookupUsecase,
	}
}

func (ctrl *LookupController) FindAllDistricts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	result, err := ctrl.LookupUsecase.FindAllDistricts(ctx)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetDistrictsSuccessMessage, result)
}

func (ctrl *LookupController) FindUpazilas(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	result, err := ctrl.LookupUsecase.FindUpazilas(ctx, r.URL.Query().Get(constvars.URLQueryParamDistrictID))
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetUpazilasSuccessMessage, result)
}

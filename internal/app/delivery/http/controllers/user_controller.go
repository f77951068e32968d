package controllers

import (
	"context"
	"mediscan-service/internal/app/contracts"
	"mediscan-service/internal/pkg/constvars"
	"mediscan-service/internal/pkg/dto/requests"
	"mediscan-service/internal/pkg/dto/responses"
	"mediscan-service/internal/pkg/exceptions"
	"mediscan-service/internal/pkg/utils"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type UserController struct {
	Log         *zap.Logger
	UserUsecase contracts.UserUsecase
	AuthUsecase contracts.AuthUsecase
}

func NewUserController(logger *zap.Logger, userUsecase contracts.UserUsecase, authUsecase contracts.AuthUsecase) *UserController {
	return &UserController{
		Log:         logger,
		UserUsecase: userUsecase,
		AuthUsecase: authUsecase,
	}
}

func (ctrl *UserController) Create(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	ctrl.Log.Info("UserController.Create called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	request := new(requests.CreateUser)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		ctrl.Log.Error("UserController.Create error decoding JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	utils.SanitizeCreateUserRequest(request)

	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	result, err := ctrl.UserUsecase.Create(ctx, request)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreateUserSuccessMessage, result)
}

func (ctrl *UserController) FindAll(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	result, err := ctrl.UserUsecase.FindAll(ctx, identityFromRequest(r))
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetUsersSuccessMessage, result)
}

// IsAdmin only answers for the caller's own email.
func (ctrl *UserController) IsAdmin(w http.ResponseWriter, r *http.Request) {
	identity := identityFromRequest(r)
	email := strings.ToLower(strings.TrimSpace(chi.URLParam(r, constvars.URLParamID)))

	if identity == nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingIdentity(nil))
		return
	}
	if email != identity.Email {
		utils.LogSecurityEvent(ctrl.Log, "admin_probe_foreign_email", utils.GetRequestID(r.Context()), utils.SeverityLow,
			zap.String(constvars.LoggingEmailKey, identity.Email),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrNotOwner(nil))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	isAdmin, err := ctrl.AuthUsecase.IsAdmin(ctx, identity)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.CheckAdminSuccessMessage, responses.IsAdmin{Admin: isAdmin})
}

func (ctrl *UserController) SetRole(w http.ResponseWriter, r *http.Request) {
	request := new(requests.SetUserRole)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	utils.SanitizeSetUserRoleRequest(request)

	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctrl.setRole(w, r, request.Role)
}

// MakeAdmin is the legacy shortcut for promoting a user.
func (ctrl *UserController) MakeAdmin(w http.ResponseWriter, r *http.Request) {
	ctrl.setRole(w, r, constvars.UserRoleAdmin)
}

func (ctrl *UserController) SetStatus(w http.ResponseWriter, r *http.Request) {
	request := new(requests.SetUserStatus)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	utils.SanitizeSetUserStatusRequest(request)

	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctrl.setStatus(w, r, request.Status)
}

// Block is the legacy shortcut for blocking a user.
func (ctrl *UserController) Block(w http.ResponseWriter, r *http.Request) {
	ctrl.setStatus(w, r, constvars.UserStatusBlocked)
}

func (ctrl *UserController) DeleteByID(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, constvars.URLParamID)
	if err := utils.ValidateUrlParamID(userID); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(err, constvars.URLParamID))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	if err := ctrl.UserUsecase.DeleteByID(ctx, identityFromRequest(r), userID); err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DeleteUserSuccessMessage, nil)
}

func (ctrl *UserController) setRole(w http.ResponseWriter, r *http.Request, role string) {
	userID := chi.URLParam(r, constvars.URLParamID)
	if err := utils.ValidateUrlParamID(userID); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(err, constvars.URLParamID))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	result, err := ctrl.UserUsecase.SetRole(ctx, identityFromRequest(r), userID, role)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UpdateUserSuccessMessage, result)
}

func (ctrl *UserController) setStatus(w http.ResponseWriter, r *http.Request, status string) {
	userID := chi.URLParam(r, constvars.URLParamID)
	if err := utils.ValidateUrlParamID(userID); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(err, constvars.URLParamID))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	result, err := ctrl.UserUsecase.SetStatus(ctx, identityFromRequest(r), userID, status)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UpdateUserSuccessMessage, result)
}

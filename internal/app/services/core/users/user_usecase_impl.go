package users

import (
	"context"
	"mediscan-service/internal/app/contracts"
	"mediscan-service/internal/app/models"
	"mediscan-service/internal/pkg/constvars"
	"mediscan-service/internal/pkg/dto/requests"
	"mediscan-service/internal/pkg/dto/responses"
	"mediscan-service/internal/pkg/exceptions"
	"mediscan-service/internal/pkg/utils"
	"strings"

	"go.uber.org/zap"
)

type userUsecase struct {
	UserRepository contracts.UserRepository
	AuthUsecase    contracts.AuthUsecase
	Log            *zap.Logger
}

func NewUserUsecase(
	userRepository contracts.UserRepository,
	authUsecase contracts.AuthUsecase,
	logger *zap.Logger,
) contracts.UserUsecase {
	return &userUsecase{
		UserRepository: userRepository,
		AuthUsecase:    authUsecase,
		Log:            logger,
	}
}

// Create registers a regular, active user. It is the only unauthenticated
// write in the directory.
func (uc *userUsecase) Create(ctx context.Context, request *requests.CreateUser) (*responses.User, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	email := strings.ToLower(strings.TrimSpace(request.Email))
	uc.Log.Info("userUsecase.Create called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEmailKey, email),
	)

	existingUser, err := uc.UserRepository.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existingUser != nil {
		return nil, exceptions.ErrEmailAlreadyExist(nil)
	}

	user := &models.User{
		Name:       request.Name,
		Email:      email,
		Avatar:     request.Avatar,
		BloodGroup: request.BloodGroup,
		District:   request.District,
		Upazila:    request.Upazila,
		Role:       constvars.UserRoleUser,
		Status:     constvars.UserStatusActive,
	}
	user.SetCreatedAtUpdatedAt()

	userID, err := uc.UserRepository.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = userID

	response := user.ConvertIntoResponse()
	return &response, nil
}

func (uc *userUsecase) FindAll(ctx context.Context, identity *models.Identity) ([]responses.User, error) {
	if err := uc.AuthUsecase.AuthorizeAdmin(ctx, identity); err != nil {
		return nil, err
	}

	users, err := uc.UserRepository.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	response := make([]responses.User, len(users))
	for i, eachUser := range users {
		response[i] = eachUser.ConvertIntoResponse()
	}
	return response, nil
}

func (uc *userUsecase) FindByEmail(ctx context.Context, email string) (*responses.User, error) {
	user, err := uc.UserRepository.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, exceptions.ErrUserNotExist(nil)
	}

	response := user.ConvertIntoResponse()
	return &response, nil
}

func (uc *userUsecase) SetRole(ctx context.Context, identity *models.Identity, userID, role string) (*responses.User, error) {
	if err := uc.AuthUsecase.AuthorizeAdmin(ctx, identity); err != nil {
		return nil, err
	}

	user, err := uc.UserRepository.UpdateRole(ctx, userID, role)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, exceptions.ErrUserNotExist(nil)
	}

	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	utils.LogSecurityEvent(uc.Log, "user_role_changed", requestID, utils.SeverityHigh,
		zap.String(constvars.LoggingUserIDKey, userID),
		zap.String("role", role),
		zap.String("changed_by", identity.Email),
	)
	response := user.ConvertIntoResponse()
	return &response, nil
}

func (uc *userUsecase) SetStatus(ctx context.Context, identity *models.Identity, userID, status string) (*responses.User, error) {
	if err := uc.AuthUsecase.AuthorizeAdmin(ctx, identity); err != nil {
		return nil, err
	}

	user, err := uc.UserRepository.UpdateStatus(ctx, userID, status)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, exceptions.ErrUserNotExist(nil)
	}

	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	utils.LogSecurityEvent(uc.Log, "user_status_changed", requestID, utils.SeverityMedium,
		zap.String(constvars.LoggingUserIDKey, userID),
		zap.String("status", status),
		zap.String("changed_by", identity.Email),
	)
	response := user.ConvertIntoResponse()
	return &response, nil
}

func (uc *userUsecase) DeleteByID(ctx context.Context, identity *models.Identity, userID string) error {
	if err := uc.AuthUsecase.AuthorizeAdmin(ctx, identity); err != nil {
		return err
	}

	deleted, err := uc.UserRepository.DeleteByID(ctx, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return exceptions.ErrUserNotExist(nil)
	}
	return nil
}

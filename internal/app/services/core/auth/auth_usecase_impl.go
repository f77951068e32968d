package auth

import (
	"context"
	"mediscan-service/internal/app/config"
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

type authUsecase struct {
	UserRepository contracts.UserRepository
	InternalConfig *config.InternalConfig
	Log            *zap.Logger
}

func NewAuthUsecase(
	userRepository contracts.UserRepository,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.AuthUsecase {
	return &authUsecase{
		UserRepository: userRepository,
		InternalConfig: internalConfig,
		Log:            logger,
	}
}

// IssueToken signs the caller claims. Tokens are never stored, expiry is the
// only way they stop working.
func (uc *authUsecase) IssueToken(ctx context.Context, request *requests.IssueToken) (*responses.IssueToken, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("authUsecase.IssueToken called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	claims := map[string]interface{}{
		constvars.JWTClaimEmail: request.Email,
	}
	if request.Name != "" {
		claims["name"] = request.Name
	}

	token, err := utils.GenerateJWT(claims, uc.InternalConfig.JWT.Secret, uc.InternalConfig.JWT.ExpTime)
	if err != nil {
		uc.Log.Error("authUsecase.IssueToken error generating token",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrTokenGenerate(err)
	}

	uc.Log.Info("authUsecase.IssueToken succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return &responses.IssueToken{Token: token}, nil
}

func (uc *authUsecase) Authenticate(ctx context.Context, credential string) (*models.Identity, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	if strings.TrimSpace(credential) == "" {
		return nil, exceptions.ErrTokenMissing(nil)
	}

	claims, err := utils.ParseJWT(credential, uc.InternalConfig.JWT.Secret)
	if err != nil {
		uc.Log.Debug("authUsecase.Authenticate rejected credential",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	email, _ := claims[constvars.JWTClaimEmail].(string)
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, exceptions.ErrTokenMissingClaim(nil, constvars.JWTClaimEmail)
	}

	return &models.Identity{Email: email}, nil
}

// AuthorizeAdmin reads the role on every call so a revoked admin loses access
// on their next request.
func (uc *authUsecase) AuthorizeAdmin(ctx context.Context, identity *models.Identity) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	isAdmin, err := uc.IsAdmin(ctx, identity)
	if err != nil {
		return err
	}
	if !isAdmin {
		utils.LogSecurityEvent(uc.Log, "admin_access_denied", requestID, utils.SeverityMedium,
			zap.String(constvars.LoggingEmailKey, identity.Email),
		)
		return exceptions.ErrForbidden(nil, identity.Email)
	}
	return nil
}

func (uc *authUsecase) IsAdmin(ctx context.Context, identity *models.Identity) (bool, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	if identity == nil || identity.Email == "" {
		return false, exceptions.ErrMissingIdentity(nil)
	}

	user, err := uc.UserRepository.FindByEmail(ctx, identity.Email)
	if err != nil {
		uc.Log.Error("authUsecase.IsAdmin error fetching user",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingEmailKey, identity.Email),
			zap.Error(err),
		)
		return false, err
	}

	return user != nil && user.Role == constvars.UserRoleAdmin, nil
}

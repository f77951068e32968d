package middlewares

import (
	"mediscan-service/internal/app/config"
	"mediscan-service/internal/app/contracts"
	"mediscan-service/internal/app/services/shared/ratelimiter"

	"go.uber.org/zap"
)

type Middlewares struct {
	Log             *zap.Logger
	AuthUsecase     contracts.AuthUsecase
	ResourceLimiter *ratelimiter.ResourceLimiter
	InternalConfig  *config.InternalConfig
}

func NewMiddlewares(
	logger *zap.Logger,
	authUsecase contracts.AuthUsecase,
	resourceLimiter *ratelimiter.ResourceLimiter,
	internalConfig *config.InternalConfig,
) *Middlewares {
	return &Middlewares{
		Log:             logger,
		AuthUsecase:     authUsecase,
		ResourceLimiter: resourceLimiter,
		InternalConfig:  internalConfig,
	}
}

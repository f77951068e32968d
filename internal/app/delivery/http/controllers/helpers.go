package controllers

import (
	"context"
	"mediscan-service/internal/app/models"
	"mediscan-service/internal/pkg/constvars"
	"mediscan-service/internal/pkg/exceptions"
	"mediscan-service/internal/pkg/utils"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const usecaseTimeout = 10 * time.Second

// identityFromRequest returns the caller resolved by the authentication
// middleware, nil on public routes.
func identityFromRequest(r *http.Request) *models.Identity {
	identity, _ := r.Context().Value(constvars.CONTEXT_IDENTITY_KEY).(*models.Identity)
	return identity
}

func buildUsecaseErrorResponse(log *zap.Logger, w http.ResponseWriter, err error) {
	if err == context.DeadlineExceeded {
		utils.BuildErrorResponse(log, w, exceptions.ErrServerDeadlineExceeded(err))
		return
	}
	utils.BuildErrorResponse(log, w, err)
}

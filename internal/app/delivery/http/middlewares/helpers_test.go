package middlewares

import (
	"context"
	"mediscan-service/internal/app/models"
	"mediscan-service/internal/pkg/constvars"
	"net/http"
)

func contextWithIdentity(r *http.Request, identity *models.Identity) context.Context {
	return context.WithValue(r.Context(), constvars.CONTEXT_IDENTITY_KEY, identity)
}

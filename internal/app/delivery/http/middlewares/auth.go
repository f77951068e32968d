package middlewares

import (
	"context"
	"mediscan-service/internal/pkg/constvars"
	"mediscan-service/internal/pkg/utils"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// Authenticate resolves the bearer token into an identity and stores it in
// the request context. Role checks are left to the usecases, which re-read
// the user record on every privileged call.
func (m *Middlewares) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := utils.GetRequestID(r.Context())

		header := r.Header.Get(constvars.HeaderAuthorization)
		credential := strings.TrimSpace(strings.TrimPrefix(header, constvars.AuthorizationBearerPrefix))

		identity, err := m.AuthUsecase.Authenticate(r.Context(), credential)
		if err != nil {
			utils.LogSecurityEvent(m.Log, "authentication_failed", requestID, utils.SeverityLow,
				zap.String(constvars.LoggingEndpointKey, r.URL.Path),
				zap.String(constvars.LoggingRemoteAddrKey, r.RemoteAddr),
			)
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}

		if holder, ok := r.Context().Value(identityHolderKey{}).(*identityHolder); ok {
			holder.identity = identity
		}
		ctx := context.WithValue(r.Context(), constvars.CONTEXT_IDENTITY_KEY, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

package middlewares

import (
	"mediscan-service/internal/app/models"
	"mediscan-service/internal/app/services/shared/ratelimiter"
	"mediscan-service/internal/pkg/constvars"
	"mediscan-service/internal/pkg/exceptions"
	"mediscan-service/internal/pkg/utils"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/httprate"
	"go.uber.org/zap"
)

const reserveLimiterGroup = "reserve"

// LimitByIP caps requests per client address per second.
func (m *Middlewares) LimitByIP() func(next http.Handler) http.Handler {
	return httprate.Limit(
		m.InternalConfig.App.MaxRequests,
		time.Second,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTooManyRequests(nil, r.RemoteAddr, 1))
		}),
	)
}

// ReserveRateLimit caps reservations per identity per minute. It must run
// after Authenticate. A Redis failure lets the request through.
func (m *Middlewares) ReserveRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, _ := r.Context().Value(constvars.CONTEXT_IDENTITY_KEY).(*models.Identity)
		if identity == nil {
			next.ServeHTTP(w, r)
			return
		}

		quota := ratelimiter.Quota{
			Group:  reserveLimiterGroup,
			Limit:  m.InternalConfig.Booking.ReserveLimitPerMinute,
			Window: time.Minute,
		}
		decision, err := m.ResourceLimiter.Allow(r.Context(), quota, identity.Email, time.Now())
		if err != nil {
			m.Log.Warn("Middlewares.ReserveRateLimit limiter unavailable, allowing request",
				zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
				zap.Error(err),
			)
			next.ServeHTTP(w, r)
			return
		}
		if !decision.Allowed {
			retryAfter := int(decision.RetryAfter / time.Second)
			w.Header().Set(constvars.HeaderRetryAfter, strconv.Itoa(retryAfter))
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTooManyRequests(nil, reserveLimiterGroup, retryAfter))
			return
		}

		next.ServeHTTP(w, r)
	})
}

package middlewares

import (
	"mediscan-service/internal/app/config"
	"mediscan-service/internal/app/models"
	"mediscan-service/internal/app/services/shared/ratelimiter"
	"mediscan-service/internal/pkg/constvars"
	"mediscan-service/internal/pkg/exceptions"
	"mediscan-service/internal/pkg/testutil"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func newTestMiddlewares(authUsecase *testutil.MockAuthUsecase) *Middlewares {
	logger := zap.NewNop()
	cfg := &config.InternalConfig{
		App:     config.App{MaxRequests: 100, RequestBodyLimitInMegabyte: 1},
		Booking: config.AppBooking{ReserveLimitPerMinute: 2},
	}
	limiter := ratelimiter.NewResourceLimiter(testutil.NewRedisRepository(), logger)
	return NewMiddlewares(logger, authUsecase, limiter, cfg)
}

func identityEcho(t *testing.T, want *models.Identity) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := r.Context().Value(constvars.CONTEXT_IDENTITY_KEY).(*models.Identity)
		assert.True(t, ok, "identity should be set in context")
		assert.Equal(t, want, identity)
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticate(t *testing.T) {
	identity := &models.Identity{Email: "patient@example.com"}

	t.Run("valid bearer token", func(t *testing.T) {
		authUsecase := new(testutil.MockAuthUsecase)
		authUsecase.On("Authenticate", mock.Anything, "good-token").Return(identity, nil).Once()
		m := newTestMiddlewares(authUsecase)

		req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
		req.Header.Set(constvars.HeaderAuthorization, "Bearer good-token")
		rr := httptest.NewRecorder()

		m.Authenticate(identityEcho(t, identity)).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		authUsecase.AssertExpectations(t)
	})

	t.Run("raw token without scheme", func(t *testing.T) {
		authUsecase := new(testutil.MockAuthUsecase)
		authUsecase.On("Authenticate", mock.Anything, "good-token").Return(identity, nil).Once()
		m := newTestMiddlewares(authUsecase)

		req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
		req.Header.Set(constvars.HeaderAuthorization, "good-token")
		rr := httptest.NewRecorder()

		m.Authenticate(identityEcho(t, identity)).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("rejected token", func(t *testing.T) {
		authUsecase := new(testutil.MockAuthUsecase)
		authUsecase.On("Authenticate", mock.Anything, "").Return(nil, exceptions.ErrTokenMissing(nil)).Once()
		m := newTestMiddlewares(authUsecase)

		called := false
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })

		rr := httptest.NewRecorder()
		m.Authenticate(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/bookings", nil))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, rr.Body.String(), constvars.ErrCodeUnauthenticated)
		assert.False(t, called)
	})
}

func TestReserveRateLimit(t *testing.T) {
	m := newTestMiddlewares(new(testutil.MockAuthUsecase))
	handler := m.ReserveRateLimit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	reserveAs := func(identity *models.Identity) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/tests/x/bookings", nil)
		req = req.WithContext(contextWithIdentity(req, identity))
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr
	}

	patient := &models.Identity{Email: "patient@example.com"}
	assert.Equal(t, http.StatusCreated, reserveAs(patient).Code)
	assert.Equal(t, http.StatusCreated, reserveAs(patient).Code)

	limited := reserveAs(patient)
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.NotEmpty(t, limited.Header().Get(constvars.HeaderRetryAfter))
	assert.Contains(t, limited.Body.String(), constvars.ErrCodeRateLimited)

	// quotas are per identity
	assert.Equal(t, http.StatusCreated, reserveAs(&models.Identity{Email: "other@example.com"}).Code)
}

func TestErrorHandler_RecoversPanic(t *testing.T) {
	m := newTestMiddlewares(new(testutil.MockAuthUsecase))
	handler := m.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestRequestIDMiddleware(t *testing.T) {
	m := newTestMiddlewares(new(testutil.MockAuthUsecase))
	var seen string
	handler := m.RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(constvars.HeaderXRequestID, "client-id-1")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, "client-id-1", seen)
	assert.Equal(t, "client-id-1", rr.Header().Get(constvars.HeaderXRequestID))

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.NotEqual(t, "client-id-1", seen)
}

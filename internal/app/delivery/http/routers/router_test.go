package routers

import (
	"bytes"
	"mediscan-service/internal/app/config"
	"mediscan-service/internal/app/delivery/http/controllers"
	"mediscan-service/internal/app/delivery/http/middlewares"
	"mediscan-service/internal/app/models"
	"mediscan-service/internal/app/services/shared/ratelimiter"
	"mediscan-service/internal/pkg/constvars"
	"mediscan-service/internal/pkg/dto/requests"
	"mediscan-service/internal/pkg/dto/responses"
	"mediscan-service/internal/pkg/exceptions"
	"mediscan-service/internal/pkg/testutil"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRouter(authUsecase *testutil.MockAuthUsecase) *chi.Mux {
	logger := zap.NewNop()
	internalConfig := &config.InternalConfig{
		App: config.App{
			EndpointPrefix:             "api",
			Version:                    "v1",
			MaxRequests:                100,
			RequestBodyLimitInMegabyte: 1,
		},
	}
	limiter := ratelimiter.NewResourceLimiter(testutil.NewRedisRepository(), logger)
	middlewareInstance := middlewares.NewMiddlewares(logger, authUsecase, limiter, internalConfig)

	router := chi.NewRouter()
	SetupRoutes(router, internalConfig, middlewareInstance, &Controllers{
		Auth:    controllers.NewAuthController(logger, authUsecase),
		User:    controllers.NewUserController(logger, nil, authUsecase),
		Booking: controllers.NewBookingController(logger, nil, internalConfig),
	})
	return router
}

func TestAuthRouter_IssueToken(t *testing.T) {
	t.Run("valid claims", func(t *testing.T) {
		authUsecase := new(testutil.MockAuthUsecase)
		authUsecase.On("IssueToken", mock.Anything, &requests.IssueToken{Email: "patient@example.com", Name: "Rahim"}).
			Return(&responses.IssueToken{Token: "signed"}, nil).Once()
		router := newTestRouter(authUsecase)

		body, _ := json.Marshal(map[string]string{"email": " Patient@Example.com ", "name": "Rahim"})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/token", bytes.NewBuffer(body))
		req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Contains(t, rr.Body.String(), "signed")
		assert.NotEmpty(t, rr.Header().Get(constvars.HeaderXRequestID))
		authUsecase.AssertExpectations(t)
	})

	t.Run("invalid email never reaches usecase", func(t *testing.T) {
		authUsecase := new(testutil.MockAuthUsecase)
		router := newTestRouter(authUsecase)

		body, _ := json.Marshal(map[string]string{"email": "not-an-email"})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/token", bytes.NewBuffer(body))
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), constvars.ErrCodeValidation)
		authUsecase.AssertNotCalled(t, "IssueToken", mock.Anything, mock.Anything)
	})
}

func TestRouter_RejectsOversizedBody(t *testing.T) {
	authUsecase := new(testutil.MockAuthUsecase)
	router := newTestRouter(authUsecase)

	body := `{"email":"patient@example.com","name":"` + strings.Repeat("a", 2<<20) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/token", strings.NewReader(body))
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	authUsecase.AssertNotCalled(t, "IssueToken", mock.Anything, mock.Anything)
}

func TestBookingRouter_MalformedIDIsNotFound(t *testing.T) {
	authUsecase := new(testutil.MockAuthUsecase)
	authUsecase.On("Authenticate", mock.Anything, "token").Return(&models.Identity{Email: "patient@example.com"}, nil)
	router := newTestRouter(authUsecase)

	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		req := httptest.NewRequest(method, "/api/v1/bookings/not-an-id", nil)
		req.Header.Set(constvars.HeaderAuthorization, "Bearer token")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code, method)
		assert.Contains(t, rr.Body.String(), constvars.ErrCodeNotFound, method)
	}
}

func TestUserRouter_IsAdmin(t *testing.T) {
	identity := &models.Identity{Email: "admin@example.com"}

	newAuthenticatedRouter := func() (*chi.Mux, *testutil.MockAuthUsecase) {
		authUsecase := new(testutil.MockAuthUsecase)
		authUsecase.On("Authenticate", mock.Anything, "token").Return(identity, nil)
		return newTestRouter(authUsecase), authUsecase
	}

	t.Run("own email", func(t *testing.T) {
		router, authUsecase := newAuthenticatedRouter()
		authUsecase.On("IsAdmin", mock.Anything, identity).Return(true, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/admin/admin@example.com", nil)
		req.Header.Set(constvars.HeaderAuthorization, "Bearer token")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var response struct {
			Data responses.IsAdmin `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
		assert.True(t, response.Data.Admin)
		authUsecase.AssertExpectations(t)
	})

	t.Run("someone else's email", func(t *testing.T) {
		router, authUsecase := newAuthenticatedRouter()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/admin/patient@example.com", nil)
		req.Header.Set(constvars.HeaderAuthorization, "Bearer token")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
		authUsecase.AssertNotCalled(t, "IsAdmin", mock.Anything, mock.Anything)
	})

	t.Run("no token", func(t *testing.T) {
		authUsecase := new(testutil.MockAuthUsecase)
		authUsecase.On("Authenticate", mock.Anything, "").Return(nil, exceptions.ErrTokenMissing(nil))
		router := newTestRouter(authUsecase)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/users/admin/admin@example.com", nil))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestSetupRoutes_UnknownPath(t *testing.T) {
	router := newTestRouter(new(testutil.MockAuthUsecase))

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v2/tests", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

package payment_gateway

import (
	"context"
	"mediscan-service/internal/app/config"
	"mediscan-service/internal/pkg/constvars"
	"mediscan-service/internal/pkg/exceptions"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestGateway(baseUrl string) *stripeService {
	cfg := &config.InternalConfig{
		PaymentGateway: config.AppPaymentGateway{
			ApiKey:         "sk_test_123",
			BaseUrl:        baseUrl,
			RequestTimeout: 2 * time.Second,
		},
	}
	return NewStripeService(cfg, zap.NewNop()).(*stripeService)
}

func TestCreatePaymentIntent_ReturnsClientSecret(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/payment_intents", r.URL.Path)
		assert.Equal(t, "Bearer sk_test_123", r.Header.Get(constvars.HeaderAuthorization))
		assert.NotEmpty(t, r.Header.Get("Idempotency-Key"))
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "1500", r.PostForm.Get("amount"))
		assert.Equal(t, "usd", r.PostForm.Get("currency"))
		assert.Equal(t, "card", r.PostForm.Get("payment_method_types[0]"))

		w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
		_, _ = w.Write([]byte(`{"id":"pi_1","client_secret":"pi_1_secret_abc"}`))
	}))
	defer server.Close()

	secret, err := newTestGateway(server.URL).CreatePaymentIntent(context.Background(), 1500, "USD")
	require.NoError(t, err)
	assert.Equal(t, "pi_1_secret_abc", secret)
}

func TestCreatePaymentIntent_GatewayRejects(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"error":{"type":"card_error","message":"card declined"}}`))
	}))
	defer server.Close()

	_, err := newTestGateway(server.URL).CreatePaymentIntent(context.Background(), 1500, "usd")
	require.Error(t, err)
	assert.True(t, exceptions.HasErrorCode(err, constvars.ErrCodeGatewayError))

	var customErr *exceptions.CustomError
	require.ErrorAs(t, err, &customErr)
	assert.Contains(t, customErr.DevMessage, "402")
	assert.ErrorContains(t, err, "card declined")
}

func TestCreatePaymentIntent_MissingSecret(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
		_, _ = w.Write([]byte(`{"id":"pi_2"}`))
	}))
	defer server.Close()

	_, err := newTestGateway(server.URL).CreatePaymentIntent(context.Background(), 200, "usd")
	require.Error(t, err)
	assert.True(t, exceptions.HasErrorCode(err, constvars.ErrCodeGatewayError))
}

package payment_gateway

import (
	"context"
	"errors"
	"fmt"
	"mediscan-service/internal/app/config"
	"mediscan-service/internal/app/contracts"
	"mediscan-service/internal/pkg/exceptions"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/paymentintent"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const paymentMethodCard = "card"

type stripeService struct {
	intents *paymentintent.Client
	limiter *rate.Limiter
}

// NewStripeService returns a PaymentGateway that creates card payment
// intents. Outgoing calls are throttled so a burst of checkouts cannot push
// the account over the provider quota.
func NewStripeService(internalConfig *config.InternalConfig, log *zap.Logger) contracts.PaymentGateway {
	cfg := internalConfig.PaymentGateway

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		URL:               stripe.String(strings.TrimSuffix(cfg.BaseUrl, "/")),
		HTTPClient:        &http.Client{Timeout: cfg.RequestTimeout},
		MaxNetworkRetries: stripe.Int64(cfg.MaxNetworkRetries),
		LeveledLogger:     log.Sugar(),
	})

	return &stripeService{
		intents: &paymentintent.Client{B: backend, Key: cfg.ApiKey},
		limiter: rate.NewLimiter(limit, burst),
	}
}

func (s *stripeService) CreatePaymentIntent(ctx context.Context, amountMinorUnits int64, currency string) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", exceptions.ErrPaymentGateway(err)
	}

	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amountMinorUnits),
		Currency:           stripe.String(strings.ToLower(currency)),
		PaymentMethodTypes: stripe.StringSlice([]string{paymentMethodCard}),
	}
	params.Context = ctx
	// retried attempts reuse the key, the provider creates one intent
	params.SetIdempotencyKey(uuid.NewString())

	intent, err := s.intents.New(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.HTTPStatusCode != 0 {
			return "", exceptions.ErrPaymentGatewayStatusCode(errors.New(stripeErr.Msg), stripeErr.HTTPStatusCode)
		}
		return "", exceptions.ErrPaymentGateway(err)
	}
	if intent.ClientSecret == "" {
		return "", exceptions.ErrPaymentGateway(fmt.Errorf("payment intent %s has no client secret", intent.ID))
	}

	return intent.ClientSecret, nil
}

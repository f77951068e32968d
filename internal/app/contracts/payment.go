package contracts

import (
	"context"
	"mediscan-service/internal/pkg/dto/requests"
	"mediscan-service/internal/pkg/dto/responses"
)

type PaymentUsecase interface {
	CreateChargeIntent(ctx context.Context, request *requests.CreateChargeIntent) (*responses.ChargeIntent, error)
}

// PaymentGateway creates a charge on the external provider and returns the
// client secret the browser needs to confirm it.
type PaymentGateway interface {
	CreatePaymentIntent(ctx context.Context, amountMinorUnits int64, currency string) (clientSecret string, err error)
}

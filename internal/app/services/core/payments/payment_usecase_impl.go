package payments

import (
	"context"
	"mediscan-service/internal/app/contracts"
	"mediscan-service/internal/pkg/constvars"
	"mediscan-service/internal/pkg/dto/requests"
	"mediscan-service/internal/pkg/dto/responses"
	"mediscan-service/internal/pkg/exceptions"
	"strings"

	"go.uber.org/zap"
)

type paymentUsecase struct {
	PaymentGateway contracts.PaymentGateway
	Log            *zap.Logger
}

func NewPaymentUsecase(
	paymentGateway contracts.PaymentGateway,
	logger *zap.Logger,
) contracts.PaymentUsecase {
	return &paymentUsecase{
		PaymentGateway: paymentGateway,
		Log:            logger,
	}
}

// CreateChargeIntent never reaches the gateway with a non positive amount.
func (uc *paymentUsecase) CreateChargeIntent(ctx context.Context, request *requests.CreateChargeIntent) (*responses.ChargeIntent, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("paymentUsecase.CreateChargeIntent called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int64(constvars.LoggingAmountKey, request.Amount),
		zap.String(constvars.LoggingCurrencyKey, request.Currency),
	)

	if request.Amount <= 0 {
		return nil, exceptions.ErrInvalidChargeAmount(nil, request.Amount)
	}

	clientSecret, err := uc.PaymentGateway.CreatePaymentIntent(ctx, request.Amount, strings.ToUpper(request.Currency))
	if err != nil {
		uc.Log.Error("paymentUsecase.CreateChargeIntent gateway call failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	return &responses.ChargeIntent{ClientSecret: clientSecret}, nil
}

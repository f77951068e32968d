package payments

import (
	"context"
	"errors"
	"mediscan-service/internal/pkg/constvars"
	"mediscan-service/internal/pkg/dto/requests"
	"mediscan-service/internal/pkg/exceptions"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) CreatePaymentIntent(ctx context.Context, amountMinorUnits int64, currency string) (string, error) {
	args := m.Called(ctx, amountMinorUnits, currency)
	return args.String(0), args.Error(1)
}

func TestCreateChargeIntent(t *testing.T) {
	ctx := context.Background()
	gateway := new(MockPaymentGateway)
	gateway.On("CreatePaymentIntent", ctx, int64(150000), "BDT").Return("pi_123_secret_456", nil).Once()
	uc := NewPaymentUsecase(gateway, zap.NewNop())

	intent, err := uc.CreateChargeIntent(ctx, &requests.CreateChargeIntent{Amount: 150000, Currency: "bdt"})
	require.NoError(t, err)
	assert.Equal(t, "pi_123_secret_456", intent.ClientSecret)
	gateway.AssertExpectations(t)
}

func TestCreateChargeIntent_NonPositiveAmountNeverReachesGateway(t *testing.T) {
	ctx := context.Background()
	gateway := new(MockPaymentGateway)
	uc := NewPaymentUsecase(gateway, zap.NewNop())

	for _, amount := range []int64{0, -1, -50000} {
		intent, err := uc.CreateChargeIntent(ctx, &requests.CreateChargeIntent{Amount: amount, Currency: "BDT"})
		assert.Nil(t, intent)
		assert.True(t, exceptions.HasErrorCode(err, constvars.ErrCodeValidation), "amount %d got %v", amount, err)
	}
	gateway.AssertNotCalled(t, "CreatePaymentIntent", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateChargeIntent_GatewayFailure(t *testing.T) {
	ctx := context.Background()
	gateway := new(MockPaymentGateway)
	gateway.On("CreatePaymentIntent", ctx, int64(100), "USD").
		Return("", exceptions.ErrPaymentGateway(errors.New("connection refused"))).Once()
	uc := NewPaymentUsecase(gateway, zap.NewNop())

	_, err := uc.CreateChargeIntent(ctx, &requests.CreateChargeIntent{Amount: 100, Currency: "USD"})
	assert.True(t, exceptions.HasErrorCode(err, constvars.ErrCodeGatewayError))
}

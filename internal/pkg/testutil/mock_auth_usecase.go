package testutil

import (
	"context"
	"mediscan-service/internal/app/contracts"
	"mediscan-service/internal/app/models"
	"mediscan-service/internal/pkg/dto/requests"
	"mediscan-service/internal/pkg/dto/responses"

	"github.com/stretchr/testify/mock"
)

type MockAuthUsecase struct {
	mock.Mock
}

var _ contracts.AuthUsecase = (*MockAuthUsecase)(nil)

func (m *MockAuthUsecase) IssueToken(ctx context.Context, request *requests.IssueToken) (*responses.IssueToken, error) {
	args := m.Called(ctx, request)
	result, _ := args.Get(0).(*responses.IssueToken)
	return result, args.Error(1)
}

func (m *MockAuthUsecase) Authenticate(ctx context.Context, credential string) (*models.Identity, error) {
	args := m.Called(ctx, credential)
	identity, _ := args.Get(0).(*models.Identity)
	return identity, args.Error(1)
}

func (m *MockAuthUsecase) AuthorizeAdmin(ctx context.Context, identity *models.Identity) error {
	args := m.Called(ctx, identity)
	return args.Error(0)
}

func (m *MockAuthUsecase) IsAdmin(ctx context.Context, identity *models.Identity) (bool, error) {
	args := m.Called(ctx, identity)
	return args.Bool(0), args.Error(1)
}

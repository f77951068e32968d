package contracts

import (
	"context"
	"mediscan-service/internal/app/models"
	"mediscan-service/internal/pkg/dto/requests"
	"mediscan-service/internal/pkg/dto/responses"
)

type AuthUsecase interface {
	IssueToken(ctx context.Context, request *requests.IssueToken) (*responses.IssueToken, error)
	// Authenticate verifies a bearer credential and resolves the caller identity.
	Authenticate(ctx context.Context, credential string) (*models.Identity, error)
	// AuthorizeAdmin reads the caller's user record on every call.
	AuthorizeAdmin(ctx context.Context, identity *models.Identity) error
	IsAdmin(ctx context.Context, identity *models.Identity) (bool, error)
}

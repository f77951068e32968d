package contracts

import (
	"context"
	"mediscan-service/internal/app/models"
	"mediscan-service/internal/pkg/dto/requests"
	"mediscan-service/internal/pkg/dto/responses"
)

type UserUsecase interface {
	Create(ctx context.Context, request *requests.CreateUser) (*responses.User, error)
	FindAll(ctx context.Context, identity *models.Identity) ([]responses.User, error)
	FindByEmail(ctx context.Context, email string) (*responses.User, error)
	SetRole(ctx context.Context, identity *models.Identity, userID, role string) (*responses.User, error)
	SetStatus(ctx context.Context, identity *models.Identity, userID, status string) (*responses.User, error)
	DeleteByID(ctx context.Context, identity *models.Identity, userID string) error
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) (userID string, err error)
	FindAll(ctx context.Context) ([]models.User, error)
	FindByID(ctx context.Context, userID string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateRole(ctx context.Context, userID, role string) (*models.User, error)
	UpdateStatus(ctx context.Context, userID, status string) (*models.User, error)
	DeleteByID(ctx context.Context, userID string) (deleted bool, err error)
}

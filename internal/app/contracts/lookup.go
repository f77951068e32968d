package contracts

import (
	"context"
	"mediscan-service/internal/app/models"
	"mediscan-service/internal/pkg/dto/responses"
)

type LookupUsecase interface {
	FindAllDistricts(ctx context.Context) ([]responses.District, error)
	FindUpazilas(ctx context.Context, districtID string) ([]responses.Upazila, error)
}

type LookupRepository interface {
	FindAllDistricts(ctx context.Context) ([]models.District, error)
	FindAllUpazilas(ctx context.Context) ([]models.Upazila, error)
}

package testutil

import (
	"context"
	"mediscan-service/internal/app/contracts"
	"mediscan-service/internal/app/models"
	"sync"
)

type LookupRepository struct {
	mu        sync.Mutex
	Districts []models.District
	Upazilas  []models.Upazila
	Calls     int
}

var _ contracts.LookupRepository = (*LookupRepository)(nil)

func (r *LookupRepository) FindAllDistricts(ctx context.Context) ([]models.District, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Calls++
	return append([]models.District(nil), r.Districts...), nil
}

func (r *LookupRepository) FindAllUpazilas(ctx context.Context) ([]models.Upazila, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Calls++
	return append([]models.Upazila(nil), r.Upazilas...), nil
}

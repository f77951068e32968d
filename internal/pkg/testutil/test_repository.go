package testutil

import (
	"context"
	"errors"
	"mediscan-service/internal/app/contracts"
	"mediscan-service/internal/app/models"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrInjected = errors.New("injected store failure")

type TestRepository struct {
	mu    sync.Mutex
	tests map[string]models.Test

	// IncrementFailures makes the next n IncrementSlot calls fail.
	IncrementFailures int
	// IncrementErr makes every IncrementSlot call fail while set.
	IncrementErr   error
	DecrementErr   error
	IncrementCalls int
}

var _ contracts.TestRepository = (*TestRepository)(nil)

func NewTestRepository() *TestRepository {
	return &TestRepository{tests: map[string]models.Test{}}
}

// Seed stores test and returns its id.
func (r *TestRepository) Seed(test models.Test) string {
	id, _ := r.Create(context.Background(), &test)
	return id
}

func (r *TestRepository) Slots(testID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tests[testID].Slots
}

func (r *TestRepository) Create(ctx context.Context, test *models.Test) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if test.ID == "" {
		test.ID = primitive.NewObjectID().Hex()
	}
	r.tests[test.ID] = *test
	return test.ID, nil
}

func (r *TestRepository) FindAll(ctx context.Context) ([]models.Test, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]models.Test, 0, len(r.tests))
	for _, test := range r.tests {
		result = append(result, test)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *TestRepository) FindStartingFrom(ctx context.Context, from time.Time) ([]models.Test, error) {
	all, _ := r.FindAll(ctx)
	result := make([]models.Test, 0, len(all))
	for _, test := range all {
		if !test.TestStartDate.Before(from) {
			result = append(result, test)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].TestStartDate.Before(result[j].TestStartDate) })
	return result, nil
}

func (r *TestRepository) FindByID(ctx context.Context, testID string) (*models.Test, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	test, ok := r.tests[testID]
	if !ok {
		return nil, nil
	}
	return &test, nil
}

func (r *TestRepository) Update(ctx context.Context, testID string, update models.TestUpdate) (*models.Test, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	test, ok := r.tests[testID]
	if !ok {
		return nil, nil
	}
	if update.TestName != nil {
		test.TestName = *update.TestName
	}
	if update.Image != nil {
		test.Image = *update.Image
	}
	if update.Details != nil {
		test.Details = *update.Details
	}
	if update.Price != nil {
		test.Price = *update.Price
	}
	if update.Slots != nil {
		test.Slots = *update.Slots
	}
	if update.TestStartDate != nil {
		test.TestStartDate = *update.TestStartDate
	}
	r.tests[testID] = test
	return &test, nil
}

func (r *TestRepository) DeleteByID(ctx context.Context, testID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.tests[testID]
	delete(r.tests, testID)
	return ok, nil
}

func (r *TestRepository) DecrementSlotIfAvailable(ctx context.Context, testID string) (*models.Test, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.DecrementErr != nil {
		return nil, r.DecrementErr
	}
	test, ok := r.tests[testID]
	if !ok || test.Slots <= 0 {
		return nil, nil
	}
	test.Slots--
	r.tests[testID] = test
	return &test, nil
}

func (r *TestRepository) IncrementSlot(ctx context.Context, testID string) (*models.Test, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.IncrementCalls++
	if r.IncrementErr != nil {
		return nil, r.IncrementErr
	}
	if r.IncrementFailures > 0 {
		r.IncrementFailures--
		return nil, ErrInjected
	}
	test, ok := r.tests[testID]
	if !ok {
		return nil, nil
	}
	test.Slots++
	r.tests[testID] = test
	return &test, nil
}

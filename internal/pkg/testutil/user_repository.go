package testutil

import (
	"context"
	"mediscan-service/internal/app/contracts"
	"mediscan-service/internal/app/models"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRepository struct {
	mu    sync.Mutex
	users map[string]models.User

	// FindErr makes lookups fail, standing in for an unreachable store.
	FindErr error
}

var _ contracts.UserRepository = (*UserRepository)(nil)

func NewUserRepository() *UserRepository {
	return &UserRepository{users: map[string]models.User{}}
}

func (r *UserRepository) Seed(user models.User) string {
	id, _ := r.Create(context.Background(), &user)
	return id
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == "" {
		user.ID = primitive.NewObjectID().Hex()
	}
	r.users[user.ID] = *user
	return user.ID, nil
}

func (r *UserRepository) FindAll(ctx context.Context) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FindErr != nil {
		return nil, r.FindErr
	}
	result := make([]models.User, 0, len(r.users))
	for _, user := range r.users {
		result = append(result, user)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *UserRepository) FindByID(ctx context.Context, userID string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FindErr != nil {
		return nil, r.FindErr
	}
	user, ok := r.users[userID]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FindErr != nil {
		return nil, r.FindErr
	}
	for _, user := range r.users {
		if user.Email == email {
			return &user, nil
		}
	}
	return nil, nil
}

func (r *UserRepository) UpdateRole(ctx context.Context, userID, role string) (*models.User, error) {
	return r.update(userID, func(u *models.User) { u.Role = role })
}

func (r *UserRepository) UpdateStatus(ctx context.Context, userID, status string) (*models.User, error) {
	return r.update(userID, func(u *models.User) { u.Status = status })
}

func (r *UserRepository) DeleteByID(ctx context.Context, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.users[userID]
	delete(r.users, userID)
	return ok, nil
}

func (r *UserRepository) update(userID string, apply func(*models.User)) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[userID]
	if !ok {
		return nil, nil
	}
	apply(&user)
	r.users[userID] = user
	return &user, nil
}

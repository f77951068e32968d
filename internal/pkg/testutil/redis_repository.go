package testutil

import (
	"context"
	"mediscan-service/internal/app/contracts"
	"sync"
	"time"

	"github.com/goccy/go-json"
)

// RedisRepository keeps values JSON encoded, like the real repository, and
// ignores expirations. Set GetErr to simulate an unreachable server.
type RedisRepository struct {
	mu       sync.Mutex
	values   map[string]string
	counters map[string]int
	GetErr   error
}

var _ contracts.RedisRepository = (*RedisRepository)(nil)

func NewRedisRepository() *RedisRepository {
	return &RedisRepository{values: map[string]string{}, counters: map[string]int{}}
}

func (r *RedisRepository) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[key] = string(data)
	return nil
}

func (r *RedisRepository) Get(ctx context.Context, key string) (string, error) {
	if r.GetErr != nil {
		return "", r.GetErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.values[key], nil
}

func (r *RedisRepository) IncrementWithTTL(ctx context.Context, key string, exp time.Duration) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.counters[key]++
	return r.counters[key], nil
}

func (r *RedisRepository) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.values[key]; exists {
		return false, nil
	}
	r.values[key] = string(data)
	return true, nil
}

func (r *RedisRepository) CompareAndDelete(ctx context.Context, key string, expected interface{}) (contracts.CompareResult, error) {
	return r.compare(key, expected, func() { delete(r.values, key) })
}

func (r *RedisRepository) CompareAndExpire(ctx context.Context, key string, expected interface{}, exp time.Duration) (contracts.CompareResult, error) {
	return r.compare(key, expected, func() {})
}

func (r *RedisRepository) compare(key string, expected interface{}, apply func()) (contracts.CompareResult, error) {
	data, err := json.Marshal(expected)
	if err != nil {
		return contracts.CompareMissing, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	current, exists := r.values[key]
	switch {
	case !exists:
		return contracts.CompareMissing, nil
	case current != string(data):
		return contracts.CompareMismatch, nil
	}
	apply()
	return contracts.CompareMatched, nil
}

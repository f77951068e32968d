package contracts

import (
	"context"
	"time"
)

// CompareResult tells a conditional write why it did or did not apply.
type CompareResult int

const (
	CompareMissing CompareResult = iota
	CompareMismatch
	CompareMatched
)

// RedisRepository stores values JSON encoded. Compare* methods match against
// the encoded form of expected and run as a single script on the server.
type RedisRepository interface {
	Set(ctx context.Context, key string, value interface{}, exp time.Duration) error
	// Get returns an empty string when the key does not exist.
	Get(ctx context.Context, key string) (string, error)
	// IncrementWithTTL increments key and sets exp when the key is new.
	IncrementWithTTL(ctx context.Context, key string, exp time.Duration) (int, error)
	TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error)
	CompareAndDelete(ctx context.Context, key string, expected interface{}) (CompareResult, error)
	CompareAndExpire(ctx context.Context, key string, expected interface{}, exp time.Duration) (CompareResult, error)
}

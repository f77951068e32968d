package contracts

import (
	"context"
	"time"
)

// LockerService hands out Redis leases used to elect a single worker leader.
// TryLock returns the token that Unlock and Refresh must present.
type LockerService interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (acquired bool, token string, err error)
	Unlock(ctx context.Context, key, token string) error
	Refresh(ctx context.Context, key, token string, ttl time.Duration) error
}

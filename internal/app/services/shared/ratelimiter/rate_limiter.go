package ratelimiter

import (
	"context"
	"fmt"
	"mediscan-service/internal/app/contracts"
	"mediscan-service/internal/pkg/constvars"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Quota is a fixed window budget shared by every instance through Redis.
// A Limit of zero or less disables it.
type Quota struct {
	Group  string
	Limit  int
	Window time.Duration
}

type Decision struct {
	Allowed    bool
	RetryAfter time.Duration
}

// ResourceLimiter counts hits per subject and window in Redis. Counters
// expire one second after their window closes.
type ResourceLimiter struct {
	redis contracts.RedisRepository
	log   *zap.Logger
}

func NewResourceLimiter(redis contracts.RedisRepository, log *zap.Logger) *ResourceLimiter {
	return &ResourceLimiter{redis: redis, log: log}
}

// Allow records one hit for subject. Subjects are case insensitive, so an
// email counts once however the caller spells it.
func (l *ResourceLimiter) Allow(ctx context.Context, quota Quota, subject string, now time.Time) (Decision, error) {
	if quota.Limit <= 0 {
		return Decision{Allowed: true}, nil
	}
	window := quota.Window
	if window < time.Second {
		window = time.Minute
	}

	subject = strings.ToLower(strings.TrimSpace(subject))
	if subject == "" {
		return Decision{RetryAfter: window}, nil
	}

	windowStart := now.UTC().Truncate(window)
	key := fmt.Sprintf("ratelimit:%s:%s:%d", quota.Group, subject, windowStart.Unix())

	count, err := l.redis.IncrementWithTTL(ctx, key, window+time.Second)
	if err != nil {
		l.log.Error("ResourceLimiter.Allow increment failed",
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
		return Decision{}, err
	}
	if count <= quota.Limit {
		return Decision{Allowed: true}, nil
	}

	retryAfter := windowStart.Add(window).Sub(now.UTC()).Truncate(time.Second) + time.Second
	return Decision{RetryAfter: retryAfter}, nil
}

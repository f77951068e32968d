package redis

import (
	"context"
	"errors"
	"mediscan-service/internal/app/contracts"
	"mediscan-service/internal/pkg/exceptions"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// Both scripts return 0 for a missing key, 1 for a value mismatch and 2 when
// the write was applied, matching contracts.CompareResult.
var (
	compareAndDeleteScript = redis.NewScript(`
local current = redis.call("GET", KEYS[1])
if not current then return 0 end
if current ~= ARGV[1] then return 1 end
redis.call("DEL", KEYS[1])
return 2`)

	compareAndExpireScript = redis.NewScript(`
local current = redis.call("GET", KEYS[1])
if not current then return 0 end
if current ~= ARGV[1] then return 1 end
redis.call("PEXPIRE", KEYS[1], ARGV[2])
return 2`)
)

type redisRepository struct {
	client *redis.Client
}

func NewRedisRepository(client *redis.Client) contracts.RedisRepository {
	return &redisRepository{client: client}
}

func (r *redisRepository) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}
	if err := r.client.Set(ctx, key, encoded, exp).Err(); err != nil {
		return exceptions.ErrRedisSet(err)
	}
	return nil
}

func (r *redisRepository) Get(ctx context.Context, key string) (string, error) {
	data, err := r.client.Get(ctx, key).Result()
	switch {
	case errors.Is(err, redis.Nil):
		return "", nil
	case err != nil:
		return "", exceptions.ErrRedisGetNoData(err, key)
	}
	return data, nil
}

func (r *redisRepository) IncrementWithTTL(ctx context.Context, key string, exp time.Duration) (int, error) {
	pipe := r.client.TxPipeline()
	counter := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, exp)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, exceptions.ErrRedisIncrement(err)
	}
	return int(counter.Val()), nil
}

func (r *redisRepository) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	encoded, err := json.Marshal(value)
	if err != nil {
		return false, exceptions.ErrCannotMarshalJSON(err)
	}
	acquired, err := r.client.SetNX(ctx, key, encoded, exp).Result()
	if err != nil {
		return false, exceptions.ErrRedisSet(err)
	}
	return acquired, nil
}

func (r *redisRepository) CompareAndDelete(ctx context.Context, key string, expected interface{}) (contracts.CompareResult, error) {
	encoded, err := json.Marshal(expected)
	if err != nil {
		return contracts.CompareMissing, exceptions.ErrCannotMarshalJSON(err)
	}
	result, err := compareAndDeleteScript.Run(ctx, r.client, []string{key}, string(encoded)).Int()
	if err != nil {
		return contracts.CompareMissing, exceptions.ErrRedisDelete(err)
	}
	return contracts.CompareResult(result), nil
}

func (r *redisRepository) CompareAndExpire(ctx context.Context, key string, expected interface{}, exp time.Duration) (contracts.CompareResult, error) {
	encoded, err := json.Marshal(expected)
	if err != nil {
		return contracts.CompareMissing, exceptions.ErrCannotMarshalJSON(err)
	}
	result, err := compareAndExpireScript.Run(ctx, r.client, []string{key}, string(encoded), exp.Milliseconds()).Int()
	if err != nil {
		return contracts.CompareMissing, exceptions.ErrRedisExpire(err)
	}
	return contracts.CompareResult(result), nil
}

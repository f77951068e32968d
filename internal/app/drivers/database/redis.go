package database

import (
	"context"
	"log"
	"mediscan-service/internal/app/config"
	"net"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient backs the lookup cache, the reserve rate limiter and the
// worker leader locks.
func NewRedisClient(driverConfig *config.DriverConfig) *redis.Client {
	cfg := driverConfig.Redis
	client := redis.NewClient(&redis.Options{
		Addr:        net.JoinHostPort(cfg.Host, cfg.Port),
		Password:    cfg.Password,
		DB:          cfg.DB,
		PoolSize:    cfg.PoolSize,
		DialTimeout: cfg.DialTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DialTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Could not connect to Redis at %s: %v", client.Options().Addr, err)
	}

	log.Printf("Successfully connected to redis db %d", cfg.DB)
	return client
}

package config

import (
	"context"
	"errors"

	"github.com/go-chi/chi/v5"
	"github.com/minio/minio-go/v7"
	"github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Bootstrap carries the process wide clients from main to the wiring code.
type Bootstrap struct {
	Router         *chi.Mux
	MongoDB        *mongo.Client
	Redis          *redis.Client
	Logger         *zap.Logger
	RabbitMQ       *amqp091.Connection
	Minio          *minio.Client
	InternalConfig *InternalConfig
	DriverConfig   *DriverConfig
	WorkerStop     func()
}

// Shutdown stops the workers before closing the connections they use. Every
// client is closed even when an earlier one fails; the errors are joined.
func (b *Bootstrap) Shutdown(ctx context.Context) error {
	if b.WorkerStop != nil {
		b.WorkerStop()
		b.Logger.Info("background workers stopped")
	}

	closers := []struct {
		name  string
		close func() error
	}{
		{"rabbitmq", b.RabbitMQ.Close},
		{"redis", b.Redis.Close},
		{"mongodb", func() error { return b.MongoDB.Disconnect(ctx) }},
	}

	var errs []error
	for _, c := range closers {
		if err := c.close(); err != nil {
			b.Logger.Error("failed to close connection", zap.String("driver", c.name), zap.Error(err))
			errs = append(errs, err)
			continue
		}
		b.Logger.Info("connection closed", zap.String("driver", c.name))
	}

	// Sync on stdout returns EINVAL on some platforms.
	_ = b.Logger.Sync()
	return errors.Join(errs...)
}

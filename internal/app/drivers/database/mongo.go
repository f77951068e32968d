package database

import (
	"context"
	"fmt"
	"log"
	"mediscan-service/internal/app/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

func mongoURI(cfg config.MongoDB) string {
	if cfg.URI != "" {
		return cfg.URI
	}
	if cfg.Username == "" {
		return fmt.Sprintf("mongodb://%s:%s", cfg.Host, cfg.Port)
	}
	return fmt.Sprintf("mongodb://%s:%s@%s:%s", cfg.Username, cfg.Password, cfg.Host, cfg.Port)
}

// NewMongoDB connects and pings the primary. The slot claim relies on
// retryable single document writes, so retryWrites stays on.
func NewMongoDB(driverConfig *config.DriverConfig) *mongo.Client {
	cfg := driverConfig.MongoDB

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(mongoURI(cfg)).
		SetAppName("mediscan-service").
		SetRetryWrites(true).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetConnectTimeout(cfg.ConnectTimeout)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		log.Fatalf("Failed to connect to mongo database: %s", err.Error())
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		log.Fatalf("Failed to ping mongo database %s: %s", cfg.DbName, err.Error())
	}
	log.Printf("Successfully connected to mongo database %s", cfg.DbName)
	return client
}

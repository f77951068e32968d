package main

import (
	"context"
	"mediscan-service/internal/app/config"
	"mediscan-service/internal/app/drivers/database"
	"mediscan-service/internal/app/drivers/logger"
	"mediscan-service/internal/pkg/constvars"
	"mediscan-service/internal/pkg/exceptions"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type collectionIndexes struct {
	collection string
	models     []mongo.IndexModel
}

// indexes are created idempotently, running the command twice is a no-op.
var indexes = []collectionIndexes{
	{
		collection: constvars.MongoCollectionUsers,
		models: []mongo.IndexModel{
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
	},
	{
		collection: constvars.MongoCollectionBookings,
		models: []mongo.IndexModel{
			{Keys: bson.D{{Key: "testId", Value: 1}}},
			{Keys: bson.D{{Key: "email", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
	},
	{
		collection: constvars.MongoCollectionBanners,
		models: []mongo.IndexModel{
			{Keys: bson.D{{Key: "isActive", Value: 1}, {Key: "activationSeq", Value: -1}}},
		},
	},
	{
		collection: constvars.MongoCollectionTests,
		models: []mongo.IndexModel{
			{Keys: bson.D{{Key: "testStartDate", Value: 1}}},
		},
	},
	{
		collection: constvars.MongoCollectionUpazilas,
		models: []mongo.IndexModel{
			{Keys: bson.D{{Key: "district_id", Value: 1}}},
		},
	},
}

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewLogrusLogger(driverConfig, internalConfig)

	client := database.NewMongoDB(driverConfig)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := client.Disconnect(ctx); err != nil {
			log.WithError(err).Error("Error closing MongoDB connection")
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db := client.Database(driverConfig.MongoDB.DbName)
	total := 0
	for _, entry := range indexes {
		names, err := db.Collection(entry.collection).Indexes().CreateMany(ctx, entry.models)
		if err != nil {
			log.WithFields(logrus.Fields{
				"collection": entry.collection,
			}).WithError(exceptions.ErrMongoDBCreateIndex(err)).Fatal("Error creating indexes")
		}
		log.WithFields(logrus.Fields{
			"collection": entry.collection,
			"indexes":    names,
		}).Info("Indexes ensured")
		total += len(names)
	}

	log.Infof("Applied %d indexes!", total)
}

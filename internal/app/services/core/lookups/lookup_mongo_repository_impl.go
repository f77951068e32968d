package lookups

import (
	"context"
	"mediscan-service/internal/app/contracts"
	"mediscan-service/internal/app/models"
	"mediscan-service/internal/pkg/constvars"
	"mediscan-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type LookupMongoRepository struct {
	Districts *mongo.Collection
	Upazilas  *mongo.Collection
}

func NewLookupMongoRepository(db *mongo.Client, dbName string) contracts.LookupRepository {
	database := db.Database(dbName)
	return &LookupMongoRepository{
		Districts: database.Collection(constvars.MongoCollectionDistricts),
		Upazilas:  database.Collection(constvars.MongoCollectionUpazilas),
	}
}

func (r *LookupMongoRepository) FindAllDistricts(ctx context.Context) ([]models.District, error) {
	districts := make([]models.District, 0)
	if err := findAllSortedByName(ctx, r.Districts, &districts); err != nil {
		return nil, err
	}
	return districts, nil
}

func (r *LookupMongoRepository) FindAllUpazilas(ctx context.Context) ([]models.Upazila, error) {
	upazilas := make([]models.Upazila, 0)
	if err := findAllSortedByName(ctx, r.Upazilas, &upazilas); err != nil {
		return nil, err
	}
	return upazilas, nil
}

func findAllSortedByName(ctx context.Context, collection *mongo.Collection, out interface{}) error {
	cursor, err := collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, out); err != nil {
		return exceptions.ErrMongoDBIterateDocuments(err)
	}
	return nil
}

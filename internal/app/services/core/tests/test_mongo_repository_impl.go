package tests

import (
	"context"
	"mediscan-service/internal/app/contracts"
	"mediscan-service/internal/app/models"
	"mediscan-service/internal/pkg/constvars"
	"mediscan-service/internal/pkg/exceptions"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TestMongoRepository struct {
	Collection *mongo.Collection
}

func NewTestMongoRepository(db *mongo.Client, dbName string) contracts.TestRepository {
	return &TestMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionTests),
	}
}

func (r *TestMongoRepository) Create(ctx context.Context, test *models.Test) (string, error) {
	result, err := r.Collection.InsertOne(ctx, test)
	if err != nil {
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (r *TestMongoRepository) FindAll(ctx context.Context) ([]models.Test, error) {
	return r.find(ctx, bson.M{}, nil)
}

func (r *TestMongoRepository) FindStartingFrom(ctx context.Context, from time.Time) ([]models.Test, error) {
	filter := bson.M{"testStartDate": bson.M{"$gte": from}}
	return r.find(ctx, filter, options.Find().SetSort(bson.D{{Key: "testStartDate", Value: 1}}))
}

func (r *TestMongoRepository) FindByID(ctx context.Context, testID string) (*models.Test, error) {
	objectID, err := primitive.ObjectIDFromHex(testID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}

	var test models.Test
	err = r.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&test)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &test, nil
}

func (r *TestMongoRepository) Update(ctx context.Context, testID string, update models.TestUpdate) (*models.Test, error) {
	objectID, err := primitive.ObjectIDFromHex(testID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}

	fields := update.ConvertToBsonM()
	fields["updatedAt"] = time.Now()

	var test models.Test
	err = r.Collection.FindOneAndUpdate(ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": fields},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&test)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return &test, nil
}

func (r *TestMongoRepository) DeleteByID(ctx context.Context, testID string) (bool, error) {
	objectID, err := primitive.ObjectIDFromHex(testID)
	if err != nil {
		return false, exceptions.ErrMongoDBNotObjectID(err)
	}

	result, err := r.Collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return false, exceptions.ErrMongoDBDeleteDocument(err)
	}
	return result.DeletedCount > 0, nil
}

// DecrementSlotIfAvailable checks and decrements in one findAndModify, two
// concurrent callers can never both take the last slot.
func (r *TestMongoRepository) DecrementSlotIfAvailable(ctx context.Context, testID string) (*models.Test, error) {
	objectID, err := primitive.ObjectIDFromHex(testID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}

	filter := bson.M{
		"_id":   objectID,
		"slots": bson.M{"$gt": 0},
	}
	update := bson.M{
		"$inc": bson.M{"slots": -1},
		"$set": bson.M{"updatedAt": time.Now()},
	}

	var test models.Test
	err = r.Collection.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&test)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return &test, nil
}

func (r *TestMongoRepository) IncrementSlot(ctx context.Context, testID string) (*models.Test, error) {
	objectID, err := primitive.ObjectIDFromHex(testID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}

	update := bson.M{
		"$inc": bson.M{"slots": 1},
		"$set": bson.M{"updatedAt": time.Now()},
	}

	var test models.Test
	err = r.Collection.FindOneAndUpdate(ctx, bson.M{"_id": objectID}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&test)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return &test, nil
}

func (r *TestMongoRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Test, error) {
	if opts == nil {
		opts = options.Find()
	}

	cursor, err := r.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	tests := make([]models.Test, 0)
	if err := cursor.All(ctx, &tests); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return tests, nil
}

package banners

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

type BannerMongoRepository struct {
	Collection *mongo.Collection
	Counters   *mongo.Collection
}

func NewBannerMongoRepository(db *mongo.Client, dbName string) contracts.BannerRepository {
	database := db.Database(dbName)
	return &BannerMongoRepository{
		Collection: database.Collection(constvars.MongoCollectionBanners),
		Counters:   database.Collection(constvars.MongoCollectionCounters),
	}
}

func (r *BannerMongoRepository) Create(ctx context.Context, banner *models.Banner) (string, error) {
	result, err := r.Collection.InsertOne(ctx, banner)
	if err != nil {
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (r *BannerMongoRepository) FindAll(ctx context.Context) ([]models.Banner, error) {
	return r.find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

func (r *BannerMongoRepository) FindByID(ctx context.Context, bannerID string) (*models.Banner, error) {
	objectID, err := primitive.ObjectIDFromHex(bannerID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}

	var banner models.Banner
	err = r.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&banner)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &banner, nil
}

func (r *BannerMongoRepository) DeleteByID(ctx context.Context, bannerID string) (bool, error) {
	objectID, err := primitive.ObjectIDFromHex(bannerID)
	if err != nil {
		return false, exceptions.ErrMongoDBNotObjectID(err)
	}

	result, err := r.Collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return false, exceptions.ErrMongoDBDeleteDocument(err)
	}
	return result.DeletedCount > 0, nil
}

// NextActivationSeq increments the counter document, creating it on first use.
func (r *BannerMongoRepository) NextActivationSeq(ctx context.Context) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := r.Counters.FindOneAndUpdate(ctx,
		bson.M{"_id": constvars.MongoCounterBannerActivation},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return counter.Seq, nil
}

func (r *BannerMongoRepository) MarkActive(ctx context.Context, bannerID string, seq int64, activatedAt time.Time) (bool, error) {
	objectID, err := primitive.ObjectIDFromHex(bannerID)
	if err != nil {
		return false, exceptions.ErrMongoDBNotObjectID(err)
	}

	update := bson.M{"$set": bson.M{
		"isActive":      true,
		"activationSeq": seq,
		"activatedAt":   activatedAt,
		"updatedAt":     activatedAt,
	}}
	result, err := r.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return false, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return result.MatchedCount > 0, nil
}

// DeactivateOlderThan also matches active banners that never got a sequence.
func (r *BannerMongoRepository) DeactivateOlderThan(ctx context.Context, bannerID string, seq int64) (int64, error) {
	objectID, err := primitive.ObjectIDFromHex(bannerID)
	if err != nil {
		return 0, exceptions.ErrMongoDBNotObjectID(err)
	}

	filter := bson.M{
		"_id":      bson.M{"$ne": objectID},
		"isActive": true,
		"$or": []bson.M{
			{"activationSeq": bson.M{"$lt": seq}},
			{"activationSeq": bson.M{"$exists": false}},
		},
	}
	update := bson.M{"$set": bson.M{"isActive": false, "updatedAt": time.Now()}}

	result, err := r.Collection.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return result.ModifiedCount, nil
}

func (r *BannerMongoRepository) FindActiveNewerThan(ctx context.Context, seq int64) (*models.Banner, error) {
	filter := bson.M{
		"isActive":      true,
		"activationSeq": bson.M{"$gt": seq},
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "activationSeq", Value: -1}})

	var banner models.Banner
	err := r.Collection.FindOne(ctx, filter, opts).Decode(&banner)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &banner, nil
}

func (r *BannerMongoRepository) DeactivateIfSeq(ctx context.Context, bannerID string, seq int64) (bool, error) {
	objectID, err := primitive.ObjectIDFromHex(bannerID)
	if err != nil {
		return false, exceptions.ErrMongoDBNotObjectID(err)
	}

	filter := bson.M{"_id": objectID, "isActive": true, "activationSeq": seq}
	update := bson.M{"$set": bson.M{"isActive": false, "updatedAt": time.Now()}}

	result, err := r.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return result.ModifiedCount > 0, nil
}

func (r *BannerMongoRepository) FindActive(ctx context.Context) ([]models.Banner, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "activationSeq", Value: -1},
		{Key: "activatedAt", Value: -1},
	})
	return r.find(ctx, bson.M{"isActive": true}, opts)
}

func (r *BannerMongoRepository) DeactivateAllExcept(ctx context.Context, bannerID string) (int64, error) {
	objectID, err := primitive.ObjectIDFromHex(bannerID)
	if err != nil {
		return 0, exceptions.ErrMongoDBNotObjectID(err)
	}

	filter := bson.M{"_id": bson.M{"$ne": objectID}, "isActive": true}
	update := bson.M{"$set": bson.M{"isActive": false, "updatedAt": time.Now()}}

	result, err := r.Collection.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return result.ModifiedCount, nil
}

func (r *BannerMongoRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Banner, error) {
	cursor, err := r.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	banners := make([]models.Banner, 0)
	if err := cursor.All(ctx, &banners); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return banners, nil
}

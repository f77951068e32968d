package bookings

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

type BookingMongoRepository struct {
	Collection *mongo.Collection
}

func NewBookingMongoRepository(db *mongo.Client, dbName string) contracts.BookingRepository {
	return &BookingMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionBookings),
	}
}

// Create keeps a caller chosen id, stored as an ObjectID like generated ones.
func (r *BookingMongoRepository) Create(ctx context.Context, booking *models.Booking) (string, error) {
	if booking.ID == "" {
		booking.ID = primitive.NewObjectID().Hex()
	}
	objectID, err := primitive.ObjectIDFromHex(booking.ID)
	if err != nil {
		return "", exceptions.ErrMongoDBNotObjectID(err)
	}

	document, err := bookingDocument(objectID, booking)
	if err != nil {
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}

	_, err = r.Collection.InsertOne(ctx, document)
	if err != nil {
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return booking.ID, nil
}

func bookingDocument(objectID primitive.ObjectID, booking *models.Booking) (bson.D, error) {
	fields := *booking
	fields.ID = ""

	raw, err := bson.Marshal(fields)
	if err != nil {
		return nil, err
	}
	var document bson.D
	if err := bson.Unmarshal(raw, &document); err != nil {
		return nil, err
	}
	return append(bson.D{{Key: "_id", Value: objectID}}, document...), nil
}

func (r *BookingMongoRepository) FindByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	objectID, err := primitive.ObjectIDFromHex(bookingID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}

	var booking models.Booking
	err = r.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&booking)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &booking, nil
}

func (r *BookingMongoRepository) FindByTestID(ctx context.Context, testID string) ([]models.Booking, error) {
	return r.find(ctx, bson.M{"testId": testID})
}

func (r *BookingMongoRepository) FindByEmail(ctx context.Context, email string) ([]models.Booking, error) {
	return r.find(ctx, bson.M{"email": email})
}

// DeleteByID uses findAndModify so two concurrent cancellations cannot both
// observe the deleted booking.
func (r *BookingMongoRepository) DeleteByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	objectID, err := primitive.ObjectIDFromHex(bookingID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}

	var booking models.Booking
	err = r.Collection.FindOneAndDelete(ctx, bson.M{"_id": objectID}).Decode(&booking)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBDeleteDocument(err)
	}
	return &booking, nil
}

// MarkDone is a plain $set, applying it twice with the same link is a no-op.
func (r *BookingMongoRepository) MarkDone(ctx context.Context, bookingID, pdfLink string) (*models.Booking, error) {
	objectID, err := primitive.ObjectIDFromHex(bookingID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}

	update := bson.M{"$set": bson.M{
		"reportStatus": constvars.BookingReportStatusDone,
		"pdfLink":      pdfLink,
		"updatedAt":    time.Now(),
	}}

	var booking models.Booking
	err = r.Collection.FindOneAndUpdate(ctx, bson.M{"_id": objectID}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&booking)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return &booking, nil
}

func (r *BookingMongoRepository) find(ctx context.Context, filter bson.M) ([]models.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	bookings := make([]models.Booking, 0)
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return bookings, nil
}

package bookings

import (
	"mediscan-service/internal/app/models"
	"mediscan-service/internal/pkg/constvars"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBookingDocument_StoresPresetIDAsObjectID(t *testing.T) {
	objectID := primitive.NewObjectID()
	booking := &models.Booking{
		ID:           objectID.Hex(),
		TestID:       "65f1c0de1111111111111111",
		Email:        "patient@example.com",
		ReportStatus: constvars.BookingReportStatusPending,
	}

	document, err := bookingDocument(objectID, booking)
	require.NoError(t, err)

	require.NotEmpty(t, document)
	assert.Equal(t, "_id", document[0].Key)
	assert.Equal(t, objectID, document[0].Value)

	ids := 0
	for _, element := range document {
		if element.Key == "_id" {
			ids++
		}
	}
	assert.Equal(t, 1, ids)
	assert.Equal(t, objectID.Hex(), booking.ID, "caller's booking is left untouched")

	raw, err := bson.Marshal(document)
	require.NoError(t, err)
	var decoded models.Booking
	require.NoError(t, bson.Unmarshal(raw, &decoded))
	assert.Equal(t, objectID.Hex(), decoded.ID)
	assert.Equal(t, booking.Email, decoded.Email)
}

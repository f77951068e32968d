package models

import (
	"mediscan-service/internal/pkg/dto/responses"
	"time"
)

// Test is a bookable diagnostic test. Slots is the remaining capacity and is
// only ever decremented through a conditional update that requires slots > 0.
type Test struct {
	ID            string    `json:"_id" bson:"_id,omitempty"`
	TestName      string    `json:"testName" bson:"testName"`
	Image         string    `json:"image" bson:"image"`
	Details       string    `json:"details" bson:"details"`
	Price         float64   `json:"price" bson:"price"`
	Slots         int       `json:"slots" bson:"slots"`
	TestStartDate time.Time `json:"testStartDate" bson:"testStartDate"`
	TimeModel     `bson:",inline"`
}

func (t Test) ConvertIntoResponse() responses.Test {
	return responses.Test{
		ID:            t.ID,
		TestName:      t.TestName,
		Image:         t.Image,
		Details:       t.Details,
		Price:         t.Price,
		Slots:         t.Slots,
		TestStartDate: t.TestStartDate,
	}
}

// TestUpdate holds the admin editable fields. Nil fields are left untouched.
type TestUpdate struct {
	TestName      *string
	Image         *string
	Details       *string
	Price         *float64
	Slots         *int
	TestStartDate *time.Time
}

func (u TestUpdate) ConvertToBsonM() map[string]interface{} {
	fields := map[string]interface{}{}
	if u.TestName != nil {
		fields["testName"] = *u.TestName
	}
	if u.Image != nil {
		fields["image"] = *u.Image
	}
	if u.Details != nil {
		fields["details"] = *u.Details
	}
	if u.Price != nil {
		fields["price"] = *u.Price
	}
	if u.Slots != nil {
		fields["slots"] = *u.Slots
	}
	if u.TestStartDate != nil {
		fields["testStartDate"] = *u.TestStartDate
	}
	return fields
}

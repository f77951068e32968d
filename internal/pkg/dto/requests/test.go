package requests

import "time"

type CreateTest struct {
	TestName      string    `json:"testName" validate:"required,max=200"`
	Image         string    `json:"image" validate:"omitempty,url"`
	Details       string    `json:"details"`
	Price         float64   `json:"price" validate:"gte=0"`
	Slots         int       `json:"slots" validate:"gte=0"`
	TestStartDate time.Time `json:"testStartDate" validate:"required"`
}

type UpdateTest struct {
	TestName      *string    `json:"testName" validate:"omitempty,max=200"`
	Image         *string    `json:"image" validate:"omitempty,url"`
	Details       *string    `json:"details"`
	Price         *float64   `json:"price" validate:"omitempty,gte=0"`
	Slots         *int       `json:"slots" validate:"omitempty,gte=0"`
	TestStartDate *time.Time `json:"testStartDate"`
}

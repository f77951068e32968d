package responses

import "time"

type Test struct {
	ID            string    `json:"_id"`
	TestName      string    `json:"testName"`
	Image         string    `json:"image"`
	Details       string    `json:"details"`
	Price         float64   `json:"price"`
	Slots         int       `json:"slots"`
	TestStartDate time.Time `json:"testStartDate"`
}

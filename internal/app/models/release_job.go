package models

import "time"

// SlotReleaseJob asks the release worker to give one slot back to a test
// after the in-line compensation could not reach the store.
type SlotReleaseJob struct {
	ID          string    `json:"id"`
	TestID      string    `json:"test_id"`
	Reason      string    `json:"reason"`
	FailedCount int       `json:"failed_count"`
	CreatedAt   time.Time `json:"created_at"`
}

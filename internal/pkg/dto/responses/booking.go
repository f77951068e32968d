package responses

import "time"

type Booking struct {
	ID           string                 `json:"_id"`
	TestID       string                 `json:"testId"`
	Email        string                 `json:"email"`
	Payload      map[string]interface{} `json:"payload,omitempty"`
	ReportStatus string                 `json:"reportStatus"`
	PdfLink      string                 `json:"pdfLink,omitempty"`
	CreatedAt    time.Time              `json:"createdAt"`
	UpdatedAt    time.Time              `json:"updatedAt"`
}

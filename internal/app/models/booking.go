package models

import (
	"mediscan-service/internal/pkg/constvars"
	"mediscan-service/internal/pkg/dto/responses"
)

type Booking struct {
	ID           string                 `json:"_id" bson:"_id,omitempty"`
	TestID       string                 `json:"testId" bson:"testId"`
	Email        string                 `json:"email" bson:"email"`
	Payload      map[string]interface{} `json:"payload,omitempty" bson:"payload,omitempty"`
	ReportStatus string                 `json:"reportStatus" bson:"reportStatus"`
	PdfLink      string                 `json:"pdfLink,omitempty" bson:"pdfLink,omitempty"`
	TimeModel    `bson:",inline"`
}

func (b Booking) IsPending() bool {
	return b.ReportStatus == constvars.BookingReportStatusPending
}

func (b Booking) ConvertIntoResponse() responses.Booking {
	return responses.Booking{
		ID:           b.ID,
		TestID:       b.TestID,
		Email:        b.Email,
		Payload:      b.Payload,
		ReportStatus: b.ReportStatus,
		PdfLink:      b.PdfLink,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

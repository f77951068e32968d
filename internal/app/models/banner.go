package models

import (
	"mediscan-service/internal/pkg/dto/responses"
	"time"
)

// Banner is a promotional banner. ActivationSeq is drawn from a monotonic
// counter on every activation and orders competing active banners.
type Banner struct {
	ID            string     `json:"_id" bson:"_id,omitempty"`
	Name          string     `json:"name" bson:"name"`
	Image         string     `json:"image" bson:"image"`
	Title         string     `json:"title" bson:"title"`
	Description   string     `json:"description" bson:"description"`
	CouponCode    string     `json:"couponCode" bson:"couponCode"`
	CouponRate    float64    `json:"couponRate" bson:"couponRate"`
	IsActive      bool       `json:"isActive" bson:"isActive"`
	ActivationSeq int64      `json:"activationSeq,omitempty" bson:"activationSeq,omitempty"`
	ActivatedAt   *time.Time `json:"activatedAt,omitempty" bson:"activatedAt,omitempty"`
	TimeModel     `bson:",inline"`
}

func (b Banner) ConvertIntoResponse() responses.Banner {
	return responses.Banner{
		ID:            b.ID,
		Name:          b.Name,
		Image:         b.Image,
		Title:         b.Title,
		Description:   b.Description,
		CouponCode:    b.CouponCode,
		CouponRate:    b.CouponRate,
		IsActive:      b.IsActive,
		ActivationSeq: b.ActivationSeq,
		ActivatedAt:   b.ActivatedAt,
	}
}

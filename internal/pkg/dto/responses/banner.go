package responses

import "time"

type Banner struct {
	ID            string     `json:"_id"`
	Name          string     `json:"name"`
	Image         string     `json:"image"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	CouponCode    string     `json:"couponCode"`
	CouponRate    float64    `json:"couponRate"`
	IsActive      bool       `json:"isActive"`
	ActivationSeq int64      `json:"activationSeq,omitempty"`
	ActivatedAt   *time.Time `json:"activatedAt,omitempty"`
}

type BannerRepair struct {
	ActiveBannerID string `json:"activeBannerId,omitempty"`
	Deactivated    int64  `json:"deactivated"`
}

package requests

type CreateBanner struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Image       string  `json:"image" validate:"required,url"`
	Title       string  `json:"title" validate:"required,max=200"`
	Description string  `json:"description"`
	CouponCode  string  `json:"couponCode" validate:"omitempty,alphanum,max=32"`
	CouponRate  float64 `json:"couponRate" validate:"gte=0,lte=100"`
}

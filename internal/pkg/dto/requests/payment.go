package requests

// CreateChargeIntent amount is expressed in minor currency units.
type CreateChargeIntent struct {
	Amount   int64  `json:"amount" validate:"gt=0"`
	Currency string `json:"currency" validate:"required,iso4217"`
}

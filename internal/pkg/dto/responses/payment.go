package responses

type ChargeIntent struct {
	ClientSecret string `json:"clientSecret"`
}

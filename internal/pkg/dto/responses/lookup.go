package responses

type District struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	BnName string `json:"bn_name"`
}

type Upazila struct {
	ID         string `json:"id"`
	DistrictID string `json:"district_id"`
	Name       string `json:"name"`
	BnName     string `json:"bn_name"`
}

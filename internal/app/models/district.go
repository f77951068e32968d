package models

import "mediscan-service/internal/pkg/dto/responses"

type District struct {
	ID         string `json:"id" bson:"id"`
	DivisionID string `json:"division_id" bson:"division_id"`
	Name       string `json:"name" bson:"name"`
	BnName     string `json:"bn_name" bson:"bn_name"`
	URL        string `json:"url,omitempty" bson:"url,omitempty"`
}

func (d District) ConvertIntoResponse() responses.District {
	return responses.District{
		ID:     d.ID,
		Name:   d.Name,
		BnName: d.BnName,
	}
}

type Upazila struct {
	ID         string `json:"id" bson:"id"`
	DistrictID string `json:"district_id" bson:"district_id"`
	Name       string `json:"name" bson:"name"`
	BnName     string `json:"bn_name" bson:"bn_name"`
	URL        string `json:"url,omitempty" bson:"url,omitempty"`
}

func (u Upazila) ConvertIntoResponse() responses.Upazila {
	return responses.Upazila{
		ID:         u.ID,
		DistrictID: u.DistrictID,
		Name:       u.Name,
		BnName:     u.BnName,
	}
}

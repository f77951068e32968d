package models

import "mediscan-service/internal/pkg/dto/responses"

type User struct {
	ID         string `json:"_id" bson:"_id,omitempty"`
	Name       string `json:"name" bson:"name"`
	Email      string `json:"email" bson:"email"`
	Avatar     string `json:"avatar,omitempty" bson:"avatar,omitempty"`
	BloodGroup string `json:"bloodGroup,omitempty" bson:"bloodGroup,omitempty"`
	District   string `json:"district,omitempty" bson:"district,omitempty"`
	Upazila    string `json:"upazila,omitempty" bson:"upazila,omitempty"`
	Role       string `json:"role" bson:"role"`
	Status     string `json:"status" bson:"status"`
	TimeModel  `bson:",inline"`
}

func (u User) ConvertIntoResponse() responses.User {
	return responses.User{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Avatar:     u.Avatar,
		BloodGroup: u.BloodGroup,
		District:   u.District,
		Upazila:    u.Upazila,
		Role:       u.Role,
		Status:     u.Status,
	}
}

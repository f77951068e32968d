package requests

type CreateUser struct {
	Name       string `json:"name" validate:"required,max=100"`
	Email      string `json:"email" validate:"required,email"`
	Avatar     string `json:"avatar" validate:"omitempty,url"`
	BloodGroup string `json:"bloodGroup" validate:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	District   string `json:"district"`
	Upazila    string `json:"upazila"`
}

type SetUserRole struct {
	Role string `json:"role" validate:"required,user_role"`
}

type SetUserStatus struct {
	Status string `json:"status" validate:"required,user_status"`
}

package utils

import (
	"mediscan-service/internal/pkg/constvars"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("user_role", validateUserRole)
	validate.RegisterValidation("user_status", validateUserStatus)
	validate.RegisterValidation("mongo_id", validateMongoID)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateUserRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == constvars.UserRoleUser || value == constvars.UserRoleAdmin
}

func validateUserStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == constvars.UserStatusActive || value == constvars.UserStatusBlocked
}

func validateMongoID(fl validator.FieldLevel) bool {
	return primitive.IsValidObjectID(fl.Field().String())
}

package utils

import (
	"mediscan-service/internal/pkg/dto/requests"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeCreateUserRequest(t *testing.T) {
	t.Run("Email Sanitization", func(t *testing.T) {
		request := &requests.CreateUser{
			Name:  "  Rahim  ",
			Email: "  RAHIM@EXAMPLE.COM  ",
		}

		SanitizeCreateUserRequest(request)

		assert.Equal(t, "rahim@example.com", request.Email, "email should be lowercase and trimmed")
		assert.Equal(t, "Rahim", request.Name, "name should be trimmed")
	})

	t.Run("Blood Group Sanitization", func(t *testing.T) {
		request := &requests.CreateUser{
			Email:      "rahim@example.com",
			BloodGroup: " ab+ ",
		}

		SanitizeCreateUserRequest(request)

		assert.Equal(t, "AB+", request.BloodGroup, "blood group should be uppercase and trimmed")
	})
}

func TestSanitizeSetUserRoleRequest(t *testing.T) {
	request := &requests.SetUserRole{Role: "  ADMIN "}

	SanitizeSetUserRoleRequest(request)

	assert.Equal(t, "admin", request.Role)
}

func TestSanitizeCreateChargeIntentRequest(t *testing.T) {
	request := &requests.CreateChargeIntent{Amount: 1500, Currency: " usd "}

	SanitizeCreateChargeIntentRequest(request)

	assert.Equal(t, "USD", request.Currency)
	assert.NoError(t, ValidateStruct(request))
}

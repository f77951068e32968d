package utils

import (
	"mediscan-service/internal/pkg/dto/requests"
	"strings"
)

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

func SanitizeIssueTokenRequest(input *requests.IssueToken) {
	input.Email = normalizeEmail(input.Email)
	input.Name = strings.TrimSpace(input.Name)
}

func SanitizeCreateUserRequest(input *requests.CreateUser) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = normalizeEmail(input.Email)
	input.Avatar = strings.TrimSpace(input.Avatar)
	input.BloodGroup = strings.ToUpper(strings.TrimSpace(input.BloodGroup))
	input.District = strings.TrimSpace(input.District)
	input.Upazila = strings.TrimSpace(input.Upazila)
}

func SanitizeSetUserRoleRequest(input *requests.SetUserRole) {
	input.Role = strings.ToLower(strings.TrimSpace(input.Role))
}

func SanitizeSetUserStatusRequest(input *requests.SetUserStatus) {
	input.Status = strings.ToLower(strings.TrimSpace(input.Status))
}

func SanitizeCreateTestRequest(input *requests.CreateTest) {
	input.TestName = strings.TrimSpace(input.TestName)
	input.Image = strings.TrimSpace(input.Image)
	input.Details = strings.TrimSpace(input.Details)
}

func SanitizeCreateBannerRequest(input *requests.CreateBanner) {
	input.Name = strings.TrimSpace(input.Name)
	input.Image = strings.TrimSpace(input.Image)
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	input.CouponCode = strings.ToUpper(strings.TrimSpace(input.CouponCode))
}

func SanitizeRecordResultRequest(input *requests.RecordResult) {
	input.PdfLink = strings.TrimSpace(input.PdfLink)
}

// SanitizeCreateChargeIntentRequest uppercases the currency for ISO 4217 validation.
func SanitizeCreateChargeIntentRequest(input *requests.CreateChargeIntent) {
	input.Currency = strings.ToUpper(strings.TrimSpace(input.Currency))
}

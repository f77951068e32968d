package requests

// IssueToken carries the claims signed into the access token.
type IssueToken struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name"`
}

package responses

type IssueToken struct {
	Token string `json:"token"`
}

type IsAdmin struct {
	Admin bool `json:"admin"`
}

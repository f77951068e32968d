package models

// Identity is the verified subject of an access token. Role is never carried
// here: privileged operations re-read it from the users collection.
type Identity struct {
	Email string
}

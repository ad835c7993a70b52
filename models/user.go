package models

// User is the guest-facing account as returned by the auth backend.
type User struct {
	ID    FlexID `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

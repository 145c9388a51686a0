package domain

// User is an account in the social graph. Name falls back to Login when it
// is left blank on create or update.
type User struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Login    string `json:"login"`
	Name     string `json:"name"`
	Birthday *Date  `json:"birthday,omitempty"`
}

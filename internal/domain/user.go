package domain

import "time"

// Address is a saved delivery address on a user profile.
type Address struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Region  string `json:"region"`
	Commune string `json:"commune"`
	Address string `json:"address"`
}

// User is the identity record supplied by the auth collaborator. Guest users
// carry no profile data worth pre-filling.
type User struct {
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Addresses []Address `json:"addresses,omitempty"`
	IsGuest   bool      `json:"isGuest,omitempty"`
}

// ResetCode is a short-lived password reset record.
type ResetCode struct {
	Email     string    `json:"email"`
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the code is past its expiry at the given time.
func (r ResetCode) Expired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}

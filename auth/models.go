package auth

import "time"

// User is the domain representation of a registered account. It mirrors the
// users table and carries no JSON annotations so it can be reused by
// different presentation layers.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Phone        string
	Address      string
	City         string
	Postcode     string
	ProfileImage *string
	IsVerified   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicProfile is the subset of a user row safe to show to anyone.
type PublicProfile struct {
	ID           string
	FirstName    string
	LastName     string
	City         string
	ProfileImage *string
	CreatedAt    time.Time
}

// RegisterRequest contains homeowner registration data supplied by callers.
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	Postcode  string `json:"postcode"`
}

// LoginRequest contains user login credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileParams carries the full set of profile fields; updates always
// write every column (the profile form submits the whole record).
type UpdateProfileParams struct {
	FirstName    string
	LastName     string
	Phone        string
	Address      string
	City         string
	Postcode     string
	ProfileImage *string
}

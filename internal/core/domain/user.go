package domain

import "time"

// AuthProvider identifies how an account authenticates.
type AuthProvider string

const (
	// ProviderLocal marks accounts that log in with email and password.
	ProviderLocal AuthProvider = "local"
	// ProviderGoogle marks accounts asserted by Google sign-in.
	ProviderGoogle AuthProvider = "google"
)

// User is the sole core identity entity. Email is unique after
// normalization (trim + lowercase); GoogleID is unique when present.
type User struct {
	UserID       string       `json:"userID"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"`
	AuthProvider AuthProvider `json:"authProvider"`
	GoogleID     string       `json:"-"`
	AvatarURL    string       `json:"avatarURL,omitempty"`
	Verified     bool         `json:"verified"`

	// ActionToken holds the single currently-active out-of-band token
	// (email verification or password reset). It is a signed token kept
	// as the single-use marker and cleared on consumption.
	ActionToken   string     `json:"-"`
	TokenIssuedAt *time.Time `json:"-"`

	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// IsFederated reports whether the account authenticates through Google.
func (u *User) IsFederated() bool {
	return u.AuthProvider == ProviderGoogle
}

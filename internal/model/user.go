// Package model defines domain entities for the application.
package model

import "time"

// User is the profile record kept for an external identity.
// ID is the identity provider's subject and never changes once assigned.
type User struct {
	ID          string         `json:"id"`
	Email       string         `json:"email"`
	Name        string         `json:"name"`
	Watchlist   []string       `json:"watchlist"`
	Preferences map[string]any `json:"preferences"`
	CreatedAt   time.Time      `json:"-"`
	UpdatedAt   time.Time      `json:"-"`
}

// NewUserFromClaims builds a fresh record for a first-time identity.
func NewUserFromClaims(claims IdentityClaims, now time.Time) *User {
	return &User{
		ID:          claims.Subject,
		Email:       claims.Email,
		Name:        claims.Name,
		Watchlist:   []string{},
		Preferences: map[string]any{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// IdentityClaims are the claims read from a bearer credential.
// They are not trusted: nothing checks the credential's signature.
type IdentityClaims struct {
	Subject string
	Email   string
	Name    string
}

// Package models holds the server-side domain types shared by the
// repositories, services and transports.
package models

import (
	"strings"
	"time"
)

// User is a stored credential record. PasswordHash is never serialised.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash []byte    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// AuthenticatedUser is the client-visible projection of a User.
type AuthenticatedUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Public returns the client-visible projection of u.
func (u *User) Public() AuthenticatedUser {
	return AuthenticatedUser{ID: u.ID, Name: u.Name, Email: u.Email}
}

// NormalizeEmail returns the comparison key for email: trimmed and
// lower-cased. Stores enforce uniqueness and look records up by this key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

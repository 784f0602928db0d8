package model

import "strings"

// A User represents a database record.
type User struct {
	Base `msgpack:",inline" storm:"inline"`

	Username string `msgpack:"username" storm:"unique"`
	Email    string `msgpack:"email"    storm:"unique"`
	Password string `msgpack:"password,omitempty"`
	Active   bool   `msgpack:"active"`
	Admin    bool   `msgpack:"admin"    storm:"index"`
}

// NewUser returns a new active user with normalized identifiers.
func NewUser(username, email string) *User {
	return &User{
		Username: NormalizeUsername(username),
		Email:    NormalizeEmail(email),
		Active:   true,
	}
}

// NormalizeUsername returns the stored form of a username.
// Usernames are unique regardless of their case.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// NormalizeEmail returns the stored form of an email.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

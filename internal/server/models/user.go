// Package models holds the persistence-facing data structures shared by
// repositories and services.
package models

import "time"

// User is an account row. PasswordHash is only ever a bcrypt hash after
// registration; legacy rows may still carry plaintext until the first
// successful login upgrades them.
type User struct {
	ID           int64
	UserName     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// PublicView returns a copy safe to hand past the identity boundary:
// the password hash is stripped and must never travel further.
func (u *User) PublicView() *User {
	v := *u
	v.PasswordHash = ""
	return &v
}

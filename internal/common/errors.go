// Package common defines shared sentinel errors used across the Mealy
// backend. Callers should use errors.Is to match these values; services may
// wrap them with fmt.Errorf("%w: ...") to add detail.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Validation / conflict outcomes reported to the caller before or
	// instead of a write.
	ErrValidation = errors.New("validation error")
	ErrConflict   = errors.New("conflict")

	// Auth errors. ErrInvalidToken covers structural, signature and expiry
	// failures; ErrUnauthorized covers failed credential checks. Login
	// deliberately never distinguishes "no such user" from "wrong password".
	ErrInvalidToken = errors.New("invalid token")
	ErrUnauthorized = errors.New("unauthorized")

	// Generic/internal flow control. Unexpected store failures surface as
	// ErrInternal so no backend detail leaks to the boundary.
	ErrInternal = errors.New("internal error")
)

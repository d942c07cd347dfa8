// Package common defines shared constants, sentinel errors and small helpers
// used across the client and server layers of UserDesk. Callers should use
// errors.Is to match the sentinel values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation error")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// ErrorAlreadyExists is returned when a unique field is already taken.
var ErrorAlreadyExists = errors.New("already exists")

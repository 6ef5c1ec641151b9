package service

import "errors"

var (
	// ErrInvalidInput is returned when a request field is missing or out of range.
	// It is usually wrapped with the offending field.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized is returned when no valid identity backs the request.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidCredentials is returned by login for an unknown email or a wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrForbidden is returned when the caller does not own the target.
	ErrForbidden = errors.New("forbidden")

	// ErrDuplicateAccount is returned when registering an email that already exists.
	ErrDuplicateAccount = errors.New("an account with this email already exists")
)

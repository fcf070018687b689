package session

import "errors"

var (
	// ErrMissingCredentials is returned when email or password is empty.
	ErrMissingCredentials = errors.New("email and password are required")

	// ErrMissingName is returned when a signup has no name.
	ErrMissingName = errors.New("name is required")

	// ErrUserNotFound is returned when no account exists for the email.
	ErrUserNotFound = errors.New("no account found for this email")

	// ErrBadCredentials is returned when the password does not match.
	ErrBadCredentials = errors.New("incorrect password")

	// ErrEmailTaken is returned when signing up with an existing email.
	ErrEmailTaken = errors.New("an account with this email already exists")
)

// Package shared holds the sentinel errors classified at the service
// boundary and mapped to user-facing messages by the HTTP layer.
package shared

import "errors"

var (
	// ErrNotFound is returned by repositories when no row matches.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyRegistered classifies a sign-up against an existing email.
	ErrAlreadyRegistered = errors.New("email already registered")

	// ErrInvalidCredentials classifies a failed sign-in. The caller cannot
	// tell a missing account from a wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrUnconfirmedEmail classifies a sign-in before email confirmation.
	ErrUnconfirmedEmail = errors.New("email not confirmed")

	// ErrInvalidInput classifies rejected sign-up/sign-in form input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidToken is returned for expired or malformed session tokens.
	ErrInvalidToken = errors.New("invalid session token")

	// ErrSaveFailed is the generic retry-prompt surfaced when the
	// persistence gateway fails. The original cause is logged, not
	// classified further.
	ErrSaveFailed = errors.New("failed to save resume, please try again")
)

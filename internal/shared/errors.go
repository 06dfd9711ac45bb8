package shared

import "errors"

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken occurs when a bearer token fails signature, expiry or issuer checks.
	ErrInvalidToken = errors.New("invalid token")
	// ErrUnauthorized occurs when a protected route is called without a token.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden occurs when the principal lacks the required role.
	ErrForbidden = errors.New("forbidden")
	// ErrDuplicateEmail occurs when registering an email that already has an account.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrPasswordMismatch occurs when password and its confirmation differ.
	ErrPasswordMismatch = errors.New("password confirmation mismatch")
	// ErrMalformedBody occurs when a request body cannot be decoded.
	ErrMalformedBody = errors.New("malformed request body")
)

package domain

import "errors"

// Authentication errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountNotVerified = errors.New("email address not verified")
	ErrAccountDeactivated = errors.New("account has been deactivated")
	ErrUserInactive       = errors.New("user not found or inactive")
	ErrWeakPassword       = errors.New("password must be at least 6 characters")
)

// Token errors
var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("malformed token")

	// ErrTokenNotFound is returned for any cache-backed secret that is
	// absent, whether it never existed, expired, or was already consumed.
	ErrTokenNotFound = errors.New("invalid or expired token")
)

// Authorization errors
var (
	ErrUnauthorized = errors.New("unauthorized access")
	ErrForbidden    = errors.New("insufficient role permissions")
)

// Dependency errors
var (
	ErrMailDelivery = errors.New("failed to deliver email")
)

package constants

import "errors"

// Configuration errors.
var (
	ErrNoAccount     = errors.New("no account configured, use --account or AVIDBASE_ACCOUNT")
	ErrNoAPIKey      = errors.New("no API key configured, use --api-key or AVIDBASE_API_KEY")
	ErrUnknownOutput = errors.New("unknown output format")
)

// Operation errors.
var (
	ErrLoginFailed      = errors.New("login failed")
	ErrListUsersFailed  = errors.New("listing users failed")
	ErrCreateUserFailed = errors.New("creating user failed")
	ErrUpdateUserFailed = errors.New("updating user failed")
	ErrUserIDRequired   = errors.New("user ID is required")
	ErrEmailRequired    = errors.New("email is required")
)

// Token errors.
var (
	ErrInvalidJWTFormat  = errors.New("invalid JWT format")
	ErrNoExpirationClaim = errors.New("no expiration claim found")
)

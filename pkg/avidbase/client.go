package avidbase

import (
	"context"
	"errors"
	"time"
)

// Static errors for err113 compliance.
var (
	ErrConfigRequired  = errors.New("config is required")
	ErrAccountRequired = errors.New("account is required")
	ErrAPIKeyRequired  = errors.New("API key is required")
	ErrInvalidBaseURL  = errors.New("invalid base URL")
)

// UserClient provides the user administration operations.
type UserClient interface {
	ListUsers(ctx context.Context) []AuthResult
	CreateUser(ctx context.Context, user User) bool
	UpdateUser(ctx context.Context, userID string, user User) bool
}

// AuthClient provides end-user authentication.
type AuthClient interface {
	Login(ctx context.Context, email, password string) AuthResult
	GetUserAccessToken() (string, bool)
}

type Client interface {
	AuthClient
	UserClient
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building an avidbase.Client.
//
// Only Account and APIKey are required. No request is sent while building
// the client; the machine token is requested by the first operation that
// needs it.
//
// # Retries
//
// The client does not retry by default: RetryMax of 0 means every operation
// issues exactly one HTTP request per step. Setting RetryMax enables
// transport-level retries on connection errors, 429 and 5xx responses.
type Config struct {
	// Account: tenant identifier (account UUID) scoping every request.
	Account string
	// APIKey: secret exchanged for the machine access token.
	APIKey string

	// BaseURL: API root. Defaults to DefaultBaseURL. avidclient.New adds a
	// trailing slash and an https scheme when missing.
	BaseURL string

	// HTTPTimeout: per-request timeout of the underlying http.Client. If 0,
	// constants.DefaultHTTPTimeout is used.
	HTTPTimeout time.Duration
	// RetryMax: maximum number of transport retries. 0 disables retries.
	RetryMax int
	// RetryWaitMin: minimum backoff between retries. Applied when RetryMax > 0.
	RetryWaitMin time.Duration
	// RetryWaitMax: maximum backoff between retries. Applied when RetryMax > 0.
	RetryWaitMax time.Duration
	// Debug: enables HTTP request/response logging when a Logger is provided.
	Debug bool
	// Logger: optional structured logger. Failure reasons are reported here.
	Logger Logger
	// UserAgent: overrides the default User-Agent header.
	UserAgent string
}

package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for quick operations.
	ShortHTTPTimeout = 10 * time.Second
)

// Retry limits. Retries are disabled unless the caller opts in.
const (
	// DefaultRetryMax is the default maximum number of retries.
	DefaultRetryMax = 0

	// DefaultRetryWaitMin is the minimum wait time between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 10 * time.Second
)

// HTTP headers.
const (
	// HeaderAccessToken carries both machine and user access tokens, in
	// responses and in requests.
	HeaderAccessToken = "Access-Token"

	// HeaderRequestID identifies a single request in logs on both sides.
	HeaderRequestID = "X-Request-Id"

	// ContentTypeJSON is used for every request and response body.
	ContentTypeJSON = "application/json"
)

// API paths, relative to the base URL.
const (
	// APIPathAccountToken is formatted with the account identifier.
	APIPathAccountToken = "v1/account/%s/token"

	// APIPathAuth is the end-user login endpoint.
	APIPathAuth = "v1/auth"

	// APIPathUsers lists and creates users.
	APIPathUsers = "v1/user"

	// APIPathUser is formatted with the user identifier.
	APIPathUser = "v1/user/%s"
)

// HTTP status codes commonly used.
const (
	// HTTPStatusOK is the only status treated as success by user operations.
	HTTPStatusOK = 200

	// HTTPStatusBadRequest is the lowest status treated as a failed response.
	HTTPStatusBadRequest = 400

	// HTTPStatusInternalServerError represents server errors.
	HTTPStatusInternalServerError = 500
)

// Logging limits.
const (
	// MaxLoggedBodyBytes truncates bodies in debug logs and errors.
	MaxLoggedBodyBytes = 512
)

// UI and display constants.
const (
	// NotAvailable is shown for missing values.
	NotAvailable = "N/A"

	// MaskedSecret replaces secrets in output.
	MaskedSecret = "***"
)

// Format constants.
const (
	// FormatTable is the default output format.
	FormatTable = "table"

	// FormatJSON outputs JSON.
	FormatJSON = "json"

	// FormatYAML outputs YAML.
	FormatYAML = "yaml"
)

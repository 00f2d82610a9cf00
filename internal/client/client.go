package client

import (
	"errors"

	"github.com/avidbase/avidbase-go/internal/auth"
	"github.com/avidbase/avidbase-go/internal/constants"
	"github.com/avidbase/avidbase-go/internal/http"
	"github.com/avidbase/avidbase-go/pkg/avidbase"
)

// Static errors for err113 compliance.
var (
	ErrAccountRequired = avidbase.ErrAccountRequired
	ErrAPIKeyRequired  = avidbase.ErrAPIKeyRequired
)

// Client implements avidbase.Client.
//
// Operations report failure through their return value only: false, a nil
// result or ("", false). The underlying error is sent to the logger.
//
// Client is safe for sequential reuse. Concurrent first calls may each
// request a machine token; the last one stored is kept.
type Client struct {
	httpClient   *http.Client
	machineToken *auth.MachineTokenManager
	userToken    *auth.TokenStore
	account      string
	baseURL      string
	logger       avidbase.Logger
}

var _ avidbase.Client = (*Client)(nil)

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *avidbase.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(&loggerAdapter{logger: config.Logger}))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.HTTPTimeout))
	}

	if config.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.DefaultRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	return httpOpts
}

// New creates a client. No request is sent.
func New(config *avidbase.Config, extra ...http.Option) (*Client, error) {
	if config == nil {
		return nil, avidbase.ErrConfigRequired
	}

	if config.Account == "" {
		return nil, ErrAccountRequired
	}

	if config.APIKey == "" {
		return nil, ErrAPIKeyRequired
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = avidbase.DefaultBaseURL
	}

	httpOpts := append(createHTTPClientOptions(config), extra...)
	httpClient := http.NewClient(baseURL, httpOpts...)

	return &Client{
		httpClient:   httpClient,
		machineToken: auth.NewMachineTokenManager(httpClient, config.Account, config.APIKey),
		userToken:    auth.NewTokenStore(),
		account:      config.Account,
		baseURL:      httpClient.BaseURL(),
		logger:       config.Logger,
	}, nil
}

// Account returns the account identifier the client is scoped to.
func (c *Client) Account() string {
	return c.account
}

// BaseURL returns the API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// MachineAccessToken returns the cached machine token without sending a
// request.
func (c *Client) MachineAccessToken() (string, bool) {
	return c.machineToken.Token()
}

// report logs why an operation produced its failure result.
func (c *Client) report(operation string, err error) {
	if c.logger == nil || err == nil {
		return
	}

	fields := map[string]interface{}{
		"operation": operation,
		"error":     err.Error(),
	}

	if status := avidbase.StatusCode(err); status != 0 {
		fields["status_code"] = status
	}

	switch {
	case errors.Is(err, avidbase.ErrTokenHeaderMissing),
		errors.Is(err, avidbase.ErrUnexpectedStatus),
		errors.Is(err, avidbase.ErrUnexpectedPayload):
		c.logger.Debug("Operation failed", fields)
	default:
		c.logger.Warn("Operation failed", fields)
	}
}

// loggerAdapter adapts avidbase.Logger to http.Logger.
type loggerAdapter struct {
	logger avidbase.Logger
}

func (l *loggerAdapter) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug(msg, fields)
}

func (l *loggerAdapter) Info(msg string, fields map[string]interface{}) {
	l.logger.Info(msg, fields)
}

func (l *loggerAdapter) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn(msg, fields)
}

func (l *loggerAdapter) Error(msg string, fields map[string]interface{}) {
	l.logger.Error(msg, fields)
}

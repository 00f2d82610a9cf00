package avidclient

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/avidbase/avidbase-go/internal/client"
	"github.com/avidbase/avidbase-go/pkg/avidbase"
)

// New creates a new Avidbase API client. No request is sent until the first
// operation.
func New(config *avidbase.Config) (avidbase.Client, error) {
	if config == nil {
		return nil, avidbase.ErrConfigRequired
	}

	baseURL, err := NormalizeBaseURL(config.BaseURL)
	if err != nil {
		return nil, err
	}

	normalized := *config
	normalized.BaseURL = baseURL

	c, err := client.New(&normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return c, nil
}

// NormalizeBaseURL applies the default, adds "https://" when no scheme is
// present and ensures a trailing slash so relative API paths resolve below it.
func NormalizeBaseURL(raw string) (string, error) {
	baseURL := strings.TrimSpace(raw)
	if baseURL == "" {
		return avidbase.DefaultBaseURL, nil
	}

	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "https://" + baseURL
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("%w: %w", avidbase.ErrInvalidBaseURL, err)
	}

	if parsed.Host == "" {
		return "", fmt.Errorf("%w: no host in %q", avidbase.ErrInvalidBaseURL, raw)
	}

	if !strings.HasSuffix(parsed.Path, "/") {
		parsed.Path += "/"
	}

	return parsed.String(), nil
}

// NewWithAPIKey creates a client for the default endpoint.
func NewWithAPIKey(account, apiKey string) (avidbase.Client, error) {
	return New(&avidbase.Config{
		Account: account,
		APIKey:  apiKey,
	})
}

// NewWithBaseURL creates a client for the given endpoint.
func NewWithBaseURL(account, apiKey, baseURL string) (avidbase.Client, error) {
	return New(&avidbase.Config{
		Account: account,
		APIKey:  apiKey,
		BaseURL: baseURL,
	})
}

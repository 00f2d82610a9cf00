// Package http provides the JSON transport used by the API client.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/avidbase/avidbase-go/internal/constants"
	"github.com/avidbase/avidbase-go/pkg/avidbase"
)

// Static errors for err113 compliance.
var (
	ErrInvalidBaseURL = errors.New("invalid base URL")
)

// Logger is the logging interface used by the transport.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Request describes a single API call. Path is resolved against the base URL.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    interface{}
	Headers map[string]string
}

// Response holds a fully read response.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	RequestID  string
}

// Header returns the first value of the named response header and whether
// the header was present at all.
func (r *Response) Header(name string) (string, bool) {
	if r == nil || r.Headers == nil {
		return "", false
	}

	values := r.Headers.Values(name)
	if len(values) == 0 {
		return "", false
	}

	return values[0], true
}

// Client is a base-URL-bound JSON client. A response with status >= 400 is
// returned together with an *avidbase.APIError.
type Client struct {
	baseURL    *url.URL
	httpClient *retryablehttp.Client
	logger     Logger
	debug      bool
	userAgent  string
	newID      func() string
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request and response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithRetryConfig enables retries on connection errors, 429 and 5xx.
func WithRetryConfig(maxRetries int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = maxRetries
		c.httpClient.RetryWaitMin = waitMin
		c.httpClient.RetryWaitMax = waitMax
	}
}

// WithTimeout sets the per-request timeout of the underlying http.Client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.HTTPClient.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient.HTTPClient = httpClient
	}
}

// WithRequestIDGenerator overrides how X-Request-Id values are produced.
func WithRequestIDGenerator(fn func() string) Option {
	return func(c *Client) {
		c.newID = fn
	}
}

// NewClient creates a transport bound to baseURL. An unparsable baseURL is
// reported on the first request rather than here.
func NewClient(baseURL string, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.Logger = nil
	retryClient.RetryMax = constants.DefaultRetryMax
	retryClient.RetryWaitMin = constants.DefaultRetryWaitMin
	retryClient.RetryWaitMax = constants.DefaultRetryWaitMax
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout

	client := &Client{
		baseURL:    parseBaseURL(baseURL),
		httpClient: retryClient,
		userAgent:  "avidbase-go",
		newID:      uuid.NewString,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.logger != nil && client.debug && retryClient.RetryMax > 0 {
		retryClient.Logger = &leveledLogger{logger: client.logger}
	}

	return client
}

// BaseURL returns the URL requests are resolved against.
func (c *Client) BaseURL() string {
	if c.baseURL == nil {
		return ""
	}

	return c.baseURL.String()
}

func parseBaseURL(raw string) *url.URL {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil
	}

	if !strings.HasSuffix(parsed.Path, "/") {
		parsed.Path += "/"
	}

	return parsed
}

func (c *Client) resolve(path string, query url.Values) (string, error) {
	if c.baseURL == nil {
		return "", ErrInvalidBaseURL
	}

	ref, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("parsing path %q: %w", path, err)
	}

	target := c.baseURL.ResolveReference(ref)
	if len(query) > 0 {
		target.RawQuery = query.Encode()
	}

	return target.String(), nil
}

// Do sends the request and reads the full response body.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	target, err := c.resolve(req.Path, req.Query)
	if err != nil {
		return nil, err
	}

	var rawBody interface{}

	if req.Body != nil {
		body, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}

		rawBody = body
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, target, rawBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	requestID := c.newID()

	httpReq.Header.Set("Accept", constants.ContentTypeJSON)
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set(constants.HeaderRequestID, requestID)

	if rawBody != nil {
		httpReq.Header.Set("Content-Type", constants.ContentTypeJSON)
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	c.logRequest(req, requestID)

	start := time.Now()

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.Path, err)
	}

	defer func() {
		_ = httpResp.Body.Close()
	}()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       respBody,
		RequestID:  requestID,
	}

	c.logResponse(req, resp, time.Since(start))

	if resp.StatusCode >= constants.HTTPStatusBadRequest {
		return resp, &avidbase.APIError{
			StatusCode: resp.StatusCode,
			Method:     req.Method,
			Path:       req.Path,
			Body:       truncate(respBody),
		}
	}

	return resp, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Body: body})
}

// Patch performs a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPatch, Path: path, Body: body})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path})
}

func (c *Client) logRequest(req *Request, requestID string) {
	if !c.debug || c.logger == nil {
		return
	}

	c.logger.Debug("HTTP Request", map[string]interface{}{
		"method":     req.Method,
		"path":       req.Path,
		"request_id": requestID,
	})
}

func (c *Client) logResponse(req *Request, resp *Response, elapsed time.Duration) {
	if !c.debug || c.logger == nil {
		return
	}

	c.logger.Debug("HTTP Response", map[string]interface{}{
		"method":      req.Method,
		"path":        req.Path,
		"status_code": resp.StatusCode,
		"request_id":  resp.RequestID,
		"duration_ms": elapsed.Milliseconds(),
		"body":        truncate(resp.Body),
	})
}

func truncate(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > constants.MaxLoggedBodyBytes {
		return string(trimmed[:constants.MaxLoggedBodyBytes]) + "..."
	}

	return string(trimmed)
}

// leveledLogger adapts Logger to retryablehttp.LeveledLogger.
type leveledLogger struct {
	logger Logger
}

func (l *leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, fieldsFromPairs(keysAndValues))
}

func (l *leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, fieldsFromPairs(keysAndValues))
}

func (l *leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, fieldsFromPairs(keysAndValues))
}

func (l *leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, fieldsFromPairs(keysAndValues))
}

func fieldsFromPairs(keysAndValues []interface{}) map[string]interface{} {
	fields := make(map[string]interface{}, len(keysAndValues)/2)

	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = fmt.Sprint(keysAndValues[i])
		}

		fields[key] = keysAndValues[i+1]
	}

	return fields
}

package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avidbase/avidbase-go/internal/client"
	"github.com/avidbase/avidbase-go/internal/testserver"
	"github.com/avidbase/avidbase-go/pkg/avidbase"
)

const (
	testAccount = "acc-1"
	testAPIKey  = "key-1"
	tokenPath   = "/v1/account/acc-1/token"
	usersPath   = "/v1/user"
	authPath    = "/v1/auth"
)

// recordingLogger collects log records.
type recordingLogger struct {
	mutex   sync.Mutex
	records []map[string]interface{}
}

func (l *recordingLogger) add(level, msg string, fields map[string]interface{}) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	l.records = append(l.records, map[string]interface{}{"level": level, "msg": msg, "fields": fields})
}

func (l *recordingLogger) Debug(msg string, fields map[string]interface{}) {
	l.add("debug", msg, fields)
}

func (l *recordingLogger) Info(msg string, fields map[string]interface{}) {
	l.add("info", msg, fields)
}

func (l *recordingLogger) Warn(msg string, fields map[string]interface{}) {
	l.add("warn", msg, fields)
}

func (l *recordingLogger) Error(msg string, fields map[string]interface{}) {
	l.add("error", msg, fields)
}

func (l *recordingLogger) failures() []map[string]interface{} {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	var out []map[string]interface{}

	for _, record := range l.records {
		if record["msg"] == "Operation failed" {
			out = append(out, record)
		}
	}

	return out
}

func newClient(t *testing.T, baseURL string) *client.Client {
	t.Helper()

	c, err := client.New(&avidbase.Config{
		Account: testAccount,
		APIKey:  testAPIKey,
		BaseURL: baseURL,
	})
	require.NoError(t, err)

	return c
}

// deadURL returns the URL of a server that is no longer listening.
func deadURL() string {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	baseURL := server.URL
	server.Close()

	return baseURL
}

var sampleUser = avidbase.User{
	FirstName: "A",
	LastName:  "B",
	Email:     "a@b.com",
	Password:  "p",
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("requires config", func(t *testing.T) {
		t.Parallel()

		_, err := client.New(nil)
		require.ErrorIs(t, err, avidbase.ErrConfigRequired)
	})

	t.Run("requires account", func(t *testing.T) {
		t.Parallel()

		_, err := client.New(&avidbase.Config{APIKey: testAPIKey})
		require.ErrorIs(t, err, avidbase.ErrAccountRequired)
	})

	t.Run("requires API key", func(t *testing.T) {
		t.Parallel()

		_, err := client.New(&avidbase.Config{Account: testAccount})
		require.ErrorIs(t, err, avidbase.ErrAPIKeyRequired)
	})

	t.Run("defaults the base URL", func(t *testing.T) {
		t.Parallel()

		c, err := client.New(&avidbase.Config{Account: testAccount, APIKey: testAPIKey})
		require.NoError(t, err)
		assert.Equal(t, avidbase.DefaultBaseURL, c.BaseURL())
		assert.Equal(t, testAccount, c.Account())
	})

	t.Run("sends no request", func(t *testing.T) {
		t.Parallel()

		server := testserver.New(testserver.Behavior{MachineToken: "abc123"})
		defer server.Close()

		c := newClient(t, server.URL)
		assert.Empty(t, server.Requests())

		_, ok := c.MachineAccessToken()
		assert.False(t, ok)

		_, ok = c.GetUserAccessToken()
		assert.False(t, ok)
	})
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_TransportFailure(t *testing.T) {
	t.Parallel()

	logger := &recordingLogger{}

	c, err := client.New(&avidbase.Config{
		Account: testAccount,
		APIKey:  testAPIKey,
		BaseURL: deadURL(),
		Logger:  logger,
	})
	require.NoError(t, err)

	ctx := context.Background()

	assert.Nil(t, c.Login(ctx, "a@b.com", "p"))
	assert.Nil(t, c.ListUsers(ctx))
	assert.False(t, c.CreateUser(ctx, sampleUser))
	assert.False(t, c.UpdateUser(ctx, "user-1", sampleUser))

	_, ok := c.GetUserAccessToken()
	assert.False(t, ok)

	_, ok = c.MachineAccessToken()
	assert.False(t, ok)

	failures := logger.failures()
	require.Len(t, failures, 4)

	for _, record := range failures {
		assert.Equal(t, "warn", record["level"])
	}
}

func TestClient_NoMachineToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		behavior  testserver.Behavior
		operation func(*client.Client) bool
	}{
		{
			name:     "list users without token header",
			behavior: testserver.Behavior{},
			operation: func(c *client.Client) bool {
				return c.ListUsers(context.Background()) == nil
			},
		},
		{
			name:     "create user with rejected API key",
			behavior: testserver.Behavior{MachineToken: "abc123", APIKey: "other"},
			operation: func(c *client.Client) bool {
				return !c.CreateUser(context.Background(), sampleUser)
			},
		},
		{
			name:     "update user with token endpoint error",
			behavior: testserver.Behavior{MachineToken: "abc123", TokenStatus: http.StatusInternalServerError},
			operation: func(c *client.Client) bool {
				return !c.UpdateUser(context.Background(), "user-1", sampleUser)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := testserver.New(tt.behavior)
			defer server.Close()

			c := newClient(t, server.URL)

			assert.True(t, tt.operation(c))

			// Only the token request is sent
			requests := server.Requests()
			require.Len(t, requests, 1)
			assert.Equal(t, tokenPath, requests[0].Path)
		})
	}
}

func TestClient_MachineTokenPropagation(t *testing.T) {
	t.Parallel()

	server := testserver.New(testserver.Behavior{
		MachineToken: "abc123",
		APIKey:       testAPIKey,
		Users: []map[string]interface{}{
			{"id": "user-1", "email": "a@b.com"},
		},
	})
	defer server.Close()

	c := newClient(t, server.URL)

	users := c.ListUsers(context.Background())
	require.Len(t, users, 1)
	assert.Equal(t, "user-1", users[0].String("id"))

	token, ok := c.MachineAccessToken()
	assert.True(t, ok)
	assert.Equal(t, "abc123", token)

	tokenReq, found := server.Last(http.MethodPost, tokenPath)
	require.True(t, found)
	assert.Equal(t, map[string]interface{}{"api_key": testAPIKey}, tokenReq.JSON())

	listReq, found := server.Last(http.MethodGet, usersPath)
	require.True(t, found)
	assert.Equal(t, "abc123", listReq.Header.Get("Access-Token"))
	assert.Empty(t, listReq.Header.Get("Authorization"))
}

func TestClient_MachineTokenReuse(t *testing.T) {
	t.Parallel()

	server := testserver.New(testserver.Behavior{MachineToken: "abc123"})
	defer server.Close()

	c := newClient(t, server.URL)
	ctx := context.Background()

	assert.NotNil(t, c.ListUsers(ctx))
	assert.True(t, c.CreateUser(ctx, sampleUser))
	assert.True(t, c.UpdateUser(ctx, "user-1", sampleUser))
	assert.NotNil(t, c.ListUsers(ctx))

	assert.Equal(t, 1, server.Count(http.MethodPost, tokenPath))
	assert.Len(t, server.Requests(), 5)
}

func TestClient_StaleMachineToken(t *testing.T) {
	t.Parallel()

	server := testserver.New(testserver.Behavior{MachineToken: "first"})
	defer server.Close()

	c := newClient(t, server.URL)
	ctx := context.Background()

	require.NotNil(t, c.ListUsers(ctx))

	// The server stops accepting the cached token
	server.Update(func(b *testserver.Behavior) {
		b.MachineToken = "rotated"
	})

	assert.Nil(t, c.ListUsers(ctx))
	assert.False(t, c.CreateUser(ctx, sampleUser))
	assert.Nil(t, c.ListUsers(ctx))

	// The stale token is kept and never re-acquired
	token, ok := c.MachineAccessToken()
	assert.True(t, ok)
	assert.Equal(t, "first", token)
	assert.Equal(t, 1, server.Count(http.MethodPost, tokenPath))
}

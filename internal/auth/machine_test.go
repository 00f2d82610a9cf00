package auth_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avidbase/avidbase-go/internal/auth"
	avidhttp "github.com/avidbase/avidbase-go/internal/http"
	"github.com/avidbase/avidbase-go/internal/testserver"
	"github.com/avidbase/avidbase-go/pkg/avidbase"
)

const tokenPath = "/v1/account/acc-1/token"

func newManager(server *testserver.Server) *auth.MachineTokenManager {
	return auth.NewMachineTokenManager(avidhttp.NewClient(server.URL), "acc-1", "key-1")
}

func TestMachineTokenManager_Generate(t *testing.T) {
	t.Parallel()

	t.Run("stores the header value", func(t *testing.T) {
		t.Parallel()

		server := testserver.New(testserver.Behavior{MachineToken: "abc123", APIKey: "key-1"})
		defer server.Close()

		manager := newManager(server)

		token, err := manager.Generate(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "abc123", token)

		cached, ok := manager.Token()
		assert.True(t, ok)
		assert.Equal(t, "abc123", cached)

		req, found := server.Last(http.MethodPost, tokenPath)
		require.True(t, found)
		assert.Equal(t, map[string]interface{}{"api_key": "key-1"}, req.JSON())
	})

	t.Run("missing header", func(t *testing.T) {
		t.Parallel()

		server := testserver.New(testserver.Behavior{})
		defer server.Close()

		manager := newManager(server)

		_, err := manager.Generate(context.Background())
		require.ErrorIs(t, err, avidbase.ErrTokenHeaderMissing)

		_, ok := manager.Token()
		assert.False(t, ok)
	})

	t.Run("rejected API key", func(t *testing.T) {
		t.Parallel()

		server := testserver.New(testserver.Behavior{MachineToken: "abc123", APIKey: "other-key"})
		defer server.Close()

		manager := newManager(server)

		_, err := manager.Generate(context.Background())
		require.Error(t, err)
		assert.True(t, avidbase.IsUnauthorized(err))

		_, ok := manager.Token()
		assert.False(t, ok)
	})

	t.Run("failure keeps previous token", func(t *testing.T) {
		t.Parallel()

		server := testserver.New(testserver.Behavior{MachineToken: "first"})
		defer server.Close()

		manager := newManager(server)

		_, err := manager.Generate(context.Background())
		require.NoError(t, err)

		server.Update(func(b *testserver.Behavior) {
			b.TokenStatus = http.StatusServiceUnavailable
		})

		_, err = manager.Generate(context.Background())
		require.Error(t, err)

		cached, ok := manager.Token()
		assert.True(t, ok)
		assert.Equal(t, "first", cached)
	})

	t.Run("escapes the account", func(t *testing.T) {
		t.Parallel()

		server := testserver.New(testserver.Behavior{MachineToken: "abc123"})
		defer server.Close()

		manager := auth.NewMachineTokenManager(avidhttp.NewClient(server.URL), "acc 1", "key-1")

		_, err := manager.Generate(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, server.Count(http.MethodPost, "/v1/account/acc%201/token"))
	})
}

func TestMachineTokenManager_Ensure(t *testing.T) {
	t.Parallel()

	t.Run("second call sends no request", func(t *testing.T) {
		t.Parallel()

		server := testserver.New(testserver.Behavior{MachineToken: "abc123"})
		defer server.Close()

		manager := newManager(server)

		first, err := manager.Ensure(context.Background())
		require.NoError(t, err)

		second, err := manager.Ensure(context.Background())
		require.NoError(t, err)

		assert.Equal(t, "abc123", first)
		assert.Equal(t, first, second)
		assert.Len(t, server.Requests(), 1)
	})

	t.Run("failed generate is retried on next call", func(t *testing.T) {
		t.Parallel()

		server := testserver.New(testserver.Behavior{})
		defer server.Close()

		manager := newManager(server)

		_, err := manager.Ensure(context.Background())
		require.Error(t, err)

		server.Update(func(b *testserver.Behavior) {
			b.MachineToken = "late"
		})

		token, err := manager.Ensure(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "late", token)
		assert.Equal(t, 2, server.Count(http.MethodPost, tokenPath))
	})

	t.Run("cached token is never replaced", func(t *testing.T) {
		t.Parallel()

		server := testserver.New(testserver.Behavior{MachineToken: "first"})
		defer server.Close()

		manager := newManager(server)

		_, err := manager.Ensure(context.Background())
		require.NoError(t, err)

		server.Update(func(b *testserver.Behavior) {
			b.MachineToken = "rotated"
		})

		token, err := manager.Ensure(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "first", token)
		assert.Equal(t, 1, server.Count(http.MethodPost, tokenPath))
	})
}

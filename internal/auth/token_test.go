package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/avidbase/avidbase-go/internal/auth"
)

func TestToken_Valid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		token    *auth.Token
		expected bool
	}{
		{
			name:     "nil token",
			token:    nil,
			expected: false,
		},
		{
			name: "empty access token",
			token: &auth.Token{
				AccessToken: "",
			},
			expected: false,
		},
		{
			name: "token without obtained time",
			token: &auth.Token{
				AccessToken: "test-token",
			},
			expected: true,
		},
		{
			name: "old token is still valid",
			token: &auth.Token{
				AccessToken: "test-token",
				ObtainedAt:  time.Now().Add(-30 * 24 * time.Hour),
			},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, tt.token.Valid())
		})
	}
}

func TestTokenStore(t *testing.T) {
	t.Parallel()
	t.Run("new store is empty", testNewStoreEmpty)
	t.Run("set and get token", testSetAndGetToken)
	t.Run("clear token", testClearToken)
	t.Run("empty token is absent", testEmptyTokenAbsent)
	t.Run("concurrent access", testConcurrentTokenAccess)
}

func testNewStoreEmpty(t *testing.T) {
	t.Parallel()

	store := auth.NewTokenStore()
	assert.Nil(t, store.Get())

	token, ok := store.AccessToken()
	assert.False(t, ok)
	assert.Empty(t, token)
}

func testSetAndGetToken(t *testing.T) {
	t.Parallel()

	store := auth.NewTokenStore()
	obtained := time.Now()

	store.Set(&auth.Token{
		AccessToken: "test-token",
		ObtainedAt:  obtained,
	})

	retrieved := store.Get()
	assert.NotNil(t, retrieved)
	assert.Equal(t, "test-token", retrieved.AccessToken)
	assert.Equal(t, obtained, retrieved.ObtainedAt)

	token, ok := store.AccessToken()
	assert.True(t, ok)
	assert.Equal(t, "test-token", token)
}

func testClearToken(t *testing.T) {
	t.Parallel()

	store := auth.NewTokenStore()
	store.Set(&auth.Token{AccessToken: "test-token"})
	assert.NotNil(t, store.Get())

	store.Clear()
	assert.Nil(t, store.Get())
}

func testEmptyTokenAbsent(t *testing.T) {
	t.Parallel()

	store := auth.NewTokenStore()
	store.Set(&auth.Token{AccessToken: ""})

	_, ok := store.AccessToken()
	assert.False(t, ok)
}

func testConcurrentTokenAccess(t *testing.T) {
	t.Parallel()

	store := auth.NewTokenStore()
	done := make(chan bool)

	for _, value := range []string{"token-1", "token-2"} {
		go func() {
			for range 100 {
				store.Set(&auth.Token{AccessToken: value})
			}

			done <- true
		}()
	}

	for range 2 {
		go func() {
			for range 100 {
				_, _ = store.AccessToken()
			}

			done <- true
		}()
	}

	for range 4 {
		<-done
	}

	// Last writer wins
	finalToken := store.Get()
	assert.NotNil(t, finalToken)
	assert.True(t, finalToken.AccessToken == "token-1" || finalToken.AccessToken == "token-2")
}

// Package auth holds the access tokens used by the API client.
package auth

import (
	"sync"
	"time"
)

// Token is an access token issued by the API in the Access-Token header.
// The API does not report an expiry, so a stored token stays in use until it
// is replaced.
type Token struct {
	AccessToken string
	ObtainedAt  time.Time
}

// Valid reports whether the token carries a value. Expiry is not checked.
func (t *Token) Valid() bool {
	return t != nil && t.AccessToken != ""
}

// TokenStore holds an optional token. A nil token means none was obtained.
//
// The mutex only guards individual reads and writes. Callers that check for
// a token and then fetch one are not serialized, so two of them may both
// fetch; the last Set wins.
type TokenStore struct {
	mutex sync.RWMutex
	token *Token
}

// NewTokenStore creates an empty store.
func NewTokenStore() *TokenStore {
	return &TokenStore{}
}

// Get returns the stored token or nil.
func (s *TokenStore) Get() *Token {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.token
}

// Set replaces the stored token.
func (s *TokenStore) Set(token *Token) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.token = token
}

// Clear removes the stored token.
func (s *TokenStore) Clear() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.token = nil
}

// AccessToken returns the stored token value and whether one is present.
func (s *TokenStore) AccessToken() (string, bool) {
	token := s.Get()
	if !token.Valid() {
		return "", false
	}

	return token.AccessToken, true
}

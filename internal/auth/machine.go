package auth

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/avidbase/avidbase-go/internal/constants"
	"github.com/avidbase/avidbase-go/internal/http"
	"github.com/avidbase/avidbase-go/pkg/avidbase"
)

// tokenRequest is the body of the API key exchange.
type tokenRequest struct {
	APIKey string `json:"api_key"`
}

// MachineTokenManager obtains the machine access token by exchanging the
// account's API key, and caches it for the lifetime of the manager.
//
// A cached token is never re-validated or dropped, including after the API
// rejects it. Recovering from a stale token means building a new manager.
type MachineTokenManager struct {
	httpClient *http.Client
	account    string
	apiKey     string
	store      *TokenStore
	now        func() time.Time
}

// NewMachineTokenManager creates a manager that has no token yet.
func NewMachineTokenManager(httpClient *http.Client, account, apiKey string) *MachineTokenManager {
	return &MachineTokenManager{
		httpClient: httpClient,
		account:    account,
		apiKey:     apiKey,
		store:      NewTokenStore(),
		now:        time.Now,
	}
}

// Token returns the cached machine token, if any. It never sends a request.
func (m *MachineTokenManager) Token() (string, bool) {
	return m.store.AccessToken()
}

// Ensure makes sure a machine token is cached. A cached token is returned
// without a request; otherwise Generate is called once.
func (m *MachineTokenManager) Ensure(ctx context.Context) (string, error) {
	if token, ok := m.store.AccessToken(); ok {
		return token, nil
	}

	return m.Generate(ctx)
}

// Generate requests a new machine token. On any failure the cached token, if
// one exists, is left untouched.
func (m *MachineTokenManager) Generate(ctx context.Context) (string, error) {
	path := fmt.Sprintf(constants.APIPathAccountToken, url.PathEscape(m.account))

	resp, err := m.httpClient.Post(ctx, path, &tokenRequest{APIKey: m.apiKey})
	if err != nil {
		return "", fmt.Errorf("requesting machine token: %w", err)
	}

	token, ok := resp.Header(constants.HeaderAccessToken)
	if !ok {
		return "", fmt.Errorf("requesting machine token: %w", avidbase.ErrTokenHeaderMissing)
	}

	m.store.Set(&Token{AccessToken: token, ObtainedAt: m.now()})

	return token, nil
}

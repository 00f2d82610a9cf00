package client

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/avidbase/avidbase-go/internal/auth"
	"github.com/avidbase/avidbase-go/internal/constants"
	"github.com/avidbase/avidbase-go/pkg/avidbase"
)

// loginRequest is the body of an end-user login.
type loginRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	AccountUUID string `json:"account_uuid"`
}

// Login authenticates an end user. The result is nil unless the response
// carries an Access-Token header; in that case the token is kept for
// GetUserAccessToken and the decoded body is returned. The machine token is
// not involved.
func (c *Client) Login(ctx context.Context, email, password string) avidbase.AuthResult {
	result, err := c.login(ctx, email, password)
	if err != nil {
		c.report("login", err)

		return nil
	}

	return result
}

func (c *Client) login(ctx context.Context, email, password string) (avidbase.AuthResult, error) {
	resp, err := c.httpClient.Post(ctx, constants.APIPathAuth, &loginRequest{
		Email:       email,
		Password:    password,
		AccountUUID: c.account,
	})
	if err != nil {
		return nil, fmt.Errorf("logging in: %w", err)
	}

	token, ok := resp.Header(constants.HeaderAccessToken)
	if !ok {
		return nil, fmt.Errorf("logging in: %w", avidbase.ErrTokenHeaderMissing)
	}

	c.userToken.Set(&auth.Token{AccessToken: token, ObtainedAt: time.Now()})

	var result avidbase.AuthResult

	err = json.Unmarshal(resp.Body, &result)
	if err != nil {
		return nil, fmt.Errorf("decoding login response: %w: %w", avidbase.ErrUnexpectedPayload, err)
	}

	return result, nil
}

// GetUserAccessToken returns the token stored by the last successful Login.
// It never sends a request.
func (c *Client) GetUserAccessToken() (string, bool) {
	return c.userToken.AccessToken()
}

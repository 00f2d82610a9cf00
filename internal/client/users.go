package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/avidbase/avidbase-go/internal/constants"
	internalhttp "github.com/avidbase/avidbase-go/internal/http"
	"github.com/avidbase/avidbase-go/pkg/avidbase"
)

// ListUsers returns every user of the account. The result is nil when no
// machine token can be obtained, when the request fails, or when the status
// is anything but 200.
func (c *Client) ListUsers(ctx context.Context) []avidbase.AuthResult {
	users, err := c.listUsers(ctx)
	if err != nil {
		c.report("list_users", err)

		return nil
	}

	return users
}

// CreateUser creates a user. It reports true only for a 200 response.
func (c *Client) CreateUser(ctx context.Context, user avidbase.User) bool {
	err := c.saveUser(ctx, constants.APIPathUsers, user)
	if err != nil {
		c.report("create_user", err)

		return false
	}

	return true
}

// UpdateUser replaces the fields of an existing user. It reports true only for
// a 200 response.
func (c *Client) UpdateUser(ctx context.Context, userID string, user avidbase.User) bool {
	err := c.saveUser(ctx, fmt.Sprintf(constants.APIPathUser, url.PathEscape(userID)), user)
	if err != nil {
		c.report("update_user", err)

		return false
	}

	return true
}

func (c *Client) listUsers(ctx context.Context) ([]avidbase.AuthResult, error) {
	headers, err := c.machineHeaders(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(ctx, &internalhttp.Request{
		Method:  http.MethodGet,
		Path:    constants.APIPathUsers,
		Headers: headers,
	})
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}

	err = requireOK(resp.StatusCode)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}

	var users []avidbase.AuthResult

	err = json.Unmarshal(resp.Body, &users)
	if err != nil {
		return nil, fmt.Errorf("decoding users: %w: %w", avidbase.ErrUnexpectedPayload, err)
	}

	return users, nil
}

// saveUser posts user to path; create and update share the body and the
// success rule.
func (c *Client) saveUser(ctx context.Context, path string, user avidbase.User) error {
	headers, err := c.machineHeaders(ctx)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(ctx, &internalhttp.Request{
		Method:  http.MethodPost,
		Path:    path,
		Body:    &user,
		Headers: headers,
	})
	if err != nil {
		return fmt.Errorf("saving user: %w", err)
	}

	err = requireOK(resp.StatusCode)
	if err != nil {
		return fmt.Errorf("saving user: %w", err)
	}

	return nil
}

// machineHeaders ensures a machine token and returns the headers carrying it.
func (c *Client) machineHeaders(ctx context.Context) (map[string]string, error) {
	token, err := c.machineToken.Ensure(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", avidbase.ErrNoMachineToken, err)
	}

	return map[string]string{constants.HeaderAccessToken: token}, nil
}

// requireOK accepts exactly 200; other 2xx and 3xx codes are failures too.
func requireOK(statusCode int) error {
	if statusCode != constants.HTTPStatusOK {
		return fmt.Errorf("%w: %d", avidbase.ErrUnexpectedStatus, statusCode)
	}

	return nil
}

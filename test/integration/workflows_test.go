//go:build integration

package integration

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestWorkflow_CompleteUserJourney creates a user, finds it, logs in as it and
// updates it.
func TestWorkflow_CompleteUserJourney(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)

	runner := NewCommandRunner(config, t)

	email := GenerateTestEmail("workflow-user")
	password := "WorkflowPass123!"

	// 1. Create user
	stdout, stderr, err := runner.Run("users", "create",
		"--first-name", "Workflow",
		"--last-name", "User",
		"--email", email,
		"--password", password)
	require.NoError(t, err, "Failed to create user: %s", stderr)
	assert.Contains(t, stdout, email)

	// 2. Find the user with JSON output
	stdout, stderr, err = runner.Run("users", "list", "--output", "json")
	require.NoError(t, err, "Failed to list users: %s", stderr)
	AssertJSONOutput(t, stdout)

	user := FindUserByEmail(t, stdout, email)
	require.NotNil(t, user, "created user %s not listed", email)

	// 3. Log in as the new user
	stdout, stderr, err = runner.Run("login", "--email", email, "--password", password, "--output", "yaml")
	require.NoError(t, err, "Failed to log in: %s", stderr)
	AssertYAMLOutput(t, stdout)
	assert.Contains(t, stdout, "access_token")

	// 4. Update the user
	userID := fmt.Sprint(user["id"])
	stdout, stderr, err = runner.Run("users", "update", userID,
		"--first-name", "Updated",
		"--last-name", "User",
		"--email", email,
		"--password", password)
	require.NoError(t, err, "Failed to update user: %s", stderr)
	assert.Contains(t, stdout, userID)
}

// TestWorkflow_LoginRejected verifies wrong credentials exit non-zero.
func TestWorkflow_LoginRejected(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)

	runner := NewCommandRunner(config, t)

	_, stderr, err := runner.RunWithInput("not-the-password\n", "login", "--email", GenerateTestEmail("missing"))
	require.Error(t, err)
	assert.Contains(t, stderr, "login failed")
}

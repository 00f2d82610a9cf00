//go:build integration

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/google/uuid"
)

// TestConfig holds configuration for integration tests
type TestConfig struct {
	Account    string
	APIKey     string
	BaseURL    string
	BinaryPath string
	Verbose    bool
}

// LoadTestConfig loads configuration from environment variables
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		Account:    os.Getenv("AVIDBASE_ACCOUNT"),
		APIKey:     os.Getenv("AVIDBASE_API_KEY"),
		BaseURL:    os.Getenv("AVIDBASE_BASE_URL"),
		BinaryPath: getBinaryPath(),
		Verbose:    os.Getenv("AVIDBASE_VERBOSE") == "true",
	}
}

// getBinaryPath determines the path to the avidbase binary
func getBinaryPath() string {
	if path := os.Getenv("AVIDBASE_BINARY_PATH"); path != "" {
		return path
	}

	// Try common locations
	candidates := []string{
		"../../avidbase",
		"./avidbase",
		"../avidbase",
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return "avidbase" // Fallback to PATH
}

// SkipIfMissingConfig skips test if required config is missing
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if config.Account == "" || config.APIKey == "" {
		t.Skip("AVIDBASE_ACCOUNT or AVIDBASE_API_KEY not set, skipping integration test")
	}

	if _, err := exec.LookPath(config.BinaryPath); err != nil {
		t.Skipf("avidbase binary not found at %s, skipping integration test", config.BinaryPath)
	}
}

// CommandRunner provides utilities for running avidbase commands
type CommandRunner struct {
	config *TestConfig
	t      *testing.T
}

// NewCommandRunner creates a new command runner
func NewCommandRunner(config *TestConfig, t *testing.T) *CommandRunner {
	return &CommandRunner{
		config: config,
		t:      t,
	}
}

// Run executes an avidbase command and returns output. Credentials reach the
// binary through its AVIDBASE_ environment variables.
func (runner *CommandRunner) Run(args ...string) (stdout, stderr string, err error) {
	return runner.RunWithInput("", args...)
}

// RunWithInput executes an avidbase command with stdin input
func (runner *CommandRunner) RunWithInput(input string, args ...string) (stdout, stderr string, err error) {
	cmd := exec.Command(runner.config.BinaryPath, args...)

	var stdoutBuf, stderrBuf bytes.Buffer

	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf
	cmd.Stdin = strings.NewReader(input)

	if runner.config.Verbose {
		runner.t.Logf("Running: %s %s", runner.config.BinaryPath, strings.Join(args, " "))
	}

	err = cmd.Run()
	stdout = stdoutBuf.String()
	stderr = stderrBuf.String()

	if runner.config.Verbose && err != nil {
		runner.t.Logf("Command failed: %v\nStdout: %s\nStderr: %s", err, stdout, stderr)
	}

	return stdout, stderr, err
}

// GenerateTestEmail creates a unique address for a test user
func GenerateTestEmail(prefix string) string {
	return fmt.Sprintf("%s-%s@integration.test", prefix, uuid.NewString()[:8])
}

// FindUserByEmail returns the listed user with the given email.
func FindUserByEmail(t *testing.T, output, email string) map[string]interface{} {
	t.Helper()

	var users []map[string]interface{}

	if err := json.Unmarshal([]byte(output), &users); err != nil {
		t.Fatalf("Output is not a JSON user list: %v\n%s", err, output)
	}

	for _, user := range users {
		if user["email"] == email {
			return user
		}
	}

	return nil
}

// AssertJSONOutput verifies command output is valid JSON
func AssertJSONOutput(t *testing.T, output string) {
	t.Helper()

	if !json.Valid([]byte(strings.TrimSpace(output))) {
		t.Errorf("Output does not appear to be JSON: %s", output)
	}
}

// AssertYAMLOutput verifies command output is valid YAML
func AssertYAMLOutput(t *testing.T, output string) {
	t.Helper()

	output = strings.TrimSpace(output)
	if strings.Contains(output, "---") || strings.Contains(output, ":") {
		return // Looks like YAML
	}

	t.Errorf("Output does not appear to be YAML: %s", output)
}

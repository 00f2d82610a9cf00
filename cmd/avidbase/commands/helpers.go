package commands

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/avidbase/avidbase-go/internal/constants"
	"github.com/avidbase/avidbase-go/internal/logging"
	"github.com/avidbase/avidbase-go/pkg/avidbase"
	"github.com/avidbase/avidbase-go/pkg/avidclient"
)

// JSON formatting.
const defaultJSONIndent = 2

// createClient builds an API client from flags, environment and config file.
func createClient(cmd *cobra.Command) (avidbase.Client, error) {
	account := viper.GetString(keyAccount)
	if account == "" {
		return nil, constants.ErrNoAccount
	}

	apiKey := viper.GetString(keyAPIKey)
	if apiKey == "" {
		return nil, constants.ErrNoAPIKey
	}

	verbose := viper.GetBool(keyVerbose)

	client, err := avidclient.New(&avidbase.Config{
		Account: account,
		APIKey:  apiKey,
		BaseURL: viper.GetString(keyBaseURL),
		Debug:   verbose,
		Logger:  logging.New(cmd.ErrOrStderr(), false, verbose),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

// readPassword prompts for a secret without echo. Input that is not a
// terminal is read as a single line.
func readPassword(cmd *cobra.Command, prompt string) (string, error) {
	_, _ = fmt.Fprint(cmd.ErrOrStderr(), prompt)

	if file, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		password, err := term.ReadPassword(int(file.Fd()))

		_, _ = fmt.Fprintln(cmd.ErrOrStderr())

		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}

		return string(password), nil
	}

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	return strings.TrimRight(line, "\r\n"), nil
}

// encode writes value as JSON or YAML. It reports false for the table format
// so callers can render their own table.
func encode(w io.Writer, value interface{}) (bool, error) {
	switch viper.GetString(keyOutput) {
	case constants.FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", strings.Repeat(" ", defaultJSONIndent))

		err := encoder.Encode(value)
		if err != nil {
			return true, fmt.Errorf("encoding to JSON: %w", err)
		}

		return true, nil
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(w)
		defer func() { _ = encoder.Close() }()

		err := encoder.Encode(value)
		if err != nil {
			return true, fmt.Errorf("encoding to YAML: %w", err)
		}

		return true, nil
	default:
		return false, nil
	}
}

// renderProperties renders a two-column property table.
func renderProperties(w io.Writer, rows [][]string) error {
	table := tablewriter.NewWriter(w)
	table.Header("Property", "Value")

	for _, row := range rows {
		_ = table.Append(row)
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// resultRows turns a decoded payload into sorted property rows.
func resultRows(result avidbase.AuthResult) [][]string {
	keys := make([]string, 0, len(result))
	for key := range result {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	rows := make([][]string, 0, len(keys))
	for _, key := range keys {
		rows = append(rows, []string{key, formatValue(result[key])})
	}

	return rows
}

// formatValue renders a JSON value for a table cell.
func formatValue(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return constants.NotAvailable
	case string:
		return v
	case map[string]interface{}, []interface{}:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}

		return string(data)
	default:
		return fmt.Sprint(v)
	}
}

// maskSecret hides all but the last few characters of a secret.
func maskSecret(secret string) string {
	const visible = 4

	if len(secret) <= visible {
		return constants.MaskedSecret
	}

	return constants.MaskedSecret + secret[len(secret)-visible:]
}

func printSuccess(w io.Writer, format string, args ...interface{}) {
	_, _ = fmt.Fprintf(w, "%s %s\n", color.GreenString("OK"), fmt.Sprintf(format, args...))
}

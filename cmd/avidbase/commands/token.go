package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/avidbase/avidbase-go/internal/auth"
	"github.com/avidbase/avidbase-go/internal/constants"
)

// NewTokenCommand creates the token command group.
func NewTokenCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Inspect access tokens",
		Long:  "Commands for examining access tokens returned by the API",
	}

	cmd.AddCommand(newTokenInspectCommand())

	return cmd
}

// tokenInfo is the printable form of decoded claims.
type tokenInfo struct {
	Subject   string                 `json:"subject,omitempty"    yaml:"subject,omitempty"`
	Issuer    string                 `json:"issuer,omitempty"     yaml:"issuer,omitempty"`
	IssuedAt  *time.Time             `json:"issued_at,omitempty"  yaml:"issued_at,omitempty"`
	ExpiresAt *time.Time             `json:"expires_at,omitempty" yaml:"expires_at,omitempty"`
	Expired   bool                   `json:"expired"              yaml:"expired"`
	Claims    map[string]interface{} `json:"claims"               yaml:"claims"`
}

func newTokenInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect TOKEN",
		Short: "Decode the claims of a token",
		Long: `Decode the claims of a JWT-shaped access token without verifying its signature.

Tokens that are not JWTs are rejected; the API itself may issue opaque tokens.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			claims, err := auth.InspectToken(args[0])
			if err != nil {
				return fmt.Errorf("inspecting token: %w", err)
			}

			info := tokenInfo{
				Subject:   claims.Subject,
				Issuer:    claims.Issuer,
				IssuedAt:  claims.IssuedAt,
				ExpiresAt: claims.ExpiresAt,
				Expired:   claims.Expired(time.Now()),
				Claims:    claims.Raw,
			}
			out := cmd.OutOrStdout()

			done, err := encode(out, info)
			if done {
				return err
			}

			rows := [][]string{
				{"Subject", valueOrNA(claims.Subject)},
				{"Issuer", valueOrNA(claims.Issuer)},
				{"Issued At", timeOrNA(claims.IssuedAt)},
				{"Expires At", timeOrNA(claims.ExpiresAt)},
				{"Expired", strconv.FormatBool(info.Expired)},
			}

			return renderProperties(out, rows)
		},
	}
}

func valueOrNA(value string) string {
	if value == "" {
		return constants.NotAvailable
	}

	return value
}

func timeOrNA(value *time.Time) string {
	if value == nil {
		return constants.NotAvailable
	}

	return value.UTC().Format(time.RFC3339)
}

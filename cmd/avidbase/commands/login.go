package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/avidbase/avidbase-go/internal/constants"
)

// NewLoginCommand creates the login command
func NewLoginCommand() *cobra.Command {
	var (
		email     string
		password  string
		showToken bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate an end user",
		Long:  "Authenticate an end user of the account with email and password and print the login response",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				return constants.ErrEmailRequired
			}

			if password == "" {
				var err error

				password, err = readPassword(cmd, "Password: ")
				if err != nil {
					return err
				}
			}

			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			result := client.Login(cmd.Context(), email, password)
			if result == nil {
				return constants.ErrLoginFailed
			}

			token, _ := client.GetUserAccessToken()
			if !showToken {
				token = maskSecret(token)
			}

			out := cmd.OutOrStdout()

			done, err := encode(out, map[string]interface{}{
				"access_token": token,
				"result":       result,
			})
			if done {
				return err
			}

			printSuccess(out, "Logged in as %s", email)

			rows := append([][]string{{"Access Token", token}}, resultRows(result)...)

			err = renderProperties(out, rows)
			if err != nil {
				return fmt.Errorf("displaying login result: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "user email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "user password (prompted when omitted)")
	cmd.Flags().BoolVar(&showToken, "show-token", false, "print the full access token")

	return cmd
}

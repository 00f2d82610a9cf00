package commands

import (
	"fmt"
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/avidbase/avidbase-go/internal/constants"
	"github.com/avidbase/avidbase-go/pkg/avidbase"
)

// Columns shown first in the users table when present.
var preferredUserColumns = []string{"id", "first_name", "last_name", "email"}

// NewUsersCommand creates the users command group
func NewUsersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "users",
		Aliases: []string{"user"},
		Short:   "Manage users",
		Long:    "List, create and update the users of an Avidbase account",
	}

	cmd.AddCommand(newUsersListCommand())
	cmd.AddCommand(newUsersCreateCommand())
	cmd.AddCommand(newUsersUpdateCommand())

	return cmd
}

func newUsersListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List users",
		Long:    "List all users of the account",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			users := client.ListUsers(cmd.Context())
			if users == nil {
				return constants.ErrListUsersFailed
			}

			out := cmd.OutOrStdout()

			done, err := encode(out, users)
			if done {
				return err
			}

			if len(users) == 0 {
				_, _ = fmt.Fprintln(out, "No users found")

				return nil
			}

			columns := userColumns(users)

			header := make([]any, len(columns))
			for i, column := range columns {
				header[i] = column
			}

			table := tablewriter.NewWriter(out)
			table.Header(header...)

			for _, user := range users {
				row := make([]string, len(columns))
				for i, column := range columns {
					row[i] = formatValue(user[column])
				}

				_ = table.Append(row)
			}

			err = table.Render()
			if err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}

			return nil
		},
	}
}

// userColumns returns the preferred columns present in any user followed by
// the remaining keys in sorted order.
func userColumns(users []avidbase.AuthResult) []string {
	seen := map[string]bool{}

	for _, user := range users {
		for key := range user {
			seen[key] = true
		}
	}

	columns := make([]string, 0, len(seen))

	for _, column := range preferredUserColumns {
		if seen[column] {
			columns = append(columns, column)
			delete(seen, column)
		}
	}

	rest := make([]string, 0, len(seen))
	for key := range seen {
		rest = append(rest, key)
	}

	sort.Strings(rest)

	return append(columns, rest...)
}

// userFlags holds the fields shared by create and update.
type userFlags struct {
	user avidbase.User
}

func (f *userFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.user.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&f.user.LastName, "last-name", "", "last name")
	cmd.Flags().StringVarP(&f.user.Email, "email", "e", "", "email address")
	cmd.Flags().StringVarP(&f.user.Password, "password", "p", "", "password (prompted when omitted)")
}

func (f *userFlags) resolve(cmd *cobra.Command) (avidbase.User, error) {
	if f.user.Email == "" {
		return avidbase.User{}, constants.ErrEmailRequired
	}

	if f.user.Password == "" {
		password, err := readPassword(cmd, "Password: ")
		if err != nil {
			return avidbase.User{}, err
		}

		f.user.Password = password
	}

	return f.user, nil
}

func newUsersCreateCommand() *cobra.Command {
	flags := &userFlags{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user",
		Long:  "Create a new user in the account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := flags.resolve(cmd)
			if err != nil {
				return err
			}

			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			if !client.CreateUser(cmd.Context(), user) {
				return constants.ErrCreateUserFailed
			}

			printSuccess(cmd.OutOrStdout(), "Created user %s", user.Email)

			return nil
		},
	}

	flags.register(cmd)

	return cmd
}

func newUsersUpdateCommand() *cobra.Command {
	flags := &userFlags{}

	cmd := &cobra.Command{
		Use:   "update USER_ID",
		Short: "Update a user",
		Long:  "Replace the name, email and password of an existing user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID := args[0]
			if userID == "" {
				return constants.ErrUserIDRequired
			}

			user, err := flags.resolve(cmd)
			if err != nil {
				return err
			}

			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			if !client.UpdateUser(cmd.Context(), userID, user) {
				return constants.ErrUpdateUserFailed
			}

			printSuccess(cmd.OutOrStdout(), "Updated user %s", userID)

			return nil
		},
	}

	flags.register(cmd)

	return cmd
}

package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/avidbase/avidbase-go/internal/constants"
)

// Viper keys. Flags use dashes, keys use underscores so that AVIDBASE_API_KEY
// and api_key in the config file resolve to the same setting.
const (
	keyConfig  = "config"
	keyAccount = "account"
	keyAPIKey  = "api_key"
	keyBaseURL = "base_url"
	keyOutput  = "output"
	keyVerbose = "verbose"
	keyNoColor = "no_color"

	envPrefix      = "AVIDBASE"
	configDirName  = ".avidbase"
	configFileName = "config"
	configFileType = "yml"
)

// NewRootCommand creates the avidbase command tree.
func NewRootCommand(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "avidbase",
		Short: "Avidbase account and user management CLI",
		Long: `A command-line interface for the Avidbase API.

Authenticates end users and manages the users of an Avidbase account using
the account identifier and API key.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			initConfig()

			if viper.GetBool(keyNoColor) {
				color.NoColor = true
			}

			return validateOutput(viper.GetString(keyOutput))
		},
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "config file (default is $HOME/.avidbase/config.yml)")
	flags.String("account", "", "account identifier")
	flags.String("api-key", "", "account API key")
	flags.String("base-url", "", "API root URL")
	flags.StringP("output", "o", constants.FormatTable, "output format (table, json, yaml)")
	flags.BoolP("verbose", "v", false, "verbose output")
	flags.Bool("no-color", false, "disable colored output")

	// Bind flags to viper
	_ = viper.BindPFlag(keyConfig, flags.Lookup("config"))
	_ = viper.BindPFlag(keyAccount, flags.Lookup("account"))
	_ = viper.BindPFlag(keyAPIKey, flags.Lookup("api-key"))
	_ = viper.BindPFlag(keyBaseURL, flags.Lookup("base-url"))
	_ = viper.BindPFlag(keyOutput, flags.Lookup("output"))
	_ = viper.BindPFlag(keyVerbose, flags.Lookup("verbose"))
	_ = viper.BindPFlag(keyNoColor, flags.Lookup("no-color"))

	// Add commands
	rootCmd.AddCommand(NewVersionCommand(version, commit, date))
	rootCmd.AddCommand(NewLoginCommand())
	rootCmd.AddCommand(NewUsersCommand())
	rootCmd.AddCommand(NewTokenCommand())
	rootCmd.AddCommand(NewConfigCommand())

	return rootCmd
}

func initConfig() {
	cfgFile := viper.GetString(keyConfig)

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			// Search config in ~/.avidbase/config.yml
			viper.AddConfigPath(filepath.Join(home, configDirName))
			viper.SetConfigType(configFileType)
			viper.SetConfigName(configFileName)
		}
	}

	// Read in environment variables that match
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool(keyVerbose) {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}

func validateOutput(output string) error {
	switch output {
	case constants.FormatTable, constants.FormatJSON, constants.FormatYAML:
		return nil
	default:
		return fmt.Errorf("%w: %q", constants.ErrUnknownOutput, output)
	}
}

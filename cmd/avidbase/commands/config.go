package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/avidbase/avidbase-go/internal/constants"
)

// ErrUnknownConfigKey is returned for keys the config file does not hold.
var ErrUnknownConfigKey = errors.New("unknown configuration key")

// Config is the persisted CLI configuration.
type Config struct {
	Account string `json:"account,omitempty"  yaml:"account,omitempty"`
	APIKey  string `json:"api_key,omitempty"  yaml:"api_key,omitempty"`
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	Output  string `json:"output,omitempty"   yaml:"output,omitempty"`
}

// configKeys maps accepted key spellings to their canonical name.
var configKeys = map[string]string{
	"account":  keyAccount,
	"api_key":  keyAPIKey,
	"api-key":  keyAPIKey,
	"base_url": keyBaseURL,
	"base-url": keyBaseURL,
	"output":   keyOutput,
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Manage the account, API key and endpoint stored in the CLI config file",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the effective configuration with the API key masked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config := Config{
				Account: viper.GetString(keyAccount),
				APIKey:  viper.GetString(keyAPIKey),
				BaseURL: viper.GetString(keyBaseURL),
				Output:  viper.GetString(keyOutput),
			}

			if config.APIKey != "" {
				config.APIKey = maskSecret(config.APIKey)
			}

			out := cmd.OutOrStdout()

			done, err := encode(out, config)
			if done {
				return err
			}

			return renderProperties(out, [][]string{
				{"Config File", valueOrNA(configFilePath())},
				{"Account", valueOrNA(config.Account)},
				{"API Key", valueOrNA(config.APIKey)},
				{"Base URL", valueOrNA(config.BaseURL)},
				{"Output", valueOrNA(config.Output)},
			})
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Set account, api_key, base_url or output in the config file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateConfig(cmd, args[0], args[1])
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Unset a configuration value",
		Long:  "Remove account, api_key, base_url or output from the config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateConfig(cmd, args[0], "")
		},
	}
}

func updateConfig(cmd *cobra.Command, key, value string) error {
	canonical, ok := configKeys[strings.ToLower(key)]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownConfigKey, key)
	}

	if canonical == keyOutput && value != "" {
		err := validateOutput(value)
		if err != nil {
			return err
		}
	}

	path := configFilePath()

	config, err := readConfigFile(path)
	if err != nil {
		return err
	}

	switch canonical {
	case keyAccount:
		config.Account = value
	case keyAPIKey:
		config.APIKey = value
	case keyBaseURL:
		config.BaseURL = value
	case keyOutput:
		config.Output = value
	}

	err = writeConfigFile(path, config)
	if err != nil {
		return err
	}

	if value == "" {
		printSuccess(cmd.OutOrStdout(), "Unset %s", canonical)
	} else {
		printSuccess(cmd.OutOrStdout(), "Set %s", canonical)
	}

	return nil
}

// configFilePath returns the file named by --config, the file viper loaded,
// or $HOME/.avidbase/config.yml.
func configFilePath() string {
	if path := viper.GetString(keyConfig); path != "" {
		return path
	}

	if path := viper.ConfigFileUsed(); path != "" {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, configDirName, configFileName+"."+configFileType)
}

func readConfigFile(path string) (*Config, error) {
	config := &Config{}

	// path comes from the --config flag or the user's home directory
	// #nosec G304
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return config, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	err = yaml.Unmarshal(data, config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

func writeConfigFile(path string, config *Config) error {
	if path == "" {
		return fmt.Errorf("failed to locate config file: %w", os.ErrNotExist)
	}

	err := os.MkdirAll(filepath.Dir(path), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	err = os.WriteFile(path, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

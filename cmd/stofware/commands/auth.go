package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/stofloos/stofware-client-go/internal/constants"
)

// CLIConfig is the persisted CLI configuration file.
type CLIConfig struct {
	API   string `yaml:"api,omitempty"`
	Token string `yaml:"token,omitempty"`
}

// NewAuthCommand creates the auth command group.
func NewAuthCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage authentication",
		Long:  "Store the API endpoint and bearer token used by other commands",
	}

	cmd.AddCommand(newAuthSetTokenCommand())
	cmd.AddCommand(newAuthStatusCommand())

	return cmd
}

func newAuthSetTokenCommand() *cobra.Command {
	var tokenFlag string

	cmd := &cobra.Command{
		Use:   "set-token",
		Short: "Store a bearer token",
		Long:  "Store a bearer token in the config file. Prompts when --token is not given.",
		RunE: func(cmd *cobra.Command, args []string) error {
			token := tokenFlag
			if token == "" {
				_, _ = fmt.Fprint(os.Stderr, "Token: ")

				tokenBytes, err := term.ReadPassword(int(syscall.Stdin))

				_, _ = fmt.Fprintln(os.Stderr)

				if err != nil {
					return fmt.Errorf("failed to read token: %w", err)
				}

				token = strings.TrimSpace(string(tokenBytes))
			}

			config := CLIConfig{
				API:   viper.GetString("api"),
				Token: token,
			}

			path, err := saveCLIConfig(config)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(os.Stdout, "Token saved to %s\n", path)

			return nil
		},
	}

	cmd.Flags().StringVar(&tokenFlag, "token", "", "token value (omit to be prompted)")

	return cmd
}

func newAuthStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the effective authentication settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			api := viper.GetString("api")
			if api == "" {
				api = "(not set)"
			}

			tokenState := "not set"
			if viper.GetString("token") != "" {
				tokenState = "set"
			}

			_, _ = fmt.Fprintf(os.Stdout, "API:   %s\nToken: %s\n", api, tokenState)

			return nil
		},
	}
}

func saveCLIConfig(config CLIConfig) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}

	dir := filepath.Join(home, ".stofware")

	err = os.MkdirAll(dir, constants.ConfigDirPerm)
	if err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return "", fmt.Errorf("failed to encode config: %w", err)
	}

	path := filepath.Join(dir, "config.yml")

	err = os.WriteFile(path, data, constants.ConfigFilePerm)
	if err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return path, nil
}

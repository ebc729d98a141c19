package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/moshloop/py-trello/pkg/trello"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// storedConfig is the on-disk shape of ~/.trello/config.yml.
type storedConfig struct {
	Key   string `yaml:"key"`
	Token string `yaml:"token"`
}

// NewLoginCommand creates the login command
func NewLoginCommand() *cobra.Command {
	var (
		key   string
		token string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login to Trello",
		Long:  "Store a Trello API key and token and verify them against the API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if key == "" {
				key = viper.GetString("key")
			}

			if key == "" {
				reader := bufio.NewReader(os.Stdin)
				fmt.Print("API key: ")
				key, _ = reader.ReadString('\n')
				key = strings.TrimSpace(key)
			}

			if key == "" {
				return ErrAPIKeyRequired
			}

			if token == "" {
				token = viper.GetString("token")
			}

			if token == "" {
				fmt.Print("API token: ")

				byteToken, err := term.ReadPassword(int(syscall.Stdin))
				if err != nil {
					return fmt.Errorf("failed to read token: %w", err)
				}

				token = strings.TrimSpace(string(byteToken))

				fmt.Println()
			}

			client := trello.NewWithToken(key, token)

			// Verify the credentials before persisting them
			member, err := client.GetMember(context.Background(), "me")
			if err != nil {
				if trello.IsUnauthorized(err) {
					return fmt.Errorf("credentials rejected: %w", err)
				}

				return fmt.Errorf("failed to verify credentials: %w", err)
			}

			if err := saveStoredConfig(storedConfig{Key: key, Token: token}); err != nil {
				return err
			}

			fmt.Printf("Logged in as %s (%s)\n", member.Username, member.FullName)

			return nil
		},
	}

	cmd.Flags().StringVar(&key, "key", "", "Trello API key")
	cmd.Flags().StringVar(&token, "token", "", "Trello API token")

	return cmd
}

func saveStoredConfig(config storedConfig) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("finding home directory: %w", err)
	}

	configDir := filepath.Join(home, ".trello")
	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	path := filepath.Join(configDir, "config.yml")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

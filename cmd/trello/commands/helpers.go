package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/moshloop/py-trello/pkg/trello"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Common string constants used throughout the commands package.
const (
	// Output formats.
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"

	defaultYAMLIndent = 2

	Yes = "yes"
	No  = "no"
)

// Common static errors used throughout the commands package.
var (
	ErrAPIKeyRequired = errors.New("an API key is required (use --key, TRELLO_KEY, or run 'trello login')")
	ErrBoardNotFound  = errors.New("board not found")
	ErrListNotFound   = errors.New("list not found")
	ErrHookNotFound   = errors.New("hook not found")
)

// CreateClient builds an API client from the resolved configuration. The key
// must be present; a missing token leaves the client in public-only mode.
func CreateClient() (*trello.Client, error) {
	key := viper.GetString("key")
	if key == "" {
		return nil, ErrAPIKeyRequired
	}

	config := &trello.Config{
		Key:   key,
		Token: viper.GetString("token"),
	}

	if viper.GetBool("debug") {
		config.Debug = true
		config.Logger = stderrLogger{}
	}

	return trello.New(config), nil
}

// StandardJSONRenderer marshals data to stdout as indented JSON.
func StandardJSONRenderer[T any](data T) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding data to JSON: %w", err)
	}

	return nil
}

// StandardYAMLRenderer marshals data to stdout as YAML.
func StandardYAMLRenderer[T any](data T) error {
	encoder := yaml.NewEncoder(os.Stdout)
	encoder.SetIndent(defaultYAMLIndent)

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding data to YAML: %w", err)
	}

	return nil
}

// yesNo renders a boolean the way the table output expects.
func yesNo(value bool) string {
	if value {
		return Yes
	}

	return No
}

// stderrLogger writes debug lines to stderr so they never mix with rendered
// command output on stdout.
type stderrLogger struct{}

func (stderrLogger) Debug(msg string, fields map[string]interface{}) { logLine("DEBUG", msg, fields) }
func (stderrLogger) Info(msg string, fields map[string]interface{})  { logLine("INFO", msg, fields) }
func (stderrLogger) Warn(msg string, fields map[string]interface{})  { logLine("WARN", msg, fields) }
func (stderrLogger) Error(msg string, fields map[string]interface{}) { logLine("ERROR", msg, fields) }

func logLine(level, msg string, fields map[string]interface{}) {
	fmt.Fprintf(os.Stderr, "%s %s", level, msg)

	for key, value := range fields {
		fmt.Fprintf(os.Stderr, " %s=%v", key, value)
	}

	fmt.Fprintln(os.Stderr)
}

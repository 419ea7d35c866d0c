package commands

import (
	"encoding/json"
	"errors"
	"os"
	"time"

	"github.com/lmtk-io/lmtk/pkg/lmapi"
	"github.com/lmtk-io/lmtk/pkg/lmclient"
	"github.com/lmtk-io/lmtk/pkg/lmlog"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Common string constants used throughout the commands package.
const (
	NotAvailable = "N/A"

	// Output formats.
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"

	// JSON formatting.
	defaultJSONIndent = "  "
)

// Common static errors used throughout the commands package.
var (
	ErrAccountNameRequired = errors.New("account name is required (use --account or set LMTK_ACCOUNT)")
	ErrPathArgRequired     = errors.New("a resource path is required")
	ErrDeviceNotFound      = errors.New("device not found")
	ErrWebsiteNotFound     = errors.New("website not found")
	ErrCollectorNotFound   = errors.New("collector not found")
)

// CreateClient builds an API client from the resolved flag/env/config state.
func CreateClient() (lmapi.Client, error) {
	account := viper.GetString("account")
	if account == "" {
		return nil, ErrAccountNameRequired
	}

	config := &lmapi.Config{
		Account:         account,
		AccessID:        viper.GetString("access_id"),
		AccessKey:       viper.GetString("access_key"),
		CredentialsFile: viper.GetString("credentials_file"),
		Debug:           viper.GetBool("debug"),
		DryRun:          viper.GetBool("dry_run"),
	}

	if viper.GetBool("verbose") || config.Debug {
		level := lmlog.LogLevel(viper.GetString("log_level"))
		if config.Debug {
			level = lmlog.LevelDebug
		}

		logger := lmlog.Setup(lmlog.Config{Level: level, Pretty: true, Output: os.Stderr})
		config.Logger = lmlog.NewAdapter(logger)
	}

	return lmclient.New(config)
}

// StandardJSONRenderer encodes any value as indented JSON on stdout.
func StandardJSONRenderer(value interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", defaultJSONIndent)

	return encoder.Encode(value)
}

// StandardYAMLRenderer encodes any value as YAML on stdout.
func StandardYAMLRenderer(value interface{}) error {
	encoder := yaml.NewEncoder(os.Stdout)

	return encoder.Encode(value)
}

// formatEpochSeconds renders a second epoch, or N/A for zero.
func formatEpochSeconds(seconds int64) string {
	if seconds == 0 {
		return NotAvailable
	}

	return time.Unix(seconds, 0).UTC().Format(time.RFC3339)
}

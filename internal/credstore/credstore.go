// Package credstore reads the per-user credential store: a YAML file mapping
// tenant name to its API keypair.
//
//	acme:
//	  access_id: 9KquWn4Sh2hTTkp8kvDb
//	  access_key: 2H7Fy2K9wZpEGk6qMvR4
package credstore

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lmtk-io/lmtk/internal/constants"
	"github.com/lmtk-io/lmtk/pkg/lmapi"
	"gopkg.in/yaml.v3"
)

// DefaultPath returns the per-user store location, ~/.lmtk/credentials.yml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}

	return filepath.Join(home, constants.CredentialsDirName, constants.CredentialsFileName), nil
}

// Load reads the store at path (or the default location when path is empty).
// Absence of the file or the tenant entry is a fatal configuration error.
func Load(path string) (map[string]lmapi.Credentials, error) {
	if path == "" {
		var err error

		path, err = DefaultPath()
		if err != nil {
			return nil, configError(err)
		}
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, configError(fmt.Errorf("%w: %w", lmapi.ErrCredentialStoreUnread, err))
	}

	var store map[string]lmapi.Credentials

	err = yaml.Unmarshal(raw, &store)
	if err != nil {
		return nil, configError(fmt.Errorf("%w: %w", lmapi.ErrCredentialStoreUnread, err))
	}

	return store, nil
}

// Lookup loads the store and returns the keypair for one tenant.
func Lookup(path, account string) (lmapi.Credentials, error) {
	store, err := Load(path)
	if err != nil {
		return lmapi.Credentials{}, err
	}

	creds, ok := store[account]
	if !ok {
		return lmapi.Credentials{}, configError(fmt.Errorf("%w: %q", lmapi.ErrTenantNotInStore, account))
	}

	creds.Account = account

	return creds, nil
}

// Save writes the keypair for one tenant, creating the store and its
// directory when missing. The file stays owner-readable only.
func Save(path, account string, creds lmapi.Credentials) error {
	if path == "" {
		var err error

		path, err = DefaultPath()
		if err != nil {
			return configError(err)
		}
	}

	store := map[string]lmapi.Credentials{}

	raw, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(raw, &store); err != nil {
			return configError(fmt.Errorf("%w: %w", lmapi.ErrCredentialStoreUnread, err))
		}
	} else if !os.IsNotExist(err) {
		return configError(fmt.Errorf("%w: %w", lmapi.ErrCredentialStoreUnread, err))
	}

	creds.Account = ""
	store[account] = creds

	out, err := yaml.Marshal(store)
	if err != nil {
		return configError(fmt.Errorf("encoding credential store: %w", err))
	}

	err = os.MkdirAll(filepath.Dir(path), 0o700)
	if err != nil {
		return configError(fmt.Errorf("creating credential directory: %w", err))
	}

	err = os.WriteFile(path, out, 0o600)
	if err != nil {
		return configError(fmt.Errorf("writing credential store: %w", err))
	}

	return nil
}

func configError(err error) error {
	return &lmapi.Error{Kind: lmapi.ErrorKindConfig, Message: "credential store", Err: err}
}

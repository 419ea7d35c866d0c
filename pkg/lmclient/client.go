// Package lmclient provides the main entry point for creating monitoring API
// clients.
package lmclient

import (
	"strings"

	"github.com/lmtk-io/lmtk/internal/client"
	"github.com/lmtk-io/lmtk/pkg/lmapi"
)

// New creates a monitoring API client for one tenant. Credentials missing
// from the config are resolved once, at construction, from the per-user
// credential store.
func New(config *lmapi.Config) (lmapi.Client, error) {
	if config == nil {
		config = &lmapi.Config{}
	}

	if config.BaseURL != "" {
		baseURL := strings.TrimSuffix(config.BaseURL, "/")
		if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
			baseURL = "https://" + baseURL
		}

		config.BaseURL = baseURL
	}

	return client.New(config)
}

// NewForAccount creates a client for a tenant whose keypair lives in the
// credential store.
func NewForAccount(account string) (lmapi.Client, error) {
	return New(&lmapi.Config{Account: account})
}

// NewWithKeypair creates a client from an explicit keypair, bypassing the
// credential store.
func NewWithKeypair(account, accessID, accessKey string) (lmapi.Client, error) {
	return New(&lmapi.Config{
		Account:   account,
		AccessID:  accessID,
		AccessKey: accessKey,
	})
}

//go:build integration
// +build integration

package integration

import (
	"os"
	"testing"

	"github.com/lmtk-io/lmtk/pkg/lmapi"
	"github.com/lmtk-io/lmtk/pkg/lmclient"
)

// TestConfig holds configuration for integration tests run against a live
// tenant.
type TestConfig struct {
	Account   string
	AccessID  string
	AccessKey string
}

// LoadTestConfig reads the live-tenant configuration from the environment.
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		Account:   os.Getenv("LMTK_TEST_ACCOUNT"),
		AccessID:  os.Getenv("LMTK_TEST_ACCESS_ID"),
		AccessKey: os.Getenv("LMTK_TEST_ACCESS_KEY"),
	}
}

// SkipIfMissingConfig skips the test when the live tenant is not configured.
func (c *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if c.Account == "" || c.AccessID == "" || c.AccessKey == "" {
		t.Skip("Skipping integration test: set LMTK_TEST_ACCOUNT, LMTK_TEST_ACCESS_ID, LMTK_TEST_ACCESS_KEY")
	}
}

// NewClient builds a client against the configured live tenant.
func (c *TestConfig) NewClient(t *testing.T) lmapi.Client {
	t.Helper()

	client, err := lmclient.NewWithKeypair(c.Account, c.AccessID, c.AccessKey)
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	return client
}

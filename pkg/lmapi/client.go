package lmapi

import (
	"context"
	"time"
)

// Client is the public surface of the monitoring API client. All operations
// are synchronous and blocking; a single client instance keeps at most one
// request in flight at a time.
type Client interface {
	// GetAll accumulates a full collection across pages, in server order.
	// Any platform-level error mid-collection discards everything gathered
	// for this call and returns the typed error instead.
	GetAll(ctx context.Context, path string, opts *ListOptions) ([]Item, error)

	// GetOne fetches the first matching item, or nil when none matches.
	GetOne(ctx context.Context, path string, opts *ListOptions) (Item, error)

	// GetData fetches one non-paged time-series window. A window the
	// platform reports as having no data behind it yields (nil, nil).
	GetData(ctx context.Context, path string, opts *DataOptions) (Item, error)

	// Typed resource clients, all thin wrappers over the fetcher.
	Devices() DevicesClient
	Alerts() AlertsClient
	Websites() WebsitesClient
	Collectors() CollectorsClient
}

// Logger is the structured logging interface consumed by the HTTP layer.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Credentials is one tenant's API keypair.
type Credentials struct {
	Account   string `yaml:"account,omitempty"`
	AccessID  string `yaml:"access_id"`
	AccessKey string `yaml:"access_key"`
}

// Config configures one client instance. Each instance owns its own copy;
// there is no process-wide mutable state.
type Config struct {
	// Account is the tenant name. Required. The base URL is derived from it
	// unless BaseURL overrides the derivation.
	Account string

	// AccessID / AccessKey authenticate requests. When empty, the keypair is
	// looked up once, at construction, from the credential store under the
	// Account name.
	AccessID  string
	AccessKey string

	// CredentialsFile overrides the per-user credential store location.
	CredentialsFile string

	// BaseURL overrides the derived https://{account}.{platform}/{api-root}.
	BaseURL string

	// PageSize overrides the default collection page size of 50.
	PageSize int

	// RetryMax bounds retries of connection-layer failures; default 3.
	RetryMax int

	// RetryWaitMin / RetryWaitMax bound the backoff between transport
	// retries.
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration

	// HTTPTimeout is the per-request timeout; default 120s.
	HTTPTimeout time.Duration

	// DryRun suppresses network I/O for modifying requests (PUT/POST/PATCH):
	// the would-be request is logged and a synthetic success returned.
	DryRun bool

	// Debug enables request/response logging through Logger.
	Debug bool

	// Logger receives structured log events. Nil disables logging.
	Logger Logger

	// UserAgent overrides the default User-Agent header.
	UserAgent string
}

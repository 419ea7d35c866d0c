// Package constants centralizes defaults, header names, and platform error
// codes shared across the client layers.
package constants

import "time"

// Client defaults.
const (
	// DefaultPageSize is the window size used for paged collection fetches.
	DefaultPageSize = 50

	// DefaultRetryMax bounds retries of connection-layer failures.
	DefaultRetryMax = 3

	// DefaultRetryWaitMin is the minimum backoff between transport retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum backoff between transport retries.
	DefaultRetryWaitMax = 30 * time.Second

	// DefaultHTTPTimeout is the per-request timeout when the caller does not
	// bound the context itself.
	DefaultHTTPTimeout = 120 * time.Second

	// DefaultUserAgent identifies the client on the wire.
	DefaultUserAgent = "lmtk-go-client"
)

// Platform wire conventions.
const (
	// PlatformDomain is the tenant base-URL suffix.
	PlatformDomain = "logicmonitor.com"

	// APIRoot is the REST root under the tenant host.
	APIRoot = "/santaba/rest"

	// HeaderVersion carries the resolved protocol version when it is above 1.
	HeaderVersion = "X-version"

	// HeaderRateLimitRemaining is the requests-left-in-window header.
	HeaderRateLimitRemaining = "X-Rate-Limit-Remaining"

	// HeaderRateLimitWindow is the cooldown window, in seconds.
	HeaderRateLimitWindow = "X-Rate-Limit-Window"
)

// Platform error codes with dedicated handling. Both mean the requested
// datapoint window simply has no data behind it, so the data fetch reports
// an empty result rather than a failure.
const (
	ErrCodeDatapointNotInDatasource = 1007
	ErrCodeNoSuchDeviceDatasource   = 1069
)

// Credential store defaults.
const (
	// CredentialsDirName is the per-user directory under $HOME.
	CredentialsDirName = ".lmtk"

	// CredentialsFileName is the tenant → keypair store inside it.
	CredentialsFileName = "credentials.yml"
)

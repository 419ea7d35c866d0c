package lmapi

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failure returned by the client layer. Callers
// branch on the kind, never on message text.
type ErrorKind int

const (
	// ErrorKindUnknown is the zero value and never produced deliberately.
	ErrorKindUnknown ErrorKind = iota

	// ErrorKindConfig covers construction-time failures: missing or
	// unreadable credential store, unknown tenant, invalid options.
	ErrorKindConfig

	// ErrorKindClient covers 400/404 responses. Never retried.
	ErrorKindClient

	// ErrorKindRateLimited marks a 429 that could not be absorbed by the
	// rate-limit sleep (the context expired while waiting).
	ErrorKindRateLimited

	// ErrorKindTransport covers connection-layer failures that exhausted the
	// bounded retry budget.
	ErrorKindTransport

	// ErrorKindTimeout covers a request that produced no response before the
	// configured timeout elapsed.
	ErrorKindTimeout

	// ErrorKindServer covers any other non-success HTTP status.
	ErrorKindServer

	// ErrorKindProtocol covers a success status whose body does not parse as
	// the expected JSON shape, or a platform-level error inside a 2xx.
	ErrorKindProtocol
)

// String returns a short label for the kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrorKindConfig:
		return "config"
	case ErrorKindClient:
		return "client"
	case ErrorKindRateLimited:
		return "rate-limited"
	case ErrorKindTransport:
		return "transport"
	case ErrorKindTimeout:
		return "timeout"
	case ErrorKindServer:
		return "server"
	case ErrorKindProtocol:
		return "protocol"
	default:
		return "unknown"
	}
}

// Error is the typed result carried by every failure the client surfaces.
type Error struct {
	Kind ErrorKind

	// StatusCode is the HTTP status of the failing response, when one exists.
	StatusCode int

	// Code is the platform error code from the response envelope, when present.
	Code int

	// Message is the platform error message or a transport description.
	Message string

	// Err is the wrapped cause, when one exists.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Code != 0:
		return fmt.Sprintf("%s error: %s (code %d, http %d)", e.Kind, e.Message, e.Code, e.StatusCode)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s error: %s (http %d)", e.Kind, e.Message, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s error: %s: %v", e.Kind, e.Message, e.Err)
	default:
		return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
	}
}

// Unwrap exposes the cause for errors.Is / errors.As chains.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError builds a typed error of the given kind.
func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Static errors for construction and option validation.
var (
	ErrAccountRequired       = errors.New("account (tenant) name is required")
	ErrTenantNotInStore      = errors.New("tenant has no entry in the credential store")
	ErrCredentialStoreUnread = errors.New("credential store could not be read")
	ErrWindowInverted        = errors.New("window start is after window end")
	ErrWindowRequired        = errors.New("either a period or a start/end pair is required")
	ErrPathRequired          = errors.New("request path is required")
)

// KindOf returns the kind carried by err, or ErrorKindUnknown when err is
// not a client-layer error.
func KindOf(err error) ErrorKind {
	target := &Error{}
	if errors.As(err, &target) {
		return target.Kind
	}

	return ErrorKindUnknown
}

// IsConfig checks whether err is a construction/configuration failure.
func IsConfig(err error) bool {
	return KindOf(err) == ErrorKindConfig
}

// IsClient checks whether err is a 400/404-class failure.
func IsClient(err error) bool {
	return KindOf(err) == ErrorKindClient
}

// IsServer checks whether err is a non-retried server failure.
func IsServer(err error) bool {
	return KindOf(err) == ErrorKindServer
}

// IsTransport checks whether err exhausted the transport retry budget.
func IsTransport(err error) bool {
	return KindOf(err) == ErrorKindTransport
}

// IsTimeout checks whether err is a no-response timeout.
func IsTimeout(err error) bool {
	return KindOf(err) == ErrorKindTimeout
}

// IsProtocol checks whether err is an unparseable or platform-rejected body.
func IsProtocol(err error) bool {
	return KindOf(err) == ErrorKindProtocol
}

// IsRateLimited checks whether err is an unabsorbed rate limit.
func IsRateLimited(err error) bool {
	return KindOf(err) == ErrorKindRateLimited
}

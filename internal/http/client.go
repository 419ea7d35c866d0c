// Package http implements the request executor: it signs, sends, classifies,
// and retries single HTTP requests against the monitoring platform.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	nethttp "net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/lmtk-io/lmtk/internal/auth"
	"github.com/lmtk-io/lmtk/internal/constants"
	"github.com/lmtk-io/lmtk/pkg/lmapi"
)

// Request is one API request to execute.
type Request struct {
	Method string
	Path   string

	// Query holds at most one value per key.
	Query url.Values

	// Body is marshaled to JSON when non-nil.
	Body interface{}

	// Version is the resolved protocol version; 0 resolves from Path. Once
	// resolved it is used consistently for signing, headers, and envelope
	// interpretation of this one call.
	Version int

	// Raw keeps the raw body text on the response.
	Raw bool

	Headers map[string]string
}

// Modifies reports whether the request mutates the resource.
func (r *Request) Modifies() bool {
	switch r.Method {
	case nethttp.MethodPut, nethttp.MethodPost, nethttp.MethodPatch:
		return true
	default:
		return false
	}
}

// Response is one classified API response.
type Response struct {
	StatusCode int
	Headers    nethttp.Header
	Body       []byte

	// Raw is the body text, kept only when the request asked for it.
	Raw string

	// Envelope is the parsed platform wrapper.
	Envelope *lmapi.Envelope

	// Version is the protocol version the call was executed under.
	Version int

	// DryRun marks a synthetic success for a suppressed modifying request.
	DryRun bool
}

// Option configures the client.
type Option func(*Client)

// WithLogger sets the structured logger.
func WithLogger(logger lmapi.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithDryRun suppresses network I/O for modifying requests.
func WithDryRun(dryRun bool) Option {
	return func(c *Client) {
		c.dryRun = dryRun
	}
}

// WithRetryConfig tunes the bounded transport retry policy.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.rc.RetryMax = retryMax
		c.rc.RetryWaitMin = waitMin
		c.rc.RetryWaitMax = waitMax
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.rc.HTTPClient.Timeout = timeout
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// Client executes signed requests against one tenant's API. Execution is
// synchronous: one request in flight at a time, and the rate-limit sleep
// blocks the calling goroutine.
type Client struct {
	baseURL   string
	basePath  string
	creds     lmapi.Credentials
	rc        *retryablehttp.Client
	logger    lmapi.Logger
	debug     bool
	dryRun    bool
	userAgent string

	// sleep is swapped out in tests.
	sleep func(time.Duration)
}

// NewClient builds an executor for the given base URL and keypair.
func NewClient(baseURL string, creds lmapi.Credentials, opts ...Option) *Client {
	client := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		creds:     creds,
		userAgent: constants.DefaultUserAgent,
		sleep:     time.Sleep,
	}

	if parsed, err := url.Parse(client.baseURL); err == nil {
		client.basePath = parsed.Path
	}

	rc := retryablehttp.NewClient()
	rc.Logger = nil
	rc.RetryMax = constants.DefaultRetryMax
	rc.RetryWaitMin = constants.DefaultRetryWaitMin
	rc.RetryWaitMax = constants.DefaultRetryWaitMax
	rc.HTTPClient.Timeout = constants.DefaultHTTPTimeout

	// Retry only connection-layer failures. Status-code handling, including
	// the rate-limit loop, belongs to Do.
	rc.CheckRetry = func(ctx context.Context, resp *nethttp.Response, err error) (bool, error) {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}

		if err != nil && !errors.Is(err, context.DeadlineExceeded) {
			return true, nil
		}

		return false, nil
	}

	// Every retry attempt gets a fresh signature: the token binds to the
	// wall clock and must stay inside the server's acceptance window.
	rc.PrepareRetry = func(req *nethttp.Request) error {
		lmTransportRetriesTotal.Inc()

		return client.signRequest(req)
	}

	client.rc = rc

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// signRequest recomputes the Authorization header from the request itself,
// with a fresh timestamp.
func (c *Client) signRequest(req *nethttp.Request) error {
	var body []byte

	if req.GetBody != nil {
		reader, err := req.GetBody()
		if err != nil {
			return fmt.Errorf("rewinding request body for signing: %w", err)
		}

		body, err = io.ReadAll(reader)
		if err != nil {
			return fmt.Errorf("reading request body for signing: %w", err)
		}
	}

	path := strings.TrimPrefix(req.URL.Path, c.basePath)
	req.Header.Set("Authorization", auth.Token(req.Method, path, body, c.creds.AccessID, c.creds.AccessKey))

	return nil
}

// Do executes one request and classifies the outcome. Rate limiting is
// absorbed by sleeping out the advertised window and reissuing with a fresh
// signature; connection failures are retried a bounded number of times by
// the underlying transport; everything else maps onto the error taxonomy.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	if req.Path == "" {
		return nil, &lmapi.Error{Kind: lmapi.ErrorKindConfig, Message: "request path", Err: lmapi.ErrPathRequired}
	}

	version := lmapi.ResolveVersion(req.Path, req.Version)

	if c.dryRun && req.Modifies() {
		return c.dryRunResponse(req, version), nil
	}

	var bodyBytes []byte

	if req.Body != nil {
		var err error

		bodyBytes, err = json.Marshal(req.Body)
		if err != nil {
			return nil, &lmapi.Error{Kind: lmapi.ErrorKindConfig, Message: "encoding request body", Err: err}
		}
	}

	for {
		resp, err := c.attempt(ctx, req, version, bodyBytes)
		if err != nil {
			lmErrorsTotal.WithLabelValues(lmapi.KindOf(err).String()).Inc()

			return nil, err
		}

		if resp.StatusCode == nethttp.StatusTooManyRequests {
			window, limited := rateLimitWindow(resp.Headers)
			if limited {
				if waitErr := c.waitOutRateLimit(ctx, req, window); waitErr != nil {
					lmErrorsTotal.WithLabelValues(lmapi.ErrorKindRateLimited.String()).Inc()

					return nil, waitErr
				}

				continue
			}
		}

		result, err := c.classify(req, version, resp)
		if err != nil {
			lmErrorsTotal.WithLabelValues(lmapi.KindOf(err).String()).Inc()
		}

		return result, err
	}
}

// rawResult is one wire-level exchange before classification.
type rawResult struct {
	StatusCode int
	Status     string
	Headers    nethttp.Header
	Body       []byte
}

// attempt issues the request once (plus transport-level retries) and reads
// the body.
func (c *Client) attempt(ctx context.Context, req *Request, version int, body []byte) (*rawResult, error) {
	target := c.baseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var rawBody interface{}
	if body != nil {
		rawBody = body
	}

	rreq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, target, rawBody)
	if err != nil {
		return nil, &lmapi.Error{Kind: lmapi.ErrorKindConfig, Message: "building request", Err: err}
	}

	rreq.Header.Set("Accept", "application/json")
	rreq.Header.Set("User-Agent", c.userAgent)

	if body != nil {
		rreq.Header.Set("Content-Type", "application/json")
	}

	if version > 1 {
		rreq.Header.Set(constants.HeaderVersion, strconv.Itoa(version))
	}

	for key, value := range req.Headers {
		rreq.Header.Set(key, value)
	}

	if err := c.signRequest(rreq.Request); err != nil {
		return nil, &lmapi.Error{Kind: lmapi.ErrorKindConfig, Message: "signing request", Err: err}
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method":  req.Method,
			"url":     target,
			"version": version,
		})
	}

	start := time.Now()

	resp, err := c.rc.Do(rreq)

	lmRequestDuration.WithLabelValues(req.Method).Observe(time.Since(start).Seconds())

	if err != nil {
		lmRequestsTotal.WithLabelValues(req.Method, "error").Inc()

		return nil, classifyTransportError(err)
	}

	defer func() { _ = resp.Body.Close() }()

	lmRequestsTotal.WithLabelValues(req.Method, strconv.Itoa(resp.StatusCode)).Inc()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &lmapi.Error{Kind: lmapi.ErrorKindTransport, Message: "reading response body", Err: err}
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"method": req.Method,
			"url":    target,
			"status": resp.StatusCode,
			"bytes":  len(payload),
		})
	}

	return &rawResult{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Headers:    resp.Header,
		Body:       payload,
	}, nil
}

// classify maps one exchange onto the response/error model.
func (c *Client) classify(req *Request, version int, raw *rawResult) (*Response, error) {
	switch {
	case raw.StatusCode >= 200 && raw.StatusCode < 300:
		env, err := lmapi.ParseEnvelope(raw.Body)
		if err != nil {
			return nil, &lmapi.Error{
				Kind:       lmapi.ErrorKindProtocol,
				StatusCode: raw.StatusCode,
				Message:    "unparseable response body",
				Err:        err,
			}
		}

		// The version-1 wrapper is not emitted by every endpoint; fill the
		// platform status in from the HTTP layer so callers can rely on it.
		if version <= 1 && !env.HasStatus {
			env.Status = raw.StatusCode
		}

		resp := &Response{
			StatusCode: raw.StatusCode,
			Headers:    raw.Headers,
			Body:       raw.Body,
			Envelope:   env,
			Version:    version,
		}

		if req.Raw {
			resp.Raw = string(raw.Body)
		}

		return resp, nil

	case raw.StatusCode == nethttp.StatusBadRequest || raw.StatusCode == nethttp.StatusNotFound:
		apiErr := &lmapi.Error{
			Kind:       lmapi.ErrorKindClient,
			StatusCode: raw.StatusCode,
			Message:    raw.Status,
		}

		if env, err := lmapi.ParseEnvelope(raw.Body); err == nil {
			if env.Message != "" {
				apiErr.Message = env.Message
			}

			apiErr.Code = env.ErrorCode
		}

		return nil, apiErr

	default:
		return nil, &lmapi.Error{
			Kind:       lmapi.ErrorKindServer,
			StatusCode: raw.StatusCode,
			Message:    raw.Status,
		}
	}
}

// rateLimitWindow reads the cooldown window from a 429 response. The window
// applies only when the remaining-request budget is exhausted and the server
// advertised a window length.
func rateLimitWindow(headers nethttp.Header) (time.Duration, bool) {
	if headers.Get(constants.HeaderRateLimitRemaining) != "0" {
		return 0, false
	}

	seconds, err := strconv.Atoi(headers.Get(constants.HeaderRateLimitWindow))
	if err != nil || seconds <= 0 {
		return 0, false
	}

	return time.Duration(seconds) * time.Second, true
}

// waitOutRateLimit sleeps for the advertised window. The reissue afterwards
// re-signs with a fresh timestamp, so there is no attempt cap here: the
// server controls how long the client stays parked.
func (c *Client) waitOutRateLimit(ctx context.Context, req *Request, window time.Duration) error {
	if c.logger != nil {
		c.logger.Warn("rate limited, sleeping out window", map[string]interface{}{
			"method": req.Method,
			"path":   req.Path,
			"window": window.String(),
		})
	}

	lmRateLimitSleepsTotal.Inc()
	lmRateLimitSleepSeconds.Observe(window.Seconds())

	c.sleep(window)

	if ctx.Err() != nil {
		return &lmapi.Error{Kind: lmapi.ErrorKindRateLimited, Message: "rate limit never lifted", Err: ctx.Err()}
	}

	return nil
}

// dryRunResponse emits the description of the suppressed request and
// synthesizes a success.
func (c *Client) dryRunResponse(req *Request, version int) *Response {
	lmDryRunsTotal.Inc()

	if c.logger != nil {
		c.logger.Info("dry run: request suppressed", map[string]interface{}{
			"method":  req.Method,
			"path":    req.Path,
			"query":   req.Query.Encode(),
			"version": version,
			"body":    fmt.Sprintf("%v", req.Body),
		})
	}

	return &Response{
		StatusCode: nethttp.StatusOK,
		Envelope:   &lmapi.Envelope{Status: nethttp.StatusOK, Message: "OK"},
		Version:    version,
		DryRun:     true,
	}
}

// classifyTransportError separates timeouts (no response at all) from
// connection failures that exhausted the retry budget.
func classifyTransportError(err error) error {
	var netErr net.Error

	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &lmapi.Error{Kind: lmapi.ErrorKindTimeout, Message: "request timed out", Err: err}
	}

	return &lmapi.Error{Kind: lmapi.ErrorKindTransport, Message: "transport failure", Err: err}
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodGet, Path: path, Query: query})
}

// Post issues a POST request.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodPost, Path: path, Body: body})
}

// Put issues a PUT request.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodPut, Path: path, Body: body})
}

// Patch issues a PATCH request.
func (c *Client) Patch(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodPatch, Path: path, Body: body})
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodDelete, Path: path})
}

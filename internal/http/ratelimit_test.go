package http

import (
	"context"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lmtk-io/lmtk/pkg/lmapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests live inside the package so they can swap the sleeper out and
// observe the rate-limit loop without waiting out real windows.

func TestDo_RateLimitSleepAndRetry(t *testing.T) {
	t.Parallel()

	var (
		attempts int
		auths    []string
	)

	server := httptest.NewServer(nethttp.HandlerFunc(func(writer nethttp.ResponseWriter, request *nethttp.Request) {
		attempts++

		auths = append(auths, request.Header.Get("Authorization"))

		if attempts == 1 {
			writer.Header().Set("X-Rate-Limit-Remaining", "0")
			writer.Header().Set("X-Rate-Limit-Window", "5")
			writer.WriteHeader(nethttp.StatusTooManyRequests)

			return
		}

		_, _ = writer.Write([]byte(`{"status":200,"data":{"items":[{"id":1}]}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, lmapi.Credentials{AccessID: "id", AccessKey: "key"})

	var slept []time.Duration

	client.sleep = func(d time.Duration) {
		slept = append(slept, d)
	}

	resp, err := client.Get(context.Background(), "/device/devices", nil)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	// Exactly one sleep, for exactly the advertised window.
	require.Equal(t, []time.Duration{5 * time.Second}, slept)

	// The request was reissued and signed on both attempts.
	require.Equal(t, 2, attempts)
	assert.Regexp(t, `^LMv1 id:[A-Za-z0-9+/=]+:\d+$`, auths[0])
	assert.Regexp(t, `^LMv1 id:[A-Za-z0-9+/=]+:\d+$`, auths[1])
}

func TestDo_RateLimitRetriesIndefinitely(t *testing.T) {
	t.Parallel()

	attempts := 0

	server := httptest.NewServer(nethttp.HandlerFunc(func(writer nethttp.ResponseWriter, request *nethttp.Request) {
		attempts++

		if attempts <= 7 {
			writer.Header().Set("X-Rate-Limit-Remaining", "0")
			writer.Header().Set("X-Rate-Limit-Window", "1")
			writer.WriteHeader(nethttp.StatusTooManyRequests)

			return
		}

		_, _ = writer.Write([]byte(`{"status":200,"data":{}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, lmapi.Credentials{AccessID: "id", AccessKey: "key"})
	client.sleep = func(time.Duration) {}

	resp, err := client.Get(context.Background(), "/device/devices", nil)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	// Well past the transport retry cap of 3.
	assert.Equal(t, 8, attempts)
}

func TestDo_RateLimitWithoutWindowIsServerError(t *testing.T) {
	t.Parallel()

	attempts := 0

	server := httptest.NewServer(nethttp.HandlerFunc(func(writer nethttp.ResponseWriter, request *nethttp.Request) {
		attempts++

		writer.WriteHeader(nethttp.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(server.URL, lmapi.Credentials{AccessID: "id", AccessKey: "key"})

	_, err := client.Get(context.Background(), "/device/devices", nil)
	require.Error(t, err)
	assert.True(t, lmapi.IsServer(err))
	assert.Equal(t, 1, attempts)
}

func TestDo_RateLimitCancelledContext(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(writer nethttp.ResponseWriter, request *nethttp.Request) {
		writer.Header().Set("X-Rate-Limit-Remaining", "0")
		writer.Header().Set("X-Rate-Limit-Window", "30")
		writer.WriteHeader(nethttp.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(server.URL, lmapi.Credentials{AccessID: "id", AccessKey: "key"})

	ctx, cancel := context.WithCancel(context.Background())
	client.sleep = func(time.Duration) { cancel() }

	_, err := client.Get(ctx, "/device/devices", nil)
	require.Error(t, err)
	assert.True(t, lmapi.IsRateLimited(err))
}

func TestRateLimitWindow(t *testing.T) {
	t.Parallel()

	headers := nethttp.Header{}
	headers.Set("X-Rate-Limit-Remaining", "0")
	headers.Set("X-Rate-Limit-Window", "5")

	window, limited := rateLimitWindow(headers)
	assert.True(t, limited)
	assert.Equal(t, 5*time.Second, window)

	// Remaining budget means no mandated sleep.
	headers.Set("X-Rate-Limit-Remaining", "3")
	_, limited = rateLimitWindow(headers)
	assert.False(t, limited)

	// Missing or unusable window means no mandated sleep.
	headers.Set("X-Rate-Limit-Remaining", "0")
	headers.Del("X-Rate-Limit-Window")
	_, limited = rateLimitWindow(headers)
	assert.False(t, limited)
}

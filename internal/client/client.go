// Package client implements the concrete API client: credential resolution,
// the paged collection fetcher, and the typed resource clients.
package client

import (
	"fmt"

	"github.com/lmtk-io/lmtk/internal/constants"
	"github.com/lmtk-io/lmtk/internal/credstore"
	lmhttp "github.com/lmtk-io/lmtk/internal/http"
	"github.com/lmtk-io/lmtk/pkg/lmapi"
)

// Client implements the lmapi.Client interface.
type Client struct {
	httpClient *lmhttp.Client
	pageSize   int
	logger     lmapi.Logger

	devices    lmapi.DevicesClient
	alerts     lmapi.AlertsClient
	websites   lmapi.WebsitesClient
	collectors lmapi.CollectorsClient
}

var _ lmapi.Client = (*Client)(nil)

// New builds a client for one tenant. The keypair is taken from the config
// when set, otherwise looked up once from the credential store; the store
// is never consulted again for the client's lifetime.
func New(config *lmapi.Config) (*Client, error) {
	if config == nil || (config.Account == "" && config.BaseURL == "") {
		return nil, &lmapi.Error{Kind: lmapi.ErrorKindConfig, Message: "client construction", Err: lmapi.ErrAccountRequired}
	}

	creds := lmapi.Credentials{
		Account:   config.Account,
		AccessID:  config.AccessID,
		AccessKey: config.AccessKey,
	}

	if creds.AccessID == "" || creds.AccessKey == "" {
		looked, err := credstore.Lookup(config.CredentialsFile, config.Account)
		if err != nil {
			return nil, err
		}

		creds = looked
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.%s%s", config.Account, constants.PlatformDomain, constants.APIRoot)
	}

	pageSize := config.PageSize
	if pageSize <= 0 {
		pageSize = constants.DefaultPageSize
	}

	client := &Client{
		httpClient: lmhttp.NewClient(baseURL, creds, httpOptions(config)...),
		pageSize:   pageSize,
		logger:     config.Logger,
	}

	client.devices = &DevicesClient{client: client}
	client.alerts = &AlertsClient{client: client}
	client.websites = &WebsitesClient{client: client}
	client.collectors = &CollectorsClient{client: client}

	return client, nil
}

// httpOptions maps the public config onto executor options.
func httpOptions(config *lmapi.Config) []lmhttp.Option {
	var opts []lmhttp.Option

	if config.Logger != nil {
		opts = append(opts, lmhttp.WithLogger(config.Logger))
	}

	if config.Debug {
		opts = append(opts, lmhttp.WithDebug(true))
	}

	if config.DryRun {
		opts = append(opts, lmhttp.WithDryRun(true))
	}

	if config.UserAgent != "" {
		opts = append(opts, lmhttp.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		opts = append(opts, lmhttp.WithTimeout(config.HTTPTimeout))
	}

	if config.RetryMax > 0 {
		waitMin := constants.DefaultRetryWaitMin
		waitMax := constants.DefaultRetryWaitMax

		if config.RetryWaitMin > 0 {
			waitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			waitMax = config.RetryWaitMax
		}

		opts = append(opts, lmhttp.WithRetryConfig(config.RetryMax, waitMin, waitMax))
	}

	return opts
}

// HTTP exposes the executor for raw access (used by the CLI's get command).
func (c *Client) HTTP() *lmhttp.Client {
	return c.httpClient
}

// Devices implements lmapi.Client.Devices.
func (c *Client) Devices() lmapi.DevicesClient {
	return c.devices
}

// Alerts implements lmapi.Client.Alerts.
func (c *Client) Alerts() lmapi.AlertsClient {
	return c.alerts
}

// Websites implements lmapi.Client.Websites.
func (c *Client) Websites() lmapi.WebsitesClient {
	return c.websites
}

// Collectors implements lmapi.Client.Collectors.
func (c *Client) Collectors() lmapi.CollectorsClient {
	return c.collectors
}

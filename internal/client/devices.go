package client

import (
	"context"
	"fmt"
	nethttp "net/http"

	lmhttp "github.com/lmtk-io/lmtk/internal/http"
	"github.com/lmtk-io/lmtk/pkg/lmapi"
)

// DevicesClient implements lmapi.DevicesClient.
type DevicesClient struct {
	client *Client
}

// List implements lmapi.DevicesClient.List.
func (c *DevicesClient) List(ctx context.Context, opts *lmapi.ListOptions) ([]lmapi.Device, error) {
	items, err := c.client.GetAll(ctx, "/device/devices", opts)
	if err != nil {
		return nil, fmt.Errorf("listing devices: %w", err)
	}

	devices := make([]lmapi.Device, 0, len(items))

	for _, item := range items {
		var device lmapi.Device

		err = lmapi.DecodeItem(item, &device)
		if err != nil {
			return nil, fmt.Errorf("decoding device: %w", err)
		}

		devices = append(devices, device)
	}

	return devices, nil
}

// Get implements lmapi.DevicesClient.Get.
func (c *DevicesClient) Get(ctx context.Context, id int) (*lmapi.Device, error) {
	item, err := c.client.getResource(ctx, fmt.Sprintf("/device/devices/%d", id))
	if err != nil {
		return nil, fmt.Errorf("getting device %d: %w", id, err)
	}

	var device lmapi.Device

	err = lmapi.DecodeItem(item, &device)
	if err != nil {
		return nil, fmt.Errorf("decoding device %d: %w", id, err)
	}

	return &device, nil
}

// Properties implements lmapi.DevicesClient.Properties.
func (c *DevicesClient) Properties(ctx context.Context, id int) ([]lmapi.Property, error) {
	items, err := c.client.GetAll(ctx, fmt.Sprintf("/device/devices/%d/properties", id), nil)
	if err != nil {
		return nil, fmt.Errorf("listing device %d properties: %w", id, err)
	}

	props := make([]lmapi.Property, 0, len(items))

	for _, item := range items {
		var prop lmapi.Property

		err = lmapi.DecodeItem(item, &prop)
		if err != nil {
			return nil, fmt.Errorf("decoding device property: %w", err)
		}

		props = append(props, prop)
	}

	return props, nil
}

// getResource fetches one resource by path: a single request, a single
// (possibly bare) object back.
func (c *Client) getResource(ctx context.Context, path string) (lmapi.Item, error) {
	version := lmapi.ResolveVersion(path, 0)

	resp, err := c.httpClient.Do(ctx, &lmhttp.Request{
		Method:  nethttp.MethodGet,
		Path:    path,
		Version: version,
	})
	if err != nil {
		return nil, err
	}

	items, err := pageItems(version, resp)
	if err != nil {
		return nil, err
	}

	if len(items) == 0 {
		return nil, &lmapi.Error{
			Kind:       lmapi.ErrorKindProtocol,
			StatusCode: resp.StatusCode,
			Message:    "resource response carried no object",
		}
	}

	return items[0], nil
}

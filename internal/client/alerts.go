package client

import (
	"context"
	"fmt"

	"github.com/lmtk-io/lmtk/pkg/lmapi"
)

// AlertsClient implements lmapi.AlertsClient.
type AlertsClient struct {
	client *Client
}

// List implements lmapi.AlertsClient.List.
func (c *AlertsClient) List(ctx context.Context, opts *lmapi.ListOptions) ([]lmapi.Alert, error) {
	items, err := c.client.GetAll(ctx, "/alert/alerts", opts)
	if err != nil {
		return nil, fmt.Errorf("listing alerts: %w", err)
	}

	alerts := make([]lmapi.Alert, 0, len(items))

	for _, item := range items {
		var alert lmapi.Alert

		err = lmapi.DecodeItem(item, &alert)
		if err != nil {
			return nil, fmt.Errorf("decoding alert: %w", err)
		}

		alerts = append(alerts, alert)
	}

	return alerts, nil
}

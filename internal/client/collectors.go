package client

import (
	"context"
	"fmt"

	"github.com/lmtk-io/lmtk/pkg/lmapi"
)

// CollectorsClient implements lmapi.CollectorsClient.
type CollectorsClient struct {
	client *Client
}

// List implements lmapi.CollectorsClient.List.
func (c *CollectorsClient) List(ctx context.Context, opts *lmapi.ListOptions) ([]lmapi.Collector, error) {
	items, err := c.client.GetAll(ctx, "/setting/collector/collectors", opts)
	if err != nil {
		return nil, fmt.Errorf("listing collectors: %w", err)
	}

	collectors := make([]lmapi.Collector, 0, len(items))

	for _, item := range items {
		var collector lmapi.Collector

		err = lmapi.DecodeItem(item, &collector)
		if err != nil {
			return nil, fmt.Errorf("decoding collector: %w", err)
		}

		collectors = append(collectors, collector)
	}

	return collectors, nil
}

// Get implements lmapi.CollectorsClient.Get.
func (c *CollectorsClient) Get(ctx context.Context, id int) (*lmapi.Collector, error) {
	item, err := c.client.getResource(ctx, fmt.Sprintf("/setting/collector/collectors/%d", id))
	if err != nil {
		return nil, fmt.Errorf("getting collector %d: %w", id, err)
	}

	var collector lmapi.Collector

	err = lmapi.DecodeItem(item, &collector)
	if err != nil {
		return nil, fmt.Errorf("decoding collector %d: %w", id, err)
	}

	return &collector, nil
}

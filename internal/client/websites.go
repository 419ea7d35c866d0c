package client

import (
	"context"
	"fmt"

	"github.com/lmtk-io/lmtk/pkg/lmapi"
)

// WebsitesClient implements lmapi.WebsitesClient.
type WebsitesClient struct {
	client *Client
}

// List implements lmapi.WebsitesClient.List.
func (c *WebsitesClient) List(ctx context.Context, opts *lmapi.ListOptions) ([]lmapi.Website, error) {
	items, err := c.client.GetAll(ctx, "/website/websites", opts)
	if err != nil {
		return nil, fmt.Errorf("listing websites: %w", err)
	}

	websites := make([]lmapi.Website, 0, len(items))

	for _, item := range items {
		var website lmapi.Website

		err = lmapi.DecodeItem(item, &website)
		if err != nil {
			return nil, fmt.Errorf("decoding website: %w", err)
		}

		websites = append(websites, website)
	}

	return websites, nil
}

// Get implements lmapi.WebsitesClient.Get.
func (c *WebsitesClient) Get(ctx context.Context, id int) (*lmapi.Website, error) {
	item, err := c.client.getResource(ctx, fmt.Sprintf("/website/websites/%d", id))
	if err != nil {
		return nil, fmt.Errorf("getting website %d: %w", id, err)
	}

	var website lmapi.Website

	err = lmapi.DecodeItem(item, &website)
	if err != nil {
		return nil, fmt.Errorf("decoding website %d: %w", id, err)
	}

	return &website, nil
}

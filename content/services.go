package content

import (
	"context"

	"github.com/mo-sami19/zynk/models"
)

// ListServices returns all active services.
func (c *Client) ListServices(ctx context.Context) ([]models.Service, error) {
	var env Envelope[[]models.Service]
	if err := c.get(ctx, "/v1/services", nil, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// ServiceBySlug returns a single service.
func (c *Client) ServiceBySlug(ctx context.Context, slug string) (*models.Service, error) {
	var env Envelope[models.Service]
	if err := c.get(ctx, "/v1/services/"+slug, nil, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

package content

import (
	"context"
	"net/url"
	"strconv"

	"github.com/mo-sami19/zynk/models"
)

// ProjectListOptions filter and paginate the project list. Zero values are
// omitted from the query string entirely, so the backend can distinguish
// "no filter" from "empty filter".
type ProjectListOptions struct {
	Category string
	Featured bool
	Page     int
	PerPage  int
}

// Query renders the options as URL query parameters, truthy values only.
func (o ProjectListOptions) Query() url.Values {
	q := url.Values{}
	if o.Category != "" {
		q.Set("category", o.Category)
	}
	if o.Featured {
		q.Set("featured", "1")
	}
	if o.Page > 0 {
		q.Set("page", strconv.Itoa(o.Page))
	}
	if o.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(o.PerPage))
	}
	return q
}

// ListProjects returns a page of active projects.
func (c *Client) ListProjects(ctx context.Context, opts ProjectListOptions) ([]models.Project, *models.PageMeta, error) {
	var page Paginated[models.Project]
	if err := c.get(ctx, "/v1/projects", opts.Query(), &page); err != nil {
		return nil, nil, err
	}
	meta := models.PageMeta(page.Meta)
	return page.Data, &meta, nil
}

// ProjectBySlug returns a single project.
func (c *Client) ProjectBySlug(ctx context.Context, slug string) (*models.Project, error) {
	var env Envelope[models.Project]
	if err := c.get(ctx, "/v1/projects/"+slug, nil, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

package content

import (
	"context"
	"net/url"
	"strconv"

	"github.com/mo-sami19/zynk/models"
)

// PostListOptions filter and paginate the blog list. Zero values are omitted
// from the query string.
type PostListOptions struct {
	Category string
	Tag      string
	Search   string
	Page     int
	PerPage  int
}

// Query renders the options as URL query parameters, truthy values only.
func (o PostListOptions) Query() url.Values {
	q := url.Values{}
	if o.Category != "" {
		q.Set("category", o.Category)
	}
	if o.Tag != "" {
		q.Set("tag", o.Tag)
	}
	if o.Search != "" {
		q.Set("search", o.Search)
	}
	if o.Page > 0 {
		q.Set("page", strconv.Itoa(o.Page))
	}
	if o.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(o.PerPage))
	}
	return q
}

// ListPosts returns a page of published posts.
func (c *Client) ListPosts(ctx context.Context, opts PostListOptions) ([]models.Post, *models.PageMeta, error) {
	var page Paginated[models.Post]
	if err := c.get(ctx, "/v1/posts", opts.Query(), &page); err != nil {
		return nil, nil, err
	}
	meta := models.PageMeta(page.Meta)
	return page.Data, &meta, nil
}

// PostBySlug returns a single post.
func (c *Client) PostBySlug(ctx context.Context, slug string) (*models.Post, error) {
	var env Envelope[models.Post]
	if err := c.get(ctx, "/v1/posts/"+slug, nil, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

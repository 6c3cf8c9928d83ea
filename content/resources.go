package content

import (
	"context"
	"net/url"

	"github.com/mo-sami19/zynk/models"
)

// ListTeam returns all active team members.
func (c *Client) ListTeam(ctx context.Context) ([]models.TeamMember, error) {
	var env Envelope[[]models.TeamMember]
	if err := c.get(ctx, "/v1/team", nil, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// ListTestimonials returns active testimonials, optionally featured only.
func (c *Client) ListTestimonials(ctx context.Context, featured bool) ([]models.Testimonial, error) {
	q := url.Values{}
	if featured {
		q.Set("featured", "1")
	}
	var env Envelope[[]models.Testimonial]
	if err := c.get(ctx, "/v1/testimonials", q, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// ListPricing returns all active pricing plans.
func (c *Client) ListPricing(ctx context.Context) ([]models.PricingPlan, error) {
	var env Envelope[[]models.PricingPlan]
	if err := c.get(ctx, "/v1/pricing", nil, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// PartnerListOptions filter the partner list. Zero values are omitted.
type PartnerListOptions struct {
	Type     string
	Featured bool
}

// Query renders the options as URL query parameters, truthy values only.
func (o PartnerListOptions) Query() url.Values {
	q := url.Values{}
	if o.Type != "" {
		q.Set("type", o.Type)
	}
	if o.Featured {
		q.Set("featured", "1")
	}
	return q
}

// ListPartners returns active partners.
func (c *Client) ListPartners(ctx context.Context, opts PartnerListOptions) ([]models.Partner, error) {
	var env Envelope[[]models.Partner]
	if err := c.get(ctx, "/v1/partners", opts.Query(), &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// PartnerTypes returns the known partner type names.
func (c *Client) PartnerTypes(ctx context.Context) ([]string, error) {
	var env Envelope[[]string]
	if err := c.get(ctx, "/v1/partners/types", nil, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// PartnerBySlug returns a single partner.
func (c *Client) PartnerBySlug(ctx context.Context, slug string) (*models.Partner, error) {
	var env Envelope[models.Partner]
	if err := c.get(ctx, "/v1/partners/"+slug, nil, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// Settings returns the full settings bag.
func (c *Client) Settings(ctx context.Context) (models.Settings, error) {
	var env Envelope[models.Settings]
	if err := c.get(ctx, "/v1/settings", nil, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// SettingsGroup returns one settings group.
func (c *Client) SettingsGroup(ctx context.Context, group string) (models.Settings, error) {
	var env Envelope[models.Settings]
	if err := c.get(ctx, "/v1/settings/"+group, nil, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// Seo returns the SEO payload for a page identified by type and slug.
func (c *Client) Seo(ctx context.Context, typ, slug string) (*models.SeoData, error) {
	var env Envelope[models.SeoData]
	if err := c.get(ctx, "/v1/seo/"+typ+"/"+slug, nil, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

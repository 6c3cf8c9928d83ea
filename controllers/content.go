package controllers

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/mo-sami19/zynk/content"
	"github.com/mo-sami19/zynk/fallback"
	"github.com/mo-sami19/zynk/loader"
	"github.com/mo-sami19/zynk/models"
	"github.com/mo-sami19/zynk/utils"
)

// GET /v1/services
func (c *Controller) ListServices(w http.ResponseWriter, r *http.Request) {
	snap := c.services.Get(r.Context())
	data, usedFallback := fallback.PreferLive(snap.Data, liveErr(snap.Err, snap.HasData()), c.Fallback.Services())
	logFallback("services", usedFallback, snap.Err)
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Data: normalizeServiceIcons(data)})
}

// GET /v1/services/{slug}
func (c *Controller) GetService(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	l := c.serviceBySlug.Loader(slug, func(ctx context.Context) (*models.Service, *models.PageMeta, error) {
		svc, err := c.Client.ServiceBySlug(ctx, slug)
		return svc, nil, err
	})
	snap := l.Get(r.Context())
	if snap.HasData() && snap.Err == nil {
		svc := *snap.Data
		svc.Icon = models.NormalizeIcon(svc.Icon)
		utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Data: svc})
		return
	}
	if static := c.Fallback.ServiceBySlug(slug); static != nil {
		logFallback("service "+slug, true, snap.Err)
		svc := *static
		svc.Icon = models.NormalizeIcon(svc.Icon)
		utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Data: svc})
		return
	}
	writeError(w, snap.Err)
}

// GET /v1/projects
func (c *Controller) ListProjects(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := content.ProjectListOptions{
		Category: q.Get("category"),
		Featured: q.Get("featured") == "1",
		Page:     atoiQuery(q.Get("page")),
		PerPage:  atoiQuery(q.Get("per_page")),
	}
	key := opts.Query().Encode()
	l := c.projects.Loader(key, func(ctx context.Context) ([]models.Project, *models.PageMeta, error) {
		return c.Client.ListProjects(ctx, opts)
	})
	snap := l.Get(r.Context())

	if snap.Err == nil && len(snap.Data) > 0 {
		meta := models.SinglePage(len(snap.Data))
		if snap.Meta != nil {
			meta = *snap.Meta
		}
		utils.WritePagedJSON(w, http.StatusOK, utils.PagedResponse{Success: true, Data: snap.Data, Meta: meta})
		return
	}

	static := filterProjects(c.Fallback.Projects(), opts)
	logFallback("projects", true, snap.Err)
	utils.WritePagedJSON(w, http.StatusOK, utils.PagedResponse{
		Success: true, Data: static, Meta: models.SinglePage(len(static)),
	})
}

// GET /v1/projects/{slug}
func (c *Controller) GetProject(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	l := c.projectBySlug.Loader(slug, func(ctx context.Context) (*models.Project, *models.PageMeta, error) {
		p, err := c.Client.ProjectBySlug(ctx, slug)
		return p, nil, err
	})
	snap := l.Get(r.Context())
	if snap.HasData() && snap.Err == nil {
		utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Data: snap.Data})
		return
	}
	if static := c.Fallback.ProjectBySlug(slug); static != nil {
		logFallback("project "+slug, true, snap.Err)
		utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Data: static})
		return
	}
	writeError(w, snap.Err)
}

// GET /v1/posts
func (c *Controller) ListPosts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := content.PostListOptions{
		Category: q.Get("category"),
		Tag:      q.Get("tag"),
		Search:   q.Get("search"),
		Page:     atoiQuery(q.Get("page")),
		PerPage:  atoiQuery(q.Get("per_page")),
	}
	key := opts.Query().Encode()
	l := c.posts.Loader(key, func(ctx context.Context) ([]models.Post, *models.PageMeta, error) {
		return c.Client.ListPosts(ctx, opts)
	})
	snap := l.Get(r.Context())

	if snap.Err == nil && len(snap.Data) > 0 {
		meta := models.SinglePage(len(snap.Data))
		if snap.Meta != nil {
			meta = *snap.Meta
		}
		utils.WritePagedJSON(w, http.StatusOK, utils.PagedResponse{Success: true, Data: snap.Data, Meta: meta})
		return
	}

	static := filterPosts(c.Fallback.Posts(), opts, requestLocale(r))
	logFallback("posts", true, snap.Err)
	utils.WritePagedJSON(w, http.StatusOK, utils.PagedResponse{
		Success: true, Data: static, Meta: models.SinglePage(len(static)),
	})
}

// GET /v1/posts/{slug}
func (c *Controller) GetPost(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	l := c.postBySlug.Loader(slug, func(ctx context.Context) (*models.Post, *models.PageMeta, error) {
		p, err := c.Client.PostBySlug(ctx, slug)
		return p, nil, err
	})
	snap := l.Get(r.Context())
	if snap.HasData() && snap.Err == nil {
		utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Data: snap.Data})
		return
	}
	if static := c.Fallback.PostBySlug(slug); static != nil {
		logFallback("post "+slug, true, snap.Err)
		utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Data: static})
		return
	}
	writeError(w, snap.Err)
}

// GET /v1/team
func (c *Controller) ListTeam(w http.ResponseWriter, r *http.Request) {
	snap := c.team.Get(r.Context())
	if snap.Err != nil && !snap.HasData() {
		writeError(w, snap.Err)
		return
	}
	// No bundled fallback for team; empty-with-success is a valid result.
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Data: emptyAsList(snap.Data)})
}

// GET /v1/testimonials
func (c *Controller) ListTestimonials(w http.ResponseWriter, r *http.Request) {
	featured := r.URL.Query().Get("featured") == "1"
	key := ""
	if featured {
		key = "featured"
	}
	l := c.testimonials.Loader(key, func(ctx context.Context) ([]models.Testimonial, *models.PageMeta, error) {
		data, err := c.Client.ListTestimonials(ctx, featured)
		return data, nil, err
	})
	snap := l.Get(r.Context())
	static := c.Fallback.Testimonials()
	if featured {
		static = filterTestimonials(static)
	}
	data, usedFallback := fallback.PreferLive(snap.Data, liveErr(snap.Err, snap.HasData()), static)
	logFallback("testimonials", usedFallback, snap.Err)
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Data: data})
}

// GET /v1/pricing
func (c *Controller) ListPricing(w http.ResponseWriter, r *http.Request) {
	snap := c.pricing.Get(r.Context())
	if snap.Err != nil && !snap.HasData() {
		writeError(w, snap.Err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Data: emptyAsList(snap.Data)})
}

// GET /v1/partners
func (c *Controller) ListPartners(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := content.PartnerListOptions{Type: q.Get("type"), Featured: q.Get("featured") == "1"}
	key := opts.Query().Encode()
	l := c.partners.Loader(key, func(ctx context.Context) ([]models.Partner, *models.PageMeta, error) {
		data, err := c.Client.ListPartners(ctx, opts)
		return data, nil, err
	})
	snap := l.Get(r.Context())
	data, usedFallback := fallback.PreferLive(snap.Data, liveErr(snap.Err, snap.HasData()), filterPartners(c.Fallback.Partners(), opts))
	logFallback("partners", usedFallback, snap.Err)
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Data: data})
}

// GET /v1/partners/types
func (c *Controller) GetPartnerTypes(w http.ResponseWriter, r *http.Request) {
	types, err := c.Client.PartnerTypes(r.Context())
	if err != nil || len(types) == 0 {
		logFallback("partner types", true, err)
		types = staticPartnerTypes(c.Fallback.Partners())
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Data: types})
}

// GET /v1/partners/{slug}
func (c *Controller) GetPartner(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	l := c.partnerBySlug.Loader(slug, func(ctx context.Context) (*models.Partner, *models.PageMeta, error) {
		p, err := c.Client.PartnerBySlug(ctx, slug)
		return p, nil, err
	})
	snap := l.Get(r.Context())
	if snap.HasData() && snap.Err == nil {
		utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Data: snap.Data})
		return
	}
	if static := c.Fallback.PartnerBySlug(slug); static != nil {
		logFallback("partner "+slug, true, snap.Err)
		utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Data: static})
		return
	}
	writeError(w, snap.Err)
}

// liveErr treats "no successful load yet" as an error for the fallback
// selection, so a first-request failure serves static data instead of nil.
func liveErr(err error, hasData bool) error {
	if err != nil {
		return err
	}
	if !hasData {
		return loader.ErrNoData
	}
	return nil
}

func logFallback(what string, used bool, err error) {
	if used && err != nil {
		log.Printf("[content] serving bundled %s: %v", what, err)
	}
}

func atoiQuery(s string) int {
	v, _ := strconv.Atoi(s)
	if v < 0 {
		return 0
	}
	return v
}

// normalizeServiceIcons copies the slice so shared fallback data stays
// untouched, then clamps icon names to the renderable set.
func normalizeServiceIcons(services []models.Service) []models.Service {
	out := make([]models.Service, len(services))
	copy(out, services)
	for i := range out {
		out[i].Icon = models.NormalizeIcon(out[i].Icon)
	}
	return out
}

// emptyAsList keeps JSON output as [] rather than null for empty slices.
func emptyAsList[T any](data []T) []T {
	if data == nil {
		return []T{}
	}
	return data
}

func filterProjects(projects []models.Project, opts content.ProjectListOptions) []models.Project {
	out := make([]models.Project, 0, len(projects))
	for _, p := range projects {
		if opts.Category != "" && p.Category != opts.Category {
			continue
		}
		if opts.Featured && !p.IsFeatured {
			continue
		}
		out = append(out, p)
	}
	return out
}

func filterPosts(posts []models.Post, opts content.PostListOptions, locale string) []models.Post {
	out := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if opts.Category != "" && p.Category != opts.Category {
			continue
		}
		if opts.Tag != "" && !containsString(p.Tags, opts.Tag) {
			continue
		}
		if opts.Search != "" {
			title := utils.LocalizedString(p.Title, locale)
			excerpt := utils.LocalizedString(p.Excerpt, locale)
			needle := strings.ToLower(opts.Search)
			if !strings.Contains(strings.ToLower(title), needle) &&
				!strings.Contains(strings.ToLower(excerpt), needle) {
				continue
			}
		}
		out = append(out, p)
	}
	return out
}

func filterTestimonials(items []models.Testimonial) []models.Testimonial {
	out := make([]models.Testimonial, 0, len(items))
	for _, t := range items {
		if t.IsFeatured {
			out = append(out, t)
		}
	}
	return out
}

func filterPartners(partners []models.Partner, opts content.PartnerListOptions) []models.Partner {
	out := make([]models.Partner, 0, len(partners))
	for _, p := range partners {
		if opts.Type != "" && p.Type != opts.Type {
			continue
		}
		if opts.Featured && !p.IsFeatured {
			continue
		}
		out = append(out, p)
	}
	return out
}

func staticPartnerTypes(partners []models.Partner) []string {
	seen := make(map[string]bool)
	var types []string
	for _, p := range partners {
		if !seen[p.Type] {
			seen[p.Type] = true
			types = append(types, p.Type)
		}
	}
	return types
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

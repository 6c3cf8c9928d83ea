// Package controllers implements the gateway's HTTP handlers. Content GETs
// are served through TTL loaders over the upstream client, substituting the
// bundled static data when the live result is unusable; write endpoints
// (contact, chatbot) validate locally before anything reaches the upstream.
package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/mo-sami19/zynk/chat"
	"github.com/mo-sami19/zynk/content"
	"github.com/mo-sami19/zynk/fallback"
	"github.com/mo-sami19/zynk/loader"
	"github.com/mo-sami19/zynk/models"
	"github.com/mo-sami19/zynk/storage"
	"github.com/mo-sami19/zynk/utils"
)

// Controller bundles the handler dependencies.
type Controller struct {
	Client   *content.Client
	Fallback *fallback.Store
	Cache    *storage.Cache
	ChatMgr  *chat.Manager
	Archive  *storage.Archive // nil when no archive database is configured

	services     *loader.Loader[[]models.Service]
	team         *loader.Loader[[]models.TeamMember]
	pricing      *loader.Loader[[]models.PricingPlan]
	testimonials *loader.Group[[]models.Testimonial]
	projects     *loader.Group[[]models.Project]
	posts        *loader.Group[[]models.Post]
	partners     *loader.Group[[]models.Partner]

	serviceBySlug *loader.Group[*models.Service]
	projectBySlug *loader.Group[*models.Project]
	postBySlug    *loader.Group[*models.Post]
	partnerBySlug *loader.Group[*models.Partner]
}

// New builds a Controller. The content cache TTL comes from
// CONTENT_CACHE_SEC (default 60).
func New(client *content.Client, fb *fallback.Store, cache *storage.Cache, chatMgr *chat.Manager, archive *storage.Archive) *Controller {
	ttl := 60 * time.Second
	if s := os.Getenv("CONTENT_CACHE_SEC"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			ttl = time.Duration(v) * time.Second
		}
	}

	c := &Controller{
		Client:   client,
		Fallback: fb,
		Cache:    cache,
		ChatMgr:  chatMgr,
		Archive:  archive,
	}
	c.services = loader.New(ttl, func(ctx context.Context) ([]models.Service, *models.PageMeta, error) {
		data, err := client.ListServices(ctx)
		return data, nil, err
	})
	c.team = loader.New(ttl, func(ctx context.Context) ([]models.TeamMember, *models.PageMeta, error) {
		data, err := client.ListTeam(ctx)
		return data, nil, err
	})
	c.pricing = loader.New(ttl, func(ctx context.Context) ([]models.PricingPlan, *models.PageMeta, error) {
		data, err := client.ListPricing(ctx)
		return data, nil, err
	})
	c.testimonials = loader.NewGroup[[]models.Testimonial](ttl)
	c.projects = loader.NewGroup[[]models.Project](ttl)
	c.posts = loader.NewGroup[[]models.Post](ttl)
	c.partners = loader.NewGroup[[]models.Partner](ttl)
	c.serviceBySlug = loader.NewGroup[*models.Service](ttl)
	c.projectBySlug = loader.NewGroup[*models.Project](ttl)
	c.postBySlug = loader.NewGroup[*models.Post](ttl)
	c.partnerBySlug = loader.NewGroup[*models.Partner](ttl)
	return c
}

// Close releases the controller's loaders.
func (c *Controller) Close() {
	c.services.Close()
	c.team.Close()
	c.pricing.Close()
	c.testimonials.Close()
	c.projects.Close()
	c.posts.Close()
	c.partners.Close()
	c.serviceBySlug.Close()
	c.projectBySlug.Close()
	c.postBySlug.Close()
	c.partnerBySlug.Close()
}

// writeError maps the error taxonomy onto HTTP statuses and the standard
// envelope.
func writeError(w http.ResponseWriter, err error) {
	var ve *content.ValidationError
	if errors.As(err, &ve) {
		utils.WriteJSON(w, http.StatusUnprocessableEntity, utils.APIResponse{Success: false, Message: ve.Error()})
		return
	}
	var ae *content.APIError
	if errors.As(err, &ae) {
		status := ae.Status
		if status < 400 || status > 599 {
			status = http.StatusBadGateway
		}
		utils.WriteJSON(w, status, utils.APIResponse{Success: false, Message: ae.Error()})
		return
	}
	if content.IsNetwork(err) {
		utils.WriteJSON(w, http.StatusBadGateway, utils.APIResponse{Success: false, Message: "Content service unavailable"})
		return
	}
	switch {
	case errors.Is(err, chat.ErrUnknownSession):
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Session not found"})
	case errors.Is(err, chat.ErrCompleted):
		utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "Session is complete"})
	case errors.Is(err, chat.ErrNotCompleted):
		utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "Session is not complete"})
	case errors.Is(err, chat.ErrBusy):
		utils.WriteJSON(w, http.StatusTooManyRequests, utils.APIResponse{Success: false, Message: "A message is already being processed"})
	default:
		log.Printf("[gateway] unexpected error: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Internal server error"})
	}
}

// requestLocale reads the display locale from the lang query parameter or
// the Accept-Language header.
func requestLocale(r *http.Request) string {
	if lang := r.URL.Query().Get("lang"); lang != "" {
		return utils.NormalizeLocale(lang)
	}
	return utils.NormalizeLocale(r.Header.Get("Accept-Language"))
}

package controllers

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mo-sami19/zynk/models"
	"github.com/mo-sami19/zynk/utils"
)

// Settings handles GET /v1/settings. Site settings change rarely, so the
// full map is cached under a single key.
func (c *Controller) Settings(w http.ResponseWriter, r *http.Request) {
	const cacheKey = "settings:all"
	var settings models.Settings
	if c.Cache.GetJSON(r.Context(), cacheKey, &settings) {
		utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Data: settings})
		return
	}

	settings, err := c.Client.Settings(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if err := c.Cache.SetJSON(r.Context(), cacheKey, settings); err != nil {
		log.Printf("[WARN] settings cache write failed: %v", err)
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Data: settings})
}

// SettingsGroup handles GET /v1/settings/{group}.
func (c *Controller) SettingsGroup(w http.ResponseWriter, r *http.Request) {
	group := mux.Vars(r)["group"]
	cacheKey := "settings:group:" + group
	var settings models.Settings
	if c.Cache.GetJSON(r.Context(), cacheKey, &settings) {
		utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Data: settings})
		return
	}

	settings, err := c.Client.SettingsGroup(r.Context(), group)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := c.Cache.SetJSON(r.Context(), cacheKey, settings); err != nil {
		log.Printf("[WARN] settings cache write failed: %v", err)
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Data: settings})
}

// Seo handles GET /v1/seo/{type}/{slug}, returning the metadata block for a
// single page.
func (c *Controller) Seo(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	typ, slug := vars["type"], vars["slug"]
	cacheKey := "seo:" + typ + ":" + slug
	var seo models.SeoData
	if c.Cache.GetJSON(r.Context(), cacheKey, &seo) {
		utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Data: seo})
		return
	}

	data, err := c.Client.Seo(r.Context(), typ, slug)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := c.Cache.SetJSON(r.Context(), cacheKey, *data); err != nil {
		log.Printf("[WARN] seo cache write failed: %v", err)
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Data: data})
}

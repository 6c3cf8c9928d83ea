package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mo-sami19/zynk/models"
	"github.com/mo-sami19/zynk/utils"
)

// Chat handles POST /v1/chatbot. A body without a session id opens a new
// session; the response always carries the gateway's session id, which the
// browser echoes on every later turn.
func (c *Controller) Chat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid request body"})
		return
	}
	req.Language = utils.NormalizeLocale(req.Language)

	payload, err := c.ChatMgr.Handle(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Data: payload})
}

// RateChat handles POST /v1/chatbot/rate. A repeated submission for a
// session that already rated is acknowledged without another upstream call.
func (c *Controller) RateChat(w http.ResponseWriter, r *http.Request) {
	var req models.RatingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid request body"})
		return
	}

	payload, err := c.ChatMgr.Rate(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	if payload == nil {
		utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Rating already submitted"})
		return
	}

	if c.Archive != nil {
		if err := c.Archive.RecordRating(r.Context(), req.SessionID, req.Rating, req.Feedback); err != nil {
			// Archive failures must not surface to the visitor.
			log.Printf("[WARN] rating archive failed: %v", err)
		}
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Data: payload})
}

// ChatHistory handles GET /v1/chatbot/history/{session_id}, proxying the
// upstream transcript while keeping upstream ids internal.
func (c *Controller) ChatHistory(w http.ResponseWriter, r *http.Request) {
	gatewayID := mux.Vars(r)["session_id"]
	upstreamID, err := c.ChatMgr.UpstreamID(r.Context(), gatewayID)
	if err != nil {
		writeError(w, err)
		return
	}

	payload, err := c.Client.ChatHistory(r.Context(), upstreamID)
	if err != nil {
		writeError(w, err)
		return
	}
	payload.SessionID = gatewayID
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Data: payload})
}

// ChatbotServices handles GET /v1/chatbot/services, cached because the
// catalog changes rarely.
func (c *Controller) ChatbotServices(w http.ResponseWriter, r *http.Request) {
	const cacheKey = "chatbot:services"
	var services map[string]models.LocalizedText
	if c.Cache.GetJSON(r.Context(), cacheKey, &services) {
		utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Data: services})
		return
	}

	services, err := c.Client.ChatbotServices(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if err := c.Cache.SetJSON(r.Context(), cacheKey, services); err != nil {
		log.Printf("[WARN] chatbot services cache write failed: %v", err)
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Data: services})
}

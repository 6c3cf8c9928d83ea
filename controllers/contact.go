package controllers

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/mo-sami19/zynk/content"
	"github.com/mo-sami19/zynk/models"
	"github.com/mo-sami19/zynk/utils"
)

// SubmitContact handles POST /v1/contact. Length ceilings are checked here,
// before the upstream call, so oversized submissions never generate
// network traffic. With an archive database configured, submissions are
// recorded; with CONTACT_QUEUE=true, submissions that fail upstream are
// queued for the background flusher and acknowledged with 202.
func (c *Controller) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var msg models.ContactMessage
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&msg); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid JSON body"})
		return
	}

	msg.Name = strings.TrimSpace(msg.Name)
	msg.Email = strings.TrimSpace(msg.Email)
	msg.Subject = strings.TrimSpace(msg.Subject)
	msg.Message = strings.TrimSpace(msg.Message)
	if msg.Name == "" || msg.Email == "" || msg.Subject == "" || msg.Message == "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "name, email, subject and message are required"})
		return
	}
	if err := content.ValidateContact(msg); err != nil {
		writeError(w, err)
		return
	}

	id, err := c.Client.SubmitContact(r.Context(), msg)
	if err == nil {
		c.archiveContact(r, msg, models.ContactStatusSent)
		utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
			Success: true,
			Message: "Message sent successfully",
			Data:    map[string]interface{}{"id": id},
		})
		return
	}

	if c.Archive != nil && os.Getenv("CONTACT_QUEUE") == "true" && !content.IsValidation(err) {
		log.Printf("[contact] upstream delivery failed, queueing: %v", err)
		c.archiveContact(r, msg, models.ContactStatusPending)
		utils.WriteJSON(w, http.StatusAccepted, utils.APIResponse{
			Success: true,
			Message: "Message accepted for delivery",
		})
		return
	}
	writeError(w, err)
}

func (c *Controller) archiveContact(r *http.Request, msg models.ContactMessage, status string) {
	if c.Archive == nil {
		return
	}
	if err := c.Archive.ArchiveContact(r.Context(), msg, status); err != nil {
		log.Printf("[contact] archive failed: %v", err)
	}
}

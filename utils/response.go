package utils

import (
	"encoding/json"
	"net/http"

	"github.com/mo-sami19/zynk/models"
)

// APIResponse is the {success, data, message?} envelope returned by every
// single-resource endpoint.
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// PagedResponse is the envelope returned by list endpoints.
type PagedResponse struct {
	Success bool            `json:"success"`
	Data    interface{}     `json:"data"`
	Meta    models.PageMeta `json:"meta"`
}

func WriteJSON(w http.ResponseWriter, status int, resp APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func WritePagedJSON(w http.ResponseWriter, status int, resp PagedResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// GetStringValue returns the value of a nullable string pointer or empty
// string if nil.
func GetStringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

package models

import "time"

// Chat transcript roles.
const (
	ChatRoleUser = "user"
	ChatRoleBot  = "bot"
)

// Supported conversation languages.
const (
	LangEN = "en"
	LangAR = "ar"
)

// ChatMessage is one turn of a lead-capture conversation. The transcript is
// append-only; messages are never edited or removed except by a full reset.
type ChatMessage struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatRequest is the body of POST /v1/chatbot. An empty SessionID and Message
// together form the session-initiation handshake.
type ChatRequest struct {
	SessionID string `json:"session_id,omitempty"`
	Message   string `json:"message,omitempty"`
	Language  string `json:"language,omitempty"`
}

// ChatPayload is the data block of a chatbot response.
type ChatPayload struct {
	SessionID        string   `json:"session_id"`
	Message          string   `json:"message"`
	SuggestedActions []string `json:"suggested_actions,omitempty"`
	InputType        string   `json:"input_type"`
	IsComplete       bool     `json:"is_complete"`
	LeadScore        int      `json:"lead_score"`
	Language         string   `json:"language"`
}

// RatingRequest is the body of POST /v1/chatbot/rate.
type RatingRequest struct {
	SessionID string `json:"session_id"`
	Rating    int    `json:"rating"`
	Feedback  string `json:"feedback,omitempty"`
}

// ChatRating is the stored rating echoed back after submission.
type ChatRating struct {
	Rating   int     `json:"rating"`
	Feedback *string `json:"feedback"`
	RatedAt  string  `json:"rated_at"`
}

// RatingPayload is the data block of a rating response.
type RatingPayload struct {
	SessionID  string     `json:"session_id"`
	ChatRating ChatRating `json:"chat_rating"`
}

// ChatHistoryEntry is one transcript row as returned by the history endpoint.
type ChatHistoryEntry struct {
	Role      string `json:"role"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// ChatLeadInfo is the lead information extracted by the conversational engine.
type ChatLeadInfo struct {
	Name     *string  `json:"name"`
	Email    *string  `json:"email"`
	Phone    *string  `json:"phone"`
	Services []string `json:"services"`
}

// ChatHistoryPayload is the data block of GET /v1/chatbot/history/{session_id}.
type ChatHistoryPayload struct {
	SessionID   string             `json:"session_id"`
	ChatHistory []ChatHistoryEntry `json:"chat_history"`
	LeadScore   int                `json:"lead_score"`
	IsComplete  bool               `json:"is_complete"`
	LeadInfo    ChatLeadInfo       `json:"lead_info"`
}

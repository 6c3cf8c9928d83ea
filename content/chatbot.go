package content

import (
	"context"

	"github.com/mo-sami19/zynk/models"
)

// MaxChatMessageLength is the ceiling for a single chat turn, enforced
// before dispatch.
const MaxChatMessageLength = 500

// Chat starts or continues a chatbot session. A request with no session id
// and no message is the session-initiation handshake.
func (c *Client) Chat(ctx context.Context, req models.ChatRequest) (*models.ChatPayload, error) {
	if len(req.Message) > MaxChatMessageLength {
		return nil, &ValidationError{Field: "message", Limit: MaxChatMessageLength, Length: len(req.Message)}
	}

	var env Envelope[models.ChatPayload]
	if err := c.post(ctx, "/v1/chatbot", req, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// RateChat submits a 1-5 rating for a finished session.
func (c *Client) RateChat(ctx context.Context, req models.RatingRequest) (*models.RatingPayload, error) {
	if req.SessionID == "" {
		return nil, &ValidationError{Field: "session_id", Reason: "session_id is required"}
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, &ValidationError{Field: "rating", Reason: "rating must be between 1 and 5"}
	}

	var env Envelope[models.RatingPayload]
	if err := c.post(ctx, "/v1/chatbot/rate", req, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// ChatHistory returns the transcript and lead info for a session.
func (c *Client) ChatHistory(ctx context.Context, sessionID string) (*models.ChatHistoryPayload, error) {
	var env Envelope[models.ChatHistoryPayload]
	if err := c.get(ctx, "/v1/chatbot/history/"+sessionID, nil, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// ChatbotServices returns the service catalog the conversational engine can
// offer, keyed by service identifier.
func (c *Client) ChatbotServices(ctx context.Context) (map[string]models.LocalizedText, error) {
	var env Envelope[map[string]models.LocalizedText]
	if err := c.get(ctx, "/v1/chatbot/services", nil, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

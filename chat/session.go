// Package chat implements the lead-capture conversation state machine that
// backs the site's chat widget. A Session owns the transcript, the
// server-issued session id, the suggested quick replies and the
// post-completion rating flow; the Manager hosts sessions for the gateway's
// chatbot endpoints.
package chat

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/mo-sami19/zynk/content"
	"github.com/mo-sami19/zynk/models"
)

// State is the lifecycle position of a Session.
type State int

const (
	StateClosed State = iota
	StateOpening
	StateAwaitingFirst
	StateConversing
	StateSending
	StateCompleted
	StateRatingPending
	StateRatingSubmitted
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpening:
		return "opening"
	case StateAwaitingFirst:
		return "awaiting_first"
	case StateConversing:
		return "conversing"
	case StateSending:
		return "sending"
	case StateCompleted:
		return "completed"
	case StateRatingPending:
		return "rating_pending"
	case StateRatingSubmitted:
		return "rating_submitted"
	default:
		return "unknown"
	}
}

var (
	ErrNotOpen      = errors.New("chat: session not opened")
	ErrBusy         = errors.New("chat: a turn is already in flight")
	ErrCompleted    = errors.New("chat: session is complete")
	ErrNotCompleted = errors.New("chat: session is not complete")
	ErrEmptyMessage = errors.New("chat: empty message")
	ErrReset        = errors.New("chat: session was reset")
)

// Backend is the upstream conversational engine. *content.Client satisfies it.
type Backend interface {
	Chat(ctx context.Context, req models.ChatRequest) (*models.ChatPayload, error)
	RateChat(ctx context.Context, req models.RatingRequest) (*models.RatingPayload, error)
}

// TurnResult is what one turn produced, for rendering by the embedding surface.
type TurnResult struct {
	BotMessage       string
	SuggestedActions []string
	IsComplete       bool
	LeadScore        int
	InputType        string
	// Degraded marks locally synthesized content (offline greeting, error turn).
	Degraded bool
}

// Session is one lead-capture conversation. All methods are safe for
// concurrent use; the session id is owned exclusively by this instance.
type Session struct {
	backend Backend

	mu              sync.Mutex
	language        string
	state           State
	epoch           uint64
	opened          bool
	sessionID       string
	transcript      []models.ChatMessage
	suggested       []string
	complete        bool
	ratingSubmitted bool
	leadScore       int
	inputType       string

	now func() time.Time
}

// NewSession builds a closed session speaking the given language ("en" or
// "ar"). The language is fixed at session start and echoed on every turn.
func NewSession(backend Backend, language string) *Session {
	if language != models.LangAR {
		language = models.LangEN
	}
	return &Session{backend: backend, language: language, state: StateClosed, now: time.Now}
}

// Open performs the session-initiation handshake: one Chat call with only
// the language set. It fires at most once per open cycle; repeated calls
// return the current greeting. When the upstream is unreachable the session
// degrades to a canned greeting and a fixed locale-appropriate suggestion
// set instead of failing.
func (s *Session) Open(ctx context.Context) (*TurnResult, error) {
	s.mu.Lock()
	if s.opened {
		res := s.snapshotResultLocked()
		s.mu.Unlock()
		return res, nil
	}
	s.opened = true
	s.state = StateAwaitingFirst
	epoch := s.epoch
	lang := s.language
	s.mu.Unlock()

	payload, err := s.backend.Chat(ctx, models.ChatRequest{Language: lang})

	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch {
		return nil, ErrReset
	}
	if err != nil {
		log.Printf("[chatbot] handshake failed, serving offline greeting: %v", err)
		s.appendBotLocked(greeting(lang))
		s.suggested = offlineSuggestions(lang)
		s.state = StateConversing
		return &TurnResult{
			BotMessage:       greeting(lang),
			SuggestedActions: append([]string(nil), s.suggested...),
			Degraded:         true,
		}, nil
	}
	return s.applyPayloadLocked(payload), nil
}

// Send submits one user turn. The user message is appended optimistically
// and the suggestions are cleared before any network activity; neither is
// rolled back on failure. On upstream failure the localized error turn is
// appended, the returned TurnResult carries it, and the error is returned
// alongside so callers can log it; the session remains usable.
func (s *Session) Send(ctx context.Context, text string) (*TurnResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}
	if len(text) > content.MaxChatMessageLength {
		return nil, &content.ValidationError{Field: "message", Limit: content.MaxChatMessageLength, Length: len(text)}
	}

	s.mu.Lock()
	switch {
	case !s.opened:
		s.mu.Unlock()
		return nil, ErrNotOpen
	case s.complete:
		s.mu.Unlock()
		return nil, ErrCompleted
	case s.state == StateSending || s.state == StateAwaitingFirst:
		s.mu.Unlock()
		return nil, ErrBusy
	}

	// Phase 1: local, synchronous. Stale suggestions must never linger
	// while the request is pending.
	s.transcript = append(s.transcript, models.ChatMessage{
		Role: models.ChatRoleUser, Content: text, Timestamp: s.now(),
	})
	s.suggested = nil
	s.state = StateSending
	epoch := s.epoch
	sid := s.sessionID
	lang := s.language
	s.mu.Unlock()

	payload, err := s.backend.Chat(ctx, models.ChatRequest{SessionID: sid, Message: text, Language: lang})

	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch {
		return nil, ErrReset
	}
	if err != nil {
		log.Printf("[chatbot] turn failed: %v", err)
		msg := sendError(lang)
		s.appendBotLocked(msg)
		s.state = StateConversing
		return &TurnResult{BotMessage: msg, Degraded: true}, err
	}
	if sid != "" && payload.SessionID != "" && payload.SessionID != sid {
		perr := &content.ProtocolError{Expected: sid, Got: payload.SessionID}
		log.Printf("[chatbot] %v; dropping response", perr)
		msg := sendError(lang)
		s.appendBotLocked(msg)
		s.state = StateConversing
		return &TurnResult{BotMessage: msg, Degraded: true}, perr
	}
	return s.applyPayloadLocked(payload), nil
}

// SubmitRating submits the 1-5 rating for a completed session. It issues at
// most one upstream call: a submission in flight or already accepted makes
// further calls a no-op returning (nil, nil).
func (s *Session) SubmitRating(ctx context.Context, rating int, feedback string) (*models.RatingPayload, error) {
	s.mu.Lock()
	if !s.complete {
		s.mu.Unlock()
		return nil, ErrNotCompleted
	}
	if s.ratingSubmitted || s.state == StateRatingPending {
		s.mu.Unlock()
		return nil, nil
	}
	if rating < 1 || rating > 5 {
		s.mu.Unlock()
		return nil, &content.ValidationError{Field: "rating", Reason: "rating must be between 1 and 5"}
	}
	if s.sessionID == "" {
		s.mu.Unlock()
		return nil, &content.ValidationError{Field: "session_id", Reason: "session_id is required"}
	}
	s.state = StateRatingPending
	epoch := s.epoch
	sid := s.sessionID
	lang := s.language
	s.mu.Unlock()

	payload, err := s.backend.RateChat(ctx, models.RatingRequest{
		SessionID: sid, Rating: rating, Feedback: strings.TrimSpace(feedback),
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch {
		return nil, ErrReset
	}
	if err != nil {
		log.Printf("[chatbot] rating submission failed: %v", err)
		s.appendBotLocked(ratingError(lang))
		s.state = StateCompleted
		return nil, err
	}
	s.ratingSubmitted = true
	s.state = StateRatingSubmitted
	return payload, nil
}

// Reset discards the conversation atomically: transcript, suggestions,
// rating state and session id are cleared together so no turn can be tagged
// with a stale id. In-flight completions from before the reset are dropped.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.epoch++
	s.opened = false
	s.sessionID = ""
	s.transcript = nil
	s.suggested = nil
	s.complete = false
	s.ratingSubmitted = false
	s.leadScore = 0
	s.inputType = ""
	s.state = StateOpening
}

// State returns the current lifecycle position.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SessionID returns the upstream session id; "" before the first response.
func (s *Session) SessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionID
}

// Language returns the session language fixed at construction.
func (s *Session) Language() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.language
}

// Completed reports whether the lead-capture flow has finished. Completion
// is monotonic: only Reset returns it to false.
func (s *Session) Completed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.complete
}

// RatingSubmitted reports whether a rating has been accepted upstream.
func (s *Session) RatingSubmitted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ratingSubmitted
}

// Transcript returns a copy of the conversation so far.
func (s *Session) Transcript() []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.ChatMessage(nil), s.transcript...)
}

// SuggestedActions returns a copy of the current quick replies.
func (s *Session) SuggestedActions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.suggested...)
}

// appendBotLocked appends a bot turn; caller holds s.mu.
func (s *Session) appendBotLocked(msg string) {
	s.transcript = append(s.transcript, models.ChatMessage{
		Role: models.ChatRoleBot, Content: msg, Timestamp: s.now(),
	})
}

// applyPayloadLocked installs a server response; caller holds s.mu.
func (s *Session) applyPayloadLocked(p *models.ChatPayload) *TurnResult {
	if s.sessionID == "" {
		s.sessionID = p.SessionID
	}
	if p.Message != "" {
		s.appendBotLocked(p.Message)
	}
	// Replaced wholesale, never merged.
	s.suggested = append([]string(nil), p.SuggestedActions...)
	if p.IsComplete {
		s.complete = true
	}
	s.leadScore = p.LeadScore
	s.inputType = p.InputType
	if s.complete {
		s.state = StateCompleted
	} else {
		s.state = StateConversing
	}
	return &TurnResult{
		BotMessage:       p.Message,
		SuggestedActions: append([]string(nil), s.suggested...),
		IsComplete:       s.complete,
		LeadScore:        s.leadScore,
		InputType:        s.inputType,
	}
}

// snapshotResultLocked renders the current state as a TurnResult; caller
// holds s.mu.
func (s *Session) snapshotResultLocked() *TurnResult {
	res := &TurnResult{
		SuggestedActions: append([]string(nil), s.suggested...),
		IsComplete:       s.complete,
		LeadScore:        s.leadScore,
		InputType:        s.inputType,
	}
	for i := len(s.transcript) - 1; i >= 0; i-- {
		if s.transcript[i].Role == models.ChatRoleBot {
			res.BotMessage = s.transcript[i].Content
			break
		}
	}
	return res
}

package chat

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mo-sami19/zynk/content"
	"github.com/mo-sami19/zynk/models"
)

// ErrUnknownSession is returned for a session id the gateway never issued
// or that has expired.
var ErrUnknownSession = errors.New("chat: unknown session")

// Archiver receives completed conversations for ops review. It is optional;
// a nil Archiver disables archival.
type Archiver interface {
	ArchiveSession(ctx context.Context, gatewayID string, rec Record) error
}

// Manager hosts the gateway's chat sessions. The browser only ever sees
// gateway-issued ids; the upstream engine's session ids stay internal, so a
// rogue client cannot probe upstream sessions directly.
type Manager struct {
	backend  Backend
	store    Store
	archiver Archiver

	mu      sync.Mutex
	live    map[string]*liveSession
	idleTTL time.Duration
	done    chan struct{}
	stopped bool
}

type liveSession struct {
	sess    *Session
	touched time.Time
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithArchiver enables archival of completed conversations.
func WithArchiver(a Archiver) ManagerOption {
	return func(m *Manager) { m.archiver = a }
}

// WithIdleTTL overrides how long an untouched session stays in memory. The
// persisted record outlives eviction; touching an evicted session restores it.
func WithIdleTTL(ttl time.Duration) ManagerOption {
	return func(m *Manager) { m.idleTTL = ttl }
}

// NewManager builds a Manager and starts its eviction loop. Call Stop on
// shutdown.
func NewManager(backend Backend, store Store, opts ...ManagerOption) *Manager {
	m := &Manager{
		backend: backend,
		store:   store,
		live:    make(map[string]*liveSession),
		idleTTL: 30 * time.Minute,
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	go m.evictLoop()
	return m
}

// Stop ends the eviction loop.
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.stopped {
		m.stopped = true
		close(m.done)
	}
}

// Handle processes one POST /v1/chatbot request. A request without a session
// id opens a new session (handshake); one with an id continues it. The
// returned payload carries the gateway session id.
func (m *Manager) Handle(ctx context.Context, req models.ChatRequest) (*models.ChatPayload, error) {
	if req.SessionID == "" {
		return m.open(ctx, req.Language)
	}

	sess, err := m.session(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}
	if req.Message == "" {
		return nil, &content.ValidationError{Field: "message", Reason: "message is required"}
	}

	res, err := sess.Send(ctx, req.Message)
	if err != nil && res == nil {
		// Nothing was applied: validation failure, busy or completed session.
		return nil, err
	}
	// Degraded turns (upstream failure, protocol violation) still produced a
	// bot turn; the conversation continues rather than aborting.

	m.persist(ctx, req.SessionID, sess)
	payload := m.payload(req.SessionID, sess, res)

	if res.IsComplete {
		m.archive(ctx, req.SessionID, sess)
	}
	return payload, nil
}

// Rate processes one POST /v1/chatbot/rate request. It returns (nil, nil)
// when the rating was already submitted; the caller treats that as success
// without issuing another upstream call.
func (m *Manager) Rate(ctx context.Context, req models.RatingRequest) (*models.RatingPayload, error) {
	sess, err := m.session(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}

	payload, err := sess.SubmitRating(ctx, req.Rating, req.Feedback)
	m.persist(ctx, req.SessionID, sess)
	if err != nil {
		return nil, err
	}
	if payload == nil {
		return nil, nil
	}
	// Hide the upstream id from the browser.
	payload.SessionID = req.SessionID
	if m.archiver != nil {
		m.archive(ctx, req.SessionID, sess)
	}
	return payload, nil
}

// UpstreamID resolves a gateway session id to the upstream engine's id, for
// the history proxy.
func (m *Manager) UpstreamID(ctx context.Context, gatewayID string) (string, error) {
	sess, err := m.session(ctx, gatewayID)
	if err != nil {
		return "", err
	}
	sid := sess.SessionID()
	if sid == "" {
		return "", ErrUnknownSession
	}
	return sid, nil
}

func (m *Manager) open(ctx context.Context, language string) (*models.ChatPayload, error) {
	gatewayID := uuid.NewString()
	sess := NewSession(m.backend, language)

	res, err := sess.Open(ctx)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.live[gatewayID] = &liveSession{sess: sess, touched: time.Now()}
	m.mu.Unlock()

	m.persist(ctx, gatewayID, sess)
	return m.payload(gatewayID, sess, res), nil
}

// session returns the live session for id, restoring it from the store when
// it was evicted.
func (m *Manager) session(ctx context.Context, id string) (*Session, error) {
	m.mu.Lock()
	if ls, ok := m.live[id]; ok {
		ls.touched = time.Now()
		sess := ls.sess
		m.mu.Unlock()
		return sess, nil
	}
	m.mu.Unlock()

	rec, err := m.store.Load(ctx, id)
	if err != nil {
		log.Printf("[chatbot] session store load failed for %s: %v", id, err)
		return nil, err
	}
	if rec == nil {
		return nil, ErrUnknownSession
	}

	sess := Restore(m.backend, *rec)
	m.mu.Lock()
	// Another request may have restored it concurrently; keep the first.
	if ls, ok := m.live[id]; ok {
		sess = ls.sess
		ls.touched = time.Now()
	} else {
		m.live[id] = &liveSession{sess: sess, touched: time.Now()}
	}
	m.mu.Unlock()
	return sess, nil
}

func (m *Manager) persist(ctx context.Context, id string, sess *Session) {
	if err := m.store.Save(ctx, id, sess.Record()); err != nil {
		log.Printf("[chatbot] session store save failed for %s: %v", id, err)
	}
}

func (m *Manager) archive(ctx context.Context, id string, sess *Session) {
	if m.archiver == nil {
		return
	}
	if err := m.archiver.ArchiveSession(ctx, id, sess.Record()); err != nil {
		log.Printf("[chatbot] archive failed for %s: %v", id, err)
	}
}

// payload renders a turn as the wire payload, substituting the gateway id
// for the upstream one.
func (m *Manager) payload(gatewayID string, sess *Session, res *TurnResult) *models.ChatPayload {
	return &models.ChatPayload{
		SessionID:        gatewayID,
		Message:          res.BotMessage,
		SuggestedActions: res.SuggestedActions,
		InputType:        res.InputType,
		IsComplete:       res.IsComplete,
		LeadScore:        res.LeadScore,
		Language:         sess.Language(),
	}
}

func (m *Manager) evictLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-m.idleTTL)
			m.mu.Lock()
			for id, ls := range m.live {
				if ls.touched.Before(cutoff) {
					delete(m.live, id)
				}
			}
			m.mu.Unlock()
		}
	}
}

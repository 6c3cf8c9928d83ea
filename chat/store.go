package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mo-sami19/zynk/models"
)

// Record is the persistable snapshot of a Session, keyed by the gateway's
// own session id. Loading it back with Restore resumes the conversation.
type Record struct {
	UpstreamID      string               `json:"upstream_id"`
	Language        string               `json:"language"`
	Opened          bool                 `json:"opened"`
	Transcript      []models.ChatMessage `json:"transcript"`
	Suggested       []string             `json:"suggested_actions"`
	Complete        bool                 `json:"is_complete"`
	RatingSubmitted bool                 `json:"rating_submitted"`
	LeadScore       int                  `json:"lead_score"`
	InputType       string               `json:"input_type"`
}

// Record snapshots the session for persistence.
func (s *Session) Record() Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Record{
		UpstreamID:      s.sessionID,
		Language:        s.language,
		Opened:          s.opened,
		Transcript:      append([]models.ChatMessage(nil), s.transcript...),
		Suggested:       append([]string(nil), s.suggested...),
		Complete:        s.complete,
		RatingSubmitted: s.ratingSubmitted,
		LeadScore:       s.leadScore,
		InputType:       s.inputType,
	}
}

// Restore rebuilds a Session from a persisted Record.
func Restore(backend Backend, rec Record) *Session {
	s := NewSession(backend, rec.Language)
	s.opened = rec.Opened
	s.sessionID = rec.UpstreamID
	s.transcript = append([]models.ChatMessage(nil), rec.Transcript...)
	s.suggested = append([]string(nil), rec.Suggested...)
	s.complete = rec.Complete
	s.ratingSubmitted = rec.RatingSubmitted
	s.leadScore = rec.LeadScore
	s.inputType = rec.InputType
	switch {
	case rec.RatingSubmitted:
		s.state = StateRatingSubmitted
	case rec.Complete:
		s.state = StateCompleted
	case rec.Opened:
		s.state = StateConversing
	default:
		s.state = StateClosed
	}
	return s
}

// Store persists session records across gateway restarts and instances.
type Store interface {
	// Load returns (nil, nil) when the id is unknown.
	Load(ctx context.Context, id string) (*Record, error)
	Save(ctx context.Context, id string, rec Record) error
	Delete(ctx context.Context, id string) error
}

// MemoryStore is the in-process Store used when Redis is not configured and
// in tests.
type MemoryStore struct {
	mu   sync.Mutex
	recs map[string]Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{recs: make(map[string]Record)}
}

func (m *MemoryStore) Load(_ context.Context, id string) (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.recs[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (m *MemoryStore) Save(_ context.Context, id string, rec Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recs[id] = rec
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.recs, id)
	return nil
}

const (
	redisSessionPrefix = "chat:session:"
	defaultSessionTTL  = 24 * time.Hour
)

// RedisStore keeps one JSON blob per session with a sliding TTL.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (r *RedisStore) Load(ctx context.Context, id string) (*Record, error) {
	data, err := r.rdb.Get(ctx, redisSessionPrefix+id).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load chat session: %w", err)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal chat session: %w", err)
	}
	return &rec, nil
}

func (r *RedisStore) Save(ctx context.Context, id string, rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal chat session: %w", err)
	}
	if err := r.rdb.Set(ctx, redisSessionPrefix+id, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("save chat session: %w", err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	if err := r.rdb.Del(ctx, redisSessionPrefix+id).Err(); err != nil {
		return fmt.Errorf("delete chat session: %w", err)
	}
	return nil
}

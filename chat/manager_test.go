package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/mo-sami19/zynk/content"
	"github.com/mo-sami19/zynk/models"
)

func TestManager_OpenIssuesGatewayID(t *testing.T) {
	fb := &fakeBackend{}
	m := NewManager(fb, NewMemoryStore())
	defer m.Stop()

	payload, err := m.Handle(context.Background(), models.ChatRequest{Language: "en"})
	if err != nil {
		t.Fatalf("handshake: %v", err)
	}
	if payload.SessionID == "" {
		t.Fatal("expected a gateway session id")
	}
	if payload.SessionID == "abc" {
		t.Fatal("the upstream id must never reach the browser")
	}
	if payload.Message != "hello" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
	if payload.Language != "en" {
		t.Fatalf("payload must echo the session language, got %q", payload.Language)
	}
}

func TestManager_TurnRoundTrip(t *testing.T) {
	fb := &fakeBackend{chatFn: func(req models.ChatRequest) (*models.ChatPayload, error) {
		if req.Message == "" {
			return &models.ChatPayload{SessionID: "up-1", Message: "hi"}, nil
		}
		return &models.ChatPayload{SessionID: "up-1", Message: "reply", SuggestedActions: []string{"next"}}, nil
	}}
	m := NewManager(fb, NewMemoryStore())
	defer m.Stop()

	opened, _ := m.Handle(context.Background(), models.ChatRequest{Language: "en"})
	gatewayID := opened.SessionID

	payload, err := m.Handle(context.Background(), models.ChatRequest{SessionID: gatewayID, Message: "hello"})
	if err != nil {
		t.Fatalf("turn: %v", err)
	}
	if payload.SessionID != gatewayID {
		t.Fatalf("turn must echo the gateway id, got %q", payload.SessionID)
	}
	if fb.lastChat.SessionID != "up-1" {
		t.Fatalf("upstream must see its own id, got %q", fb.lastChat.SessionID)
	}
	if payload.Message != "reply" || len(payload.SuggestedActions) != 1 {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestManager_UnknownSession(t *testing.T) {
	m := NewManager(&fakeBackend{}, NewMemoryStore())
	defer m.Stop()

	_, err := m.Handle(context.Background(), models.ChatRequest{SessionID: "never-issued", Message: "hi"})
	if !errors.Is(err, ErrUnknownSession) {
		t.Fatalf("expected ErrUnknownSession, got %v", err)
	}
}

func TestManager_EmptyTurnRejected(t *testing.T) {
	m := NewManager(&fakeBackend{}, NewMemoryStore())
	defer m.Stop()

	opened, _ := m.Handle(context.Background(), models.ChatRequest{Language: "en"})
	_, err := m.Handle(context.Background(), models.ChatRequest{SessionID: opened.SessionID})
	if !content.IsValidation(err) {
		t.Fatalf("expected validation error for empty message, got %v", err)
	}
}

func TestManager_DegradedTurnStillAnswers(t *testing.T) {
	fb := &fakeBackend{chatFn: func(req models.ChatRequest) (*models.ChatPayload, error) {
		if req.Message == "" {
			return &models.ChatPayload{SessionID: "up-1", Message: "hi"}, nil
		}
		return nil, &content.NetworkError{Op: "POST /v1/chatbot", Err: errors.New("refused")}
	}}
	m := NewManager(fb, NewMemoryStore())
	defer m.Stop()

	opened, _ := m.Handle(context.Background(), models.ChatRequest{Language: "ar"})
	payload, err := m.Handle(context.Background(), models.ChatRequest{SessionID: opened.SessionID, Message: "hello"})
	if err != nil {
		t.Fatalf("a degraded turn must not abort the conversation, got %v", err)
	}
	if payload.Message != sendError("ar") {
		t.Fatalf("expected localized error turn, got %q", payload.Message)
	}
}

func TestManager_RestoreFromStore(t *testing.T) {
	fb := &fakeBackend{chatFn: func(req models.ChatRequest) (*models.ChatPayload, error) {
		return &models.ChatPayload{SessionID: "up-1", Message: "reply"}, nil
	}}
	store := NewMemoryStore()

	m1 := NewManager(fb, store)
	opened, _ := m1.Handle(context.Background(), models.ChatRequest{Language: "en"})
	gatewayID := opened.SessionID
	m1.Stop()

	// A fresh manager (restart) finds the session in the store.
	m2 := NewManager(fb, store)
	defer m2.Stop()
	payload, err := m2.Handle(context.Background(), models.ChatRequest{SessionID: gatewayID, Message: "still there?"})
	if err != nil {
		t.Fatalf("restored turn: %v", err)
	}
	if payload.SessionID != gatewayID {
		t.Fatalf("restored session must keep its gateway id, got %q", payload.SessionID)
	}
	if fb.lastChat.SessionID != "up-1" {
		t.Fatalf("restored session must keep its upstream id, got %q", fb.lastChat.SessionID)
	}
}

func TestManager_RateAlreadySubmitted(t *testing.T) {
	fb := &fakeBackend{chatFn: func(req models.ChatRequest) (*models.ChatPayload, error) {
		return &models.ChatPayload{SessionID: "up-1", Message: "done", IsComplete: req.Message != ""}, nil
	}}
	m := NewManager(fb, NewMemoryStore())
	defer m.Stop()

	opened, _ := m.Handle(context.Background(), models.ChatRequest{Language: "en"})
	gatewayID := opened.SessionID
	if _, err := m.Handle(context.Background(), models.ChatRequest{SessionID: gatewayID, Message: "finish"}); err != nil {
		t.Fatalf("turn: %v", err)
	}

	payload, err := m.Rate(context.Background(), models.RatingRequest{SessionID: gatewayID, Rating: 5})
	if err != nil {
		t.Fatalf("rating: %v", err)
	}
	if payload.SessionID != gatewayID {
		t.Fatalf("rating payload must carry the gateway id, got %q", payload.SessionID)
	}

	payload, err = m.Rate(context.Background(), models.RatingRequest{SessionID: gatewayID, Rating: 3})
	if payload != nil || err != nil {
		t.Fatalf("repeat rating must be a silent no-op, got %v %v", payload, err)
	}
	if fb.rateCalls != 1 {
		t.Fatalf("rating must hit the upstream exactly once, saw %d", fb.rateCalls)
	}
}

type recordingArchiver struct {
	ids  []string
	recs []Record
}

func (r *recordingArchiver) ArchiveSession(_ context.Context, id string, rec Record) error {
	r.ids = append(r.ids, id)
	r.recs = append(r.recs, rec)
	return nil
}

func TestManager_ArchivesCompletedSessions(t *testing.T) {
	fb := &fakeBackend{chatFn: func(req models.ChatRequest) (*models.ChatPayload, error) {
		return &models.ChatPayload{SessionID: "up-1", Message: "done", IsComplete: req.Message != "", LeadScore: 90}, nil
	}}
	arch := &recordingArchiver{}
	m := NewManager(fb, NewMemoryStore(), WithArchiver(arch))
	defer m.Stop()

	opened, _ := m.Handle(context.Background(), models.ChatRequest{Language: "en"})
	if _, err := m.Handle(context.Background(), models.ChatRequest{SessionID: opened.SessionID, Message: "finish"}); err != nil {
		t.Fatalf("turn: %v", err)
	}

	if len(arch.ids) != 1 || arch.ids[0] != opened.SessionID {
		t.Fatalf("completed session not archived: %v", arch.ids)
	}
	if arch.recs[0].LeadScore != 90 || !arch.recs[0].Complete {
		t.Fatalf("unexpected archived record: %+v", arch.recs[0])
	}
}

func TestRestore_DerivesState(t *testing.T) {
	fb := &fakeBackend{}
	cases := []struct {
		rec  Record
		want State
	}{
		{Record{}, StateClosed},
		{Record{Opened: true}, StateConversing},
		{Record{Opened: true, Complete: true}, StateCompleted},
		{Record{Opened: true, Complete: true, RatingSubmitted: true}, StateRatingSubmitted},
	}
	for _, tc := range cases {
		s := Restore(fb, tc.rec)
		if s.State() != tc.want {
			t.Fatalf("Restore(%+v) state = %v, want %v", tc.rec, s.State(), tc.want)
		}
	}
}

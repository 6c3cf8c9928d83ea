package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mo-sami19/zynk/content"
	"github.com/mo-sami19/zynk/models"
)

type fakeBackend struct {
	chatFn    func(req models.ChatRequest) (*models.ChatPayload, error)
	rateFn    func(req models.RatingRequest) (*models.RatingPayload, error)
	chatCalls int
	rateCalls int
	lastChat  models.ChatRequest
	lastRate  models.RatingRequest
}

func (f *fakeBackend) Chat(_ context.Context, req models.ChatRequest) (*models.ChatPayload, error) {
	f.chatCalls++
	f.lastChat = req
	if f.chatFn != nil {
		return f.chatFn(req)
	}
	return &models.ChatPayload{SessionID: "abc", Message: "hello"}, nil
}

func (f *fakeBackend) RateChat(_ context.Context, req models.RatingRequest) (*models.RatingPayload, error) {
	f.rateCalls++
	f.lastRate = req
	if f.rateFn != nil {
		return f.rateFn(req)
	}
	return &models.RatingPayload{SessionID: req.SessionID}, nil
}

func TestOpen_HandshakeOnce(t *testing.T) {
	fb := &fakeBackend{chatFn: func(req models.ChatRequest) (*models.ChatPayload, error) {
		if req.SessionID != "" || req.Message != "" {
			t.Fatalf("handshake must carry only the language, got %+v", req)
		}
		return &models.ChatPayload{SessionID: "abc", Message: "hi", SuggestedActions: []string{"a", "b"}}, nil
	}}
	s := NewSession(fb, "en")

	res, err := s.Open(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.BotMessage != "hi" || len(res.SuggestedActions) != 2 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if s.SessionID() != "abc" {
		t.Fatalf("session id not captured, got %q", s.SessionID())
	}

	// Repeated opens return the current greeting without another handshake.
	res2, err := s.Open(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fb.chatCalls != 1 {
		t.Fatalf("handshake fired %d times, want 1", fb.chatCalls)
	}
	if res2.BotMessage != "hi" {
		t.Fatalf("unexpected repeated-open result: %+v", res2)
	}
}

func TestOpen_OfflineGreeting(t *testing.T) {
	fb := &fakeBackend{chatFn: func(models.ChatRequest) (*models.ChatPayload, error) {
		return nil, &content.NetworkError{Op: "POST /v1/chatbot", Err: errors.New("refused")}
	}}
	s := NewSession(fb, "ar")

	res, err := s.Open(context.Background())
	if err != nil {
		t.Fatalf("offline open must not fail, got %v", err)
	}
	if !res.Degraded {
		t.Fatal("offline greeting must be marked degraded")
	}
	if res.BotMessage != greeting("ar") {
		t.Fatalf("expected canned arabic greeting, got %q", res.BotMessage)
	}
	if len(res.SuggestedActions) != len(offlineSuggestions("ar")) {
		t.Fatalf("expected canned suggestions, got %v", res.SuggestedActions)
	}
	if s.State() != StateConversing {
		t.Fatalf("offline session must stay usable, state %v", s.State())
	}
}

func TestSend_SessionIDContinuity(t *testing.T) {
	fb := &fakeBackend{}
	s := NewSession(fb, "en")
	if _, err := s.Open(context.Background()); err != nil {
		t.Fatalf("open: %v", err)
	}

	if _, err := s.Send(context.Background(), "first message"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if fb.lastChat.SessionID != "abc" {
		t.Fatalf("turn must echo the server's session id, got %q", fb.lastChat.SessionID)
	}
	if fb.lastChat.Language != "en" {
		t.Fatalf("turn must carry the session language, got %q", fb.lastChat.Language)
	}
}

func TestSend_OptimisticAppendAndSuggestionClear(t *testing.T) {
	fb := &fakeBackend{chatFn: func(req models.ChatRequest) (*models.ChatPayload, error) {
		if req.Message == "" {
			return &models.ChatPayload{SessionID: "abc", Message: "hi", SuggestedActions: []string{"quick"}}, nil
		}
		return nil, errors.New("backend down")
	}}
	s := NewSession(fb, "en")
	s.Open(context.Background())
	if len(s.SuggestedActions()) != 1 {
		t.Fatalf("expected initial suggestions, got %v", s.SuggestedActions())
	}

	res, err := s.Send(context.Background(), "  hello there  ")
	if err == nil {
		t.Fatal("expected surfaced backend error")
	}
	if res == nil || res.BotMessage != sendError("en") {
		t.Fatalf("expected localized error turn, got %+v", res)
	}
	if len(s.SuggestedActions()) != 0 {
		t.Fatalf("suggestions must be cleared before dispatch, got %v", s.SuggestedActions())
	}

	// The user turn stays in the transcript even though the send failed.
	tr := s.Transcript()
	var sawUser bool
	for _, m := range tr {
		if m.Role == models.ChatRoleUser && m.Content == "hello there" {
			sawUser = true
		}
	}
	if !sawUser {
		t.Fatalf("optimistic user turn missing from transcript: %+v", tr)
	}
	if s.State() != StateConversing {
		t.Fatalf("failed turn must leave the session usable, state %v", s.State())
	}
}

func TestSend_Guards(t *testing.T) {
	fb := &fakeBackend{}
	s := NewSession(fb, "en")

	if _, err := s.Send(context.Background(), "hi"); !errors.Is(err, ErrNotOpen) {
		t.Fatalf("expected ErrNotOpen before handshake, got %v", err)
	}
	s.Open(context.Background())
	if _, err := s.Send(context.Background(), "   "); !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}
	if _, err := s.Send(context.Background(), strings.Repeat("x", content.MaxChatMessageLength+1)); !content.IsValidation(err) {
		t.Fatalf("expected validation error for oversized message, got %v", err)
	}
	if fb.chatCalls != 1 {
		t.Fatalf("rejected sends must not reach the backend, saw %d calls", fb.chatCalls)
	}
}

func TestSend_SessionIDMismatchDropsResponse(t *testing.T) {
	fb := &fakeBackend{chatFn: func(req models.ChatRequest) (*models.ChatPayload, error) {
		if req.Message == "" {
			return &models.ChatPayload{SessionID: "abc", Message: "hi"}, nil
		}
		return &models.ChatPayload{SessionID: "other", Message: "stolen"}, nil
	}}
	s := NewSession(fb, "en")
	s.Open(context.Background())

	res, err := s.Send(context.Background(), "hello")
	var pe *content.ProtocolError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ProtocolError, got %v", err)
	}
	if res == nil || res.BotMessage != sendError("en") {
		t.Fatalf("mismatched response must be replaced by an error turn, got %+v", res)
	}
	for _, m := range s.Transcript() {
		if m.Content == "stolen" {
			t.Fatal("mismatched payload must never enter the transcript")
		}
	}
	if s.SessionID() != "abc" {
		t.Fatalf("session id must be unchanged, got %q", s.SessionID())
	}
}

func TestCompletion_Monotonic(t *testing.T) {
	fb := &fakeBackend{chatFn: func(req models.ChatRequest) (*models.ChatPayload, error) {
		if req.Message == "" {
			return &models.ChatPayload{SessionID: "abc", Message: "hi"}, nil
		}
		return &models.ChatPayload{SessionID: "abc", Message: "thanks", IsComplete: true, LeadScore: 80}, nil
	}}
	s := NewSession(fb, "en")
	s.Open(context.Background())

	res, err := s.Send(context.Background(), "my email is a@b.c")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if !res.IsComplete || res.LeadScore != 80 {
		t.Fatalf("unexpected completion result: %+v", res)
	}
	if s.State() != StateCompleted {
		t.Fatalf("expected completed state, got %v", s.State())
	}

	if _, err := s.Send(context.Background(), "one more"); !errors.Is(err, ErrCompleted) {
		t.Fatalf("completed session must refuse further turns, got %v", err)
	}
}

func TestSubmitRating_SingleSubmit(t *testing.T) {
	fb := &fakeBackend{chatFn: func(req models.ChatRequest) (*models.ChatPayload, error) {
		return &models.ChatPayload{SessionID: "abc", Message: "done", IsComplete: req.Message != ""}, nil
	}}
	s := NewSession(fb, "en")
	s.Open(context.Background())
	s.Send(context.Background(), "finish")

	if _, err := s.SubmitRating(context.Background(), 5, "great"); err != nil {
		t.Fatalf("rating: %v", err)
	}
	if fb.lastRate.SessionID != "abc" || fb.lastRate.Rating != 5 {
		t.Fatalf("unexpected rating request: %+v", fb.lastRate)
	}
	if !s.RatingSubmitted() || s.State() != StateRatingSubmitted {
		t.Fatalf("rating state not recorded, state %v", s.State())
	}

	payload, err := s.SubmitRating(context.Background(), 4, "again")
	if payload != nil || err != nil {
		t.Fatalf("repeat submission must be a no-op, got %v %v", payload, err)
	}
	if fb.rateCalls != 1 {
		t.Fatalf("rating must hit the backend exactly once, saw %d", fb.rateCalls)
	}
}

func TestSubmitRating_Guards(t *testing.T) {
	fb := &fakeBackend{}
	s := NewSession(fb, "en")
	s.Open(context.Background())

	if _, err := s.SubmitRating(context.Background(), 5, ""); !errors.Is(err, ErrNotCompleted) {
		t.Fatalf("expected ErrNotCompleted, got %v", err)
	}
}

func TestSubmitRating_FailureAllowsRetry(t *testing.T) {
	fail := true
	fb := &fakeBackend{
		chatFn: func(req models.ChatRequest) (*models.ChatPayload, error) {
			return &models.ChatPayload{SessionID: "abc", Message: "done", IsComplete: req.Message != ""}, nil
		},
		rateFn: func(req models.RatingRequest) (*models.RatingPayload, error) {
			if fail {
				return nil, errors.New("backend down")
			}
			return &models.RatingPayload{SessionID: req.SessionID}, nil
		},
	}
	s := NewSession(fb, "en")
	s.Open(context.Background())
	s.Send(context.Background(), "finish")

	if _, err := s.SubmitRating(context.Background(), 5, ""); err == nil {
		t.Fatal("expected rating failure")
	}
	if s.RatingSubmitted() {
		t.Fatal("failed submission must not latch the submitted flag")
	}
	if s.State() != StateCompleted {
		t.Fatalf("failed submission must return to completed, got %v", s.State())
	}

	fail = false
	if _, err := s.SubmitRating(context.Background(), 5, ""); err != nil {
		t.Fatalf("retry after failure: %v", err)
	}
	if !s.RatingSubmitted() {
		t.Fatal("retry must succeed")
	}
}

func TestReset_ClearsEverythingAtomically(t *testing.T) {
	fb := &fakeBackend{chatFn: func(req models.ChatRequest) (*models.ChatPayload, error) {
		return &models.ChatPayload{SessionID: "abc", Message: "hi", SuggestedActions: []string{"a"}, IsComplete: req.Message != ""}, nil
	}}
	s := NewSession(fb, "en")
	s.Open(context.Background())
	s.Send(context.Background(), "finish")

	s.Reset()
	if s.SessionID() != "" || len(s.Transcript()) != 0 || len(s.SuggestedActions()) != 0 {
		t.Fatal("reset must clear session id, transcript and suggestions together")
	}
	if s.Completed() || s.RatingSubmitted() {
		t.Fatal("reset must clear completion and rating state")
	}
	if s.State() != StateOpening {
		t.Fatalf("expected opening state after reset, got %v", s.State())
	}

	// A fresh handshake runs with no session id.
	if _, err := s.Open(context.Background()); err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if fb.lastChat.SessionID != "" {
		t.Fatalf("post-reset handshake must not carry the old id, got %q", fb.lastChat.SessionID)
	}
}

func TestReset_DropsInFlightCompletion(t *testing.T) {
	block := make(chan struct{})
	sending := make(chan struct{})
	fb := &fakeBackend{chatFn: func(req models.ChatRequest) (*models.ChatPayload, error) {
		if req.Message != "" {
			close(sending)
			<-block
		}
		return &models.ChatPayload{SessionID: "abc", Message: "late reply"}, nil
	}}
	s := NewSession(fb, "en")
	s.Open(context.Background())

	done := make(chan error, 1)
	go func() {
		_, err := s.Send(context.Background(), "hello")
		done <- err
	}()

	// Reset while the turn is in flight, then release the backend.
	<-sending
	s.Reset()
	close(block)

	if err := <-done; !errors.Is(err, ErrReset) {
		t.Fatalf("completion from before the reset must be dropped, got %v", err)
	}
	if len(s.Transcript()) != 0 {
		t.Fatalf("late reply must not reach the new conversation: %+v", s.Transcript())
	}
}

package chat

import (
	"context"
	"log/slog"
	"sync"

	"portfolio-chat-backend/internal/types"
)

// Session pairs a State with a Sender and enforces single-flight: at most one
// relay call is outstanding, and submits made meanwhile are dropped.
type Session struct {
	mu     sync.Mutex
	state  State
	sender Sender
	log    *slog.Logger
}

func NewSession(sender Sender, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{sender: sender, log: logger}
}

// State returns a snapshot.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) SetInput(text string) {
	s.dispatch(InputChanged{Text: text})
}

// Submit sends the current input and blocks until the relay answers. It
// returns false when the submit was ignored.
func (s *Session) Submit(ctx context.Context) bool {
	history, ok := s.Begin()
	if !ok {
		return false
	}
	s.Deliver(ctx, history)
	return true
}

// Begin applies a submit without sending. It returns the history to deliver,
// or false when the input is blank or a request is already in flight.
func (s *Session) Begin() ([]types.Message, bool) {
	next, effect := s.dispatch(Submit{})
	if effect != EffectSend {
		return nil, false
	}
	return next.Messages, true
}

// Deliver sends a history returned by Begin and settles the session with the
// reply or the failure text.
func (s *Session) Deliver(ctx context.Context, history []types.Message) {
	s.log.Debug("sending conversation", "messages", len(history))
	reply, err := s.sender.Send(ctx, history)
	if err != nil {
		s.log.Error("chat error", "error", err)
		s.dispatch(RequestFailed{Err: ErrorText(err)})
		return
	}
	s.dispatch(ReplyReceived{Message: reply})
}

func (s *Session) dispatch(ev Event) (State, Effect) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, effect := Reduce(s.state, ev)
	s.state = next
	return next, effect
}

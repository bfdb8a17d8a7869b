// Package chat holds the client side of the conversation: a pure reducer over
// the transcript and request lifecycle, and the HTTP client for the relay.
package chat

import (
	"strings"

	"portfolio-chat-backend/internal/types"
)

// State is everything the client renders. Err is an overlay and may be set
// while the client is otherwise idle.
type State struct {
	Messages []types.Message
	Input    string
	Sending  bool
	Err      string
}

// Event is an input to Reduce.
type Event interface{ isEvent() }

type InputChanged struct{ Text string }

type Submit struct{}

// ReplyReceived settles a successful request. Message is nil when the relay
// answered without one.
type ReplyReceived struct{ Message *types.Message }

type RequestFailed struct{ Err string }

func (InputChanged) isEvent()  {}
func (Submit) isEvent()        {}
func (ReplyReceived) isEvent() {}
func (RequestFailed) isEvent() {}

// Effect tells the caller what to do after a transition.
type Effect int

const (
	EffectNone Effect = iota
	// EffectSend asks the caller to post the new State.Messages to the relay.
	EffectSend
)

// Reduce returns the next state. It never mutates s.
func Reduce(s State, ev Event) (State, Effect) {
	switch e := ev.(type) {
	case InputChanged:
		if s.Sending {
			return s, EffectNone
		}
		s.Input = e.Text
		return s, EffectNone

	case Submit:
		if s.Sending || strings.TrimSpace(s.Input) == "" {
			return s, EffectNone
		}
		s.Messages = appendMessage(s.Messages, types.Message{Role: types.RoleUser, Content: s.Input})
		s.Input = ""
		s.Sending = true
		s.Err = ""
		return s, EffectSend

	case ReplyReceived:
		if e.Message != nil {
			s.Messages = appendMessage(s.Messages, *e.Message)
		}
		s.Sending = false
		return s, EffectNone

	case RequestFailed:
		s.Err = e.Err
		s.Sending = false
		return s, EffectNone
	}
	return s, EffectNone
}

// CanSubmit reports whether a Submit would start a request.
func (s State) CanSubmit() bool {
	return !s.Sending && strings.TrimSpace(s.Input) != ""
}

// appendMessage copies so earlier states keep their own backing array.
func appendMessage(msgs []types.Message, m types.Message) []types.Message {
	out := make([]types.Message, len(msgs), len(msgs)+1)
	copy(out, msgs)
	return append(out, m)
}

package chat

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-chat-backend/internal/config"
	"portfolio-chat-backend/internal/server"
	"portfolio-chat-backend/internal/types"
)

type blockingSender struct {
	calls   atomic.Int32
	started chan struct{}
	release chan struct{}
	reply   *types.Message
	err     error
}

func newBlockingSender() *blockingSender {
	return &blockingSender{started: make(chan struct{}, 1), release: make(chan struct{})}
}

func (b *blockingSender) Send(_ context.Context, _ []types.Message) (*types.Message, error) {
	b.calls.Add(1)
	b.started <- struct{}{}
	<-b.release
	return b.reply, b.err
}

type stubCompleter struct{ reply types.Message }

func (s stubCompleter) Complete(context.Context, []types.Message) (types.Message, error) {
	return s.reply, nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSession_SubmitWhileSendingIsNoop(t *testing.T) {
	reply := assistant("done")
	sender := newBlockingSender()
	sender.reply = &reply
	s := NewSession(sender, quietLogger())

	s.SetInput("first")
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		assert.True(t, s.Submit(context.Background()))
	}()

	select {
	case <-sender.started:
	case <-time.After(2 * time.Second):
		t.Fatal("first request never started")
	}
	require.True(t, s.State().Sending)

	s.SetInput("second")
	assert.False(t, s.Submit(context.Background()))
	assert.Len(t, s.State().Messages, 1)
	assert.Equal(t, int32(1), sender.calls.Load())

	close(sender.release)
	wg.Wait()

	st := s.State()
	assert.False(t, st.Sending)
	assert.Equal(t, []types.Message{user("first"), reply}, st.Messages)
	assert.Equal(t, int32(1), sender.calls.Load())
}

func TestSession_FailureReturnsToSubmittable(t *testing.T) {
	sender := newBlockingSender()
	sender.err = errors.New("Groq API error: 429")
	close(sender.release)
	s := NewSession(sender, quietLogger())

	s.SetInput("Tell me a joke")
	assert.True(t, s.Submit(context.Background()))

	st := s.State()
	assert.False(t, st.Sending)
	assert.Equal(t, "Groq API error: 429", st.Err)
	assert.Equal(t, []types.Message{user("Tell me a joke")}, st.Messages)

	s.SetInput("again")
	assert.True(t, s.State().CanSubmit())
}

func TestSession_EmptyInputIgnored(t *testing.T) {
	sender := newBlockingSender()
	s := NewSession(sender, quietLogger())

	s.SetInput("   ")
	assert.False(t, s.Submit(context.Background()))
	assert.Zero(t, sender.calls.Load())
	assert.Empty(t, s.State().Messages)
}

func TestSession_AgainstRelay(t *testing.T) {
	relay := server.NewServerWithCompleter(
		config.Config{GroqAPIKey: "gsk-test", AllowedOrigin: "*"},
		stubCompleter{reply: assistant("Yavuz writes TypeScript.")},
		quietLogger(),
	)
	ts := httptest.NewServer(relay.Router())
	defer ts.Close()

	s := NewSession(NewRelayClient(ts.URL, ts.Client()), quietLogger())
	s.SetInput("What does Yavuz write?")
	require.True(t, s.Submit(context.Background()))

	st := s.State()
	assert.Empty(t, st.Err)
	assert.Equal(t, []types.Message{user("What does Yavuz write?"), assistant("Yavuz writes TypeScript.")}, st.Messages)

	s.SetInput("And in his spare time?")
	require.True(t, s.Submit(context.Background()))
	assert.Len(t, s.State().Messages, 4)
}

func TestSession_AgainstMisconfiguredRelay(t *testing.T) {
	relay := server.NewServerWithCompleter(config.Config{AllowedOrigin: "*"}, stubCompleter{}, quietLogger())
	ts := httptest.NewServer(relay.Router())
	defer ts.Close()

	s := NewSession(NewRelayClient(ts.URL, ts.Client()), quietLogger())
	s.SetInput("hello")
	s.Submit(context.Background())

	st := s.State()
	assert.False(t, st.Sending)
	assert.Equal(t, "GROQ_API_KEY environment variable is missing", st.Err)
	assert.Equal(t, []types.Message{user("hello")}, st.Messages)
}

func TestSession_BeginThenDeliver(t *testing.T) {
	reply := assistant("hello")
	sender := newBlockingSender()
	sender.reply = &reply
	close(sender.release)
	s := NewSession(sender, quietLogger())

	s.SetInput("hi")
	history, ok := s.Begin()
	require.True(t, ok)
	assert.Equal(t, []types.Message{user("hi")}, history)
	assert.True(t, s.State().Sending)
	assert.Empty(t, s.State().Input)

	s.SetInput("again")
	_, ok = s.Begin()
	assert.False(t, ok)
	assert.Zero(t, sender.calls.Load())

	s.Deliver(context.Background(), history)

	st := s.State()
	assert.False(t, st.Sending)
	assert.Equal(t, []types.Message{user("hi"), reply}, st.Messages)
	assert.Equal(t, int32(1), sender.calls.Load())
}

package logic

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Bumblebig/UniSupport/models"
	"github.com/Bumblebig/UniSupport/pkg"

	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	mu        sync.Mutex
	rows      []models.Message
	loadErr   error
	appendErr error
}

func (s *fakeStore) LoadHistory(owner string) ([]models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	var out []models.Message
	for _, m := range s.rows {
		if m.UID == owner {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *fakeStore) Append(msg *models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.appendErr != nil {
		return s.appendErr
	}
	s.rows = append(s.rows, *msg)
	return nil
}

func (s *fakeStore) stored() []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Message, len(s.rows))
	copy(out, s.rows)
	return out
}

type fakeChat struct {
	mu        sync.Mutex
	calls     int
	lenAtCall int
	output    string
	err       error
	block     chan struct{}

	session *ChatSession
}

func (c *fakeChat) Send(message, userID string) (string, error) {
	c.mu.Lock()
	c.calls++
	if c.session != nil {
		c.lenAtCall = len(c.session.Messages())
	}
	block := c.block
	output, err := c.output, c.err
	c.mu.Unlock()

	if block != nil {
		<-block
	}
	return output, err
}

func (c *fakeChat) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

func TestSubmitDelivered(t *testing.T) {
	store := &fakeStore{}
	chat := &fakeChat{output: "Reset your portal password from the help desk page."}
	s := NewChatSession("u1", store, chat)
	chat.session = s

	result, err := s.Submit("  I forgot my portal password  ")
	require.NoError(t, err)
	require.True(t, result.Delivered)
	require.Equal(t, models.RoleAssistant, result.Reply.Role)
	require.Equal(t, chat.output, result.Reply.Content)

	// The user turn was rendered before the network call started.
	require.Equal(t, 1, chat.lenAtCall)

	msgs := s.Messages()
	require.Len(t, msgs, 2)
	require.Equal(t, models.RoleUser, msgs[0].Role)
	require.Equal(t, "I forgot my portal password", msgs[0].Content)
	require.Equal(t, "u1", msgs[0].UID)

	// Both turns persisted, user turn first, sequence strictly increasing.
	stored := store.stored()
	require.Len(t, stored, 2)
	require.Equal(t, models.RoleUser, stored[0].Role)
	require.Equal(t, models.RoleAssistant, stored[1].Role)
	require.Greater(t, stored[1].Seq, stored[0].Seq)

	require.Equal(t, PhaseIdle, s.Phase())
}

func TestSubmitEmptyInput(t *testing.T) {
	store := &fakeStore{}
	chat := &fakeChat{output: "hi"}
	s := NewChatSession("u1", store, chat)

	for _, input := range []string{"", "   ", "\n\t "} {
		_, err := s.Submit(input)
		require.ErrorIs(t, err, ErrEmptyMessage)
	}
	require.Empty(t, s.Messages())
	require.Zero(t, chat.callCount())
}

func TestSubmitWhileInFlight(t *testing.T) {
	store := &fakeStore{}
	chat := &fakeChat{output: "ok", block: make(chan struct{})}
	s := NewChatSession("u1", store, chat)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = s.Submit("first question")
	}()

	// Wait for the first submission to reach the network call.
	require.Eventually(t, func() bool {
		return chat.callCount() == 1
	}, time.Second, time.Millisecond)

	before := len(s.Messages())
	_, err := s.Submit("second question")
	require.ErrorIs(t, err, ErrExchangeInFlight)
	require.Equal(t, before, len(s.Messages()))
	require.Equal(t, 1, chat.callCount())

	close(chat.block)
	<-done

	// The latch is released once the exchange completes.
	chat.mu.Lock()
	chat.block = nil
	chat.mu.Unlock()
	result, err := s.Submit("second question")
	require.NoError(t, err)
	require.True(t, result.Delivered)
}

func TestSubmitNoOutputField(t *testing.T) {
	store := &fakeStore{}
	chat := &fakeChat{err: pkg.ErrNoOutput}
	s := NewChatSession("u1", store, chat)

	result, err := s.Submit("hello?")
	require.NoError(t, err)
	require.False(t, result.Delivered)
	require.Equal(t, FallbackNoOutput, result.Reply.Content)

	msgs := s.Messages()
	require.Len(t, msgs, 2)
	require.Equal(t, models.RoleAssistant, msgs[1].Role)

	// Failures are surfaced but never persisted.
	require.Empty(t, store.stored())
	require.Equal(t, PhaseIdle, s.Phase())
}

func TestSubmitTransportFailure(t *testing.T) {
	store := &fakeStore{}
	chat := &fakeChat{err: errors.New("connection refused")}
	s := NewChatSession("u1", store, chat)

	result, err := s.Submit("hello?")
	require.NoError(t, err)
	require.False(t, result.Delivered)
	require.Equal(t, FallbackTransport, result.Reply.Content)
	require.Empty(t, store.stored())

	// The next submission is accepted after a failure.
	chat.mu.Lock()
	chat.err = nil
	chat.output = "back online"
	chat.mu.Unlock()
	result, err = s.Submit("hello again")
	require.NoError(t, err)
	require.True(t, result.Delivered)
}

func TestSubmitMalformedBody(t *testing.T) {
	store := &fakeStore{}
	chat := &fakeChat{err: fmt.Errorf("%w: literal text not-json", pkg.ErrInvalidResponse)}
	s := NewChatSession("u1", store, chat)

	result, err := s.Submit("hello?")
	require.NoError(t, err)
	require.False(t, result.Delivered)
	require.Equal(t, FallbackTransport, result.Reply.Content)
	require.Empty(t, store.stored())
	require.Equal(t, PhaseIdle, s.Phase())
}

func TestHistoryRoundTrip(t *testing.T) {
	store := &fakeStore{}
	chat := &fakeChat{}
	s := NewChatSession("u1", store, chat)

	const n = 3
	for i := 0; i < n; i++ {
		chat.mu.Lock()
		chat.output = fmt.Sprintf("answer %d", i)
		chat.mu.Unlock()
		_, err := s.Submit(fmt.Sprintf("question %d", i))
		require.NoError(t, err)
	}

	// A fresh session hydrates 2N messages, alternating user/assistant
	// in the order they occurred.
	fresh := NewChatSession("u1", store, chat)
	msgs := fresh.Messages()
	require.Len(t, msgs, 2*n)
	for i, msg := range msgs {
		if i%2 == 0 {
			require.Equal(t, models.RoleUser, msg.Role)
			require.Equal(t, fmt.Sprintf("question %d", i/2), msg.Content)
		} else {
			require.Equal(t, models.RoleAssistant, msg.Role)
			require.Equal(t, fmt.Sprintf("answer %d", i/2), msg.Content)
		}
		if i > 0 {
			require.Greater(t, msg.Seq, msgs[i-1].Seq)
		}
	}

	// New turns continue the sequence instead of reusing it.
	chat.mu.Lock()
	chat.output = "one more"
	chat.mu.Unlock()
	result, err := fresh.Submit("again")
	require.NoError(t, err)
	require.Greater(t, result.Reply.Seq, msgs[len(msgs)-1].Seq)
}

func TestHydrateLoadFailure(t *testing.T) {
	store := &fakeStore{loadErr: errors.New("store down")}
	chat := &fakeChat{output: "still here"}
	s := NewChatSession("u1", store, chat)

	// Degrades silently to an empty transcript; chatting still works.
	require.Empty(t, s.Messages())
	store.mu.Lock()
	store.loadErr = nil
	store.mu.Unlock()
	result, err := s.Submit("anyone there?")
	require.NoError(t, err)
	require.True(t, result.Delivered)
}

func TestStoreWriteFailureKeepsTranscript(t *testing.T) {
	store := &fakeStore{appendErr: errors.New("write refused")}
	chat := &fakeChat{output: "noted"}
	s := NewChatSession("u1", store, chat)

	result, err := s.Submit("remember this")
	require.NoError(t, err)
	require.True(t, result.Delivered)

	// Store failures never roll back the optimistic transcript.
	require.Len(t, s.Messages(), 2)
	require.Empty(t, store.stored())
}

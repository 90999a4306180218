package logic

import (
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/Bumblebig/UniSupport/models"
	"github.com/Bumblebig/UniSupport/pkg"

	"github.com/google/uuid"
)

// Phase is the state of one exchange. A submission walks
// Idle -> Sending -> AwaitingReply -> Delivered|Failed -> Idle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSending
	PhaseAwaitingReply
	PhaseDelivered
	PhaseFailed
)

// Canned assistant replies. These are appended to the live transcript so
// the user sees the failure, but they are never written to the store.
const (
	FallbackNoOutput  = "Sorry, something went wrong. Please try again."
	FallbackTransport = "Sorry, I'm having trouble responding right now. Please try again later."
)

var (
	ErrEmptyMessage     = errors.New("exchange: message is empty")
	ErrExchangeInFlight = errors.New("exchange: a prior exchange is still in flight")
)

// MessageStore persists conversation turns for an owner
type MessageStore interface {
	LoadHistory(owner string) ([]models.Message, error)
	Append(msg *models.Message) error
}

// ChatCaller sends one user message to the support AI
type ChatCaller interface {
	Send(message, userID string) (string, error)
}

// Result describes the outcome of one submission
type Result struct {
	Reply     models.Message `json:"reply"`
	Delivered bool           `json:"delivered"`
}

// ChatSession holds the live transcript and exchange state for one owner.
// At most one exchange is in flight at a time; Submit while busy is
// rejected without touching the transcript.
type ChatSession struct {
	owner string
	store MessageStore
	chat  ChatCaller

	mu       sync.Mutex
	phase    Phase
	inFlight bool
	messages []models.Message
	nextSeq  uint64
}

// NewChatSession hydrates a session from stored history. A failed load is
// logged and the session starts empty; the user can still chat.
func NewChatSession(owner string, store MessageStore, chat ChatCaller) *ChatSession {
	s := &ChatSession{
		owner:   owner,
		store:   store,
		chat:    chat,
		phase:   PhaseIdle,
		nextSeq: 1,
	}

	history, err := store.LoadHistory(owner)
	if err != nil {
		log.Printf("Failed to load history for %s: %v", owner, err)
		return s
	}
	s.messages = history
	for _, msg := range history {
		if msg.Seq >= s.nextSeq {
			s.nextSeq = msg.Seq + 1
		}
	}
	return s
}

// Owner returns the owner this session belongs to
func (s *ChatSession) Owner() string {
	return s.owner
}

// Phase returns the current state of the exchange machine
func (s *ChatSession) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Messages returns a copy of the live transcript
func (s *ChatSession) Messages() []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Submit runs one exchange: optimistically append the user turn, call the
// support AI, append the reply, persist both turns. Empty input and
// submissions while a prior exchange is in flight are rejected with the
// transcript untouched.
func (s *ChatSession) Submit(input string) (*Result, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil, ErrEmptyMessage
	}

	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return nil, ErrExchangeInFlight
	}
	s.inFlight = true
	s.phase = PhaseSending

	// Optimistic append: the user turn is visible before any network call.
	userMsg := models.Message{
		ID:        uuid.New(),
		Role:      models.RoleUser,
		Content:   trimmed,
		Seq:       s.nextSeq,
		Timestamp: time.Now().UTC(),
		UID:       s.owner,
	}
	s.nextSeq++
	s.messages = append(s.messages, userMsg)
	s.phase = PhaseAwaitingReply
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.phase = PhaseIdle
		s.inFlight = false
		s.mu.Unlock()
	}()

	output, err := s.chat.Send(trimmed, s.owner)
	if err != nil {
		return s.fail(err), nil
	}

	s.mu.Lock()
	s.phase = PhaseDelivered
	reply := models.Message{
		ID:        uuid.New(),
		Role:      models.RoleAssistant,
		Content:   output,
		Seq:       s.nextSeq,
		Timestamp: time.Now().UTC(),
		UID:       s.owner,
	}
	s.nextSeq++
	s.messages = append(s.messages, reply)
	s.mu.Unlock()

	// Two independent writes; the sequence numbers keep a concurrent
	// reader from seeing the reply sorted ahead of its question. A write
	// failure diverges store from transcript and is only logged.
	if err := s.store.Append(&userMsg); err != nil {
		log.Printf("Failed to persist user message for %s: %v", s.owner, err)
	}
	if err := s.store.Append(&reply); err != nil {
		log.Printf("Failed to persist assistant message for %s: %v", s.owner, err)
	}

	return &Result{Reply: reply, Delivered: true}, nil
}

// fail appends the canned reply for err to the transcript. Failed
// exchanges are never persisted; the user turn keeps its sequence number
// and the gap is harmless since ordering only needs monotonicity.
func (s *ChatSession) fail(err error) *Result {
	content := FallbackTransport
	if errors.Is(err, pkg.ErrNoOutput) {
		content = FallbackNoOutput
	}
	log.Printf("Exchange failed for %s: %v", s.owner, err)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.phase = PhaseFailed
	reply := models.Message{
		ID:        uuid.New(),
		Role:      models.RoleAssistant,
		Content:   content,
		Timestamp: time.Now().UTC(),
		UID:       s.owner,
	}
	s.messages = append(s.messages, reply)
	return &Result{Reply: reply, Delivered: false}
}

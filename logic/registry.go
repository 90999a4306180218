package logic

import (
	"sync"

	"github.com/Bumblebig/UniSupport/models"
)

// SessionRegistry hands out one ChatSession per owner, hydrating it from
// the store on first use. Sessions are dropped on sign-out so the next
// login re-hydrates from durable history.
type SessionRegistry struct {
	store MessageStore
	chat  ChatCaller

	mu       sync.Mutex
	sessions map[string]*ChatSession
}

func NewSessionRegistry(store MessageStore, chat ChatCaller) *SessionRegistry {
	return &SessionRegistry{
		store:    store,
		chat:     chat,
		sessions: make(map[string]*ChatSession),
	}
}

// Session returns the live session for owner, creating it if needed
func (r *SessionRegistry) Session(owner string) *ChatSession {
	r.mu.Lock()
	if s, ok := r.sessions[owner]; ok {
		r.mu.Unlock()
		return s
	}
	r.mu.Unlock()

	// Hydration queries the store; do it outside the registry lock.
	s := NewChatSession(owner, r.store, r.chat)

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.sessions[owner]; ok {
		return existing
	}
	r.sessions[owner] = s
	return s
}

// Drop forgets the live session for owner
func (r *SessionRegistry) Drop(owner string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, owner)
}

// Watch drops sessions when their owner signs out. The returned function
// stops watching.
func (r *SessionRegistry) Watch(provider SessionProvider) func() {
	return provider.Subscribe(func(ev models.SessionEvent) {
		if !ev.Active {
			r.Drop(ev.UID)
		}
	})
}

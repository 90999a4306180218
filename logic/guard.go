package logic

import (
	"sync"

	"github.com/Bumblebig/UniSupport/models"
)

// SessionProvider is the capability the guard observes. It is injected
// rather than reached for globally so views and tests can supply their
// own.
type SessionProvider interface {
	Subscribe(fn func(models.SessionEvent)) func()
}

// Guard tracks the authenticated owner for one view. On a sign-out
// notification it clears the owner and invokes onSignedOut so the view
// can navigate back to login. Close unsubscribes; after that the guard
// stops updating.
type Guard struct {
	mu     sync.Mutex
	owner  string
	authed bool
	unsub  func()

	onSignedOut func()
}

func NewGuard(provider SessionProvider, onSignedOut func()) *Guard {
	g := &Guard{onSignedOut: onSignedOut}
	g.unsub = provider.Subscribe(g.handle)
	return g
}

// Owner returns the current owner id and whether the view is
// authenticated
func (g *Guard) Owner() (string, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.owner, g.authed
}

// Close tears down the subscription. Safe to call more than once.
func (g *Guard) Close() {
	g.mu.Lock()
	unsub := g.unsub
	g.unsub = nil
	g.mu.Unlock()
	if unsub != nil {
		unsub()
	}
}

func (g *Guard) handle(ev models.SessionEvent) {
	g.mu.Lock()
	if ev.Active {
		g.owner = ev.UID
		g.authed = true
		g.mu.Unlock()
		return
	}

	// Ignore sign-outs for other owners.
	if g.owner != "" && g.owner != ev.UID {
		g.mu.Unlock()
		return
	}
	g.owner = ""
	g.authed = false
	cb := g.onSignedOut
	g.mu.Unlock()

	if cb != nil {
		cb()
	}
}

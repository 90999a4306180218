package logic

import (
	"testing"

	"github.com/Bumblebig/UniSupport/models"
)

func TestRegistryReusesSessions(t *testing.T) {
	registry := NewSessionRegistry(&fakeStore{}, &fakeChat{})

	a := registry.Session("u1")
	b := registry.Session("u1")
	if a != b {
		t.Fatal("same owner got two different sessions")
	}

	other := registry.Session("u2")
	if other == a {
		t.Fatal("different owners share a session")
	}
}

func TestRegistryDropsOnSignOut(t *testing.T) {
	registry := NewSessionRegistry(&fakeStore{}, &fakeChat{})
	provider := &fakeProvider{}
	stop := registry.Watch(provider)
	defer stop()

	before := registry.Session("u1")
	provider.emit(models.SessionEvent{UID: "u1", Active: false})

	after := registry.Session("u1")
	if before == after {
		t.Fatal("session survived its owner's sign-out")
	}

	// Logins do not disturb live sessions.
	provider.emit(models.SessionEvent{UID: "u1", Active: true})
	if registry.Session("u1") != after {
		t.Fatal("login event replaced a live session")
	}
}

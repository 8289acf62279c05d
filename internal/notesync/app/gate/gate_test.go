package gate_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"notesync/internal/notesync/adapters/notify"
	"notesync/internal/notesync/app/gate"
	"notesync/internal/notesync/domain/entities"
)

// fakeSession источник состояния сессии, управляемый тестом.
type fakeSession struct {
	mu        sync.Mutex
	state     entities.SessionState
	listeners map[int]func(entities.SessionState)
	nextID    int
}

func newFakeSession(state entities.SessionState) *fakeSession {
	return &fakeSession{state: state, listeners: map[int]func(entities.SessionState){}}
}

func (f *fakeSession) State() entities.SessionState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *fakeSession) Subscribe(fn func(entities.SessionState)) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	id := f.nextID
	f.listeners[id] = fn
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.listeners, id)
	}
}

func (f *fakeSession) set(state entities.SessionState) {
	f.mu.Lock()
	f.state = state
	listeners := make([]func(entities.SessionState), 0, len(f.listeners))
	for _, l := range f.listeners {
		listeners = append(listeners, l)
	}
	f.mu.Unlock()

	for _, l := range listeners {
		l(state)
	}
}

func redirects(feed *notify.Feed) int {
	count := 0
	for _, n := range feed.Drain() {
		if n.Kind == entities.NotificationRedirect {
			count++
		}
	}
	return count
}

func TestGate_Decide(t *testing.T) {
	tests := []struct {
		name     string
		state    entities.SessionState
		decision gate.Decision
		err      error
	}{
		{name: "resolving", state: entities.Resolving(), decision: gate.DecisionLoading, err: gate.ErrSessionResolving},
		{name: "unresolved", state: entities.SessionState{}, decision: gate.DecisionLoading, err: gate.ErrSessionResolving},
		{name: "anonymous", state: entities.Anonymous(), decision: gate.DecisionRedirect, err: gate.ErrAuthenticationRequired},
		{
			name:     "authenticated",
			state:    entities.Authenticated(entities.Identity{ID: "u1"}),
			decision: gate.DecisionPermit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := gate.New(newFakeSession(tt.state), notify.NewFeed(8))

			assert.Equal(t, tt.decision, g.Decide())
			if tt.err == nil {
				assert.NoError(t, g.Allow())
			} else {
				assert.ErrorIs(t, g.Allow(), tt.err)
			}
		})
	}
}

func TestGate_RedirectOncePerTransition(t *testing.T) {
	session := newFakeSession(entities.Resolving())
	feed := notify.NewFeed(16)
	g := gate.New(session, feed)
	g.Start(context.Background())
	defer g.Stop()

	assert.Zero(t, redirects(feed))

	session.set(entities.Anonymous())
	session.set(entities.Anonymous())
	assert.Equal(t, 1, redirects(feed))

	session.set(entities.Resolving())
	session.set(entities.Authenticated(entities.Identity{ID: "u1"}))
	assert.Zero(t, redirects(feed))

	session.set(entities.Resolving())
	session.set(entities.Anonymous())
	assert.Equal(t, 1, redirects(feed))
}

func TestGate_StartInAnonymousRedirects(t *testing.T) {
	session := newFakeSession(entities.Anonymous())
	feed := notify.NewFeed(4)
	g := gate.New(session, feed)

	g.Start(context.Background())

	items := feed.Drain()
	if assert.Len(t, items, 1) {
		assert.Equal(t, entities.NotificationRedirect, items[0].Kind)
		assert.Equal(t, gate.MsgAuthenticationRequired, items[0].Message)
	}
}

func TestGate_StopUnsubscribes(t *testing.T) {
	session := newFakeSession(entities.Resolving())
	feed := notify.NewFeed(4)
	g := gate.New(session, feed)
	g.Start(context.Background())

	g.Stop()
	session.set(entities.Anonymous())

	assert.Zero(t, redirects(feed))
	assert.Equal(t, gate.DecisionRedirect, g.Decide())
}

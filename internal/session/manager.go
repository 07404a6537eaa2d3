package session

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/Ko-stant/gridmaze/internal/ws"
)

// Entry is a live session together with the hub its patches go to.
type Entry struct {
	Session     *Session
	Hub         *ws.Hub
	Broadcaster *ws.Broadcaster

	lastUsed atomic.Int64
}

func (e *Entry) touch(now time.Time) { e.lastUsed.Store(now.UnixNano()) }

// LastUsed is when the session was created or last looked up.
func (e *Entry) LastUsed() time.Time { return time.Unix(0, e.lastUsed.Load()) }

// Manager keeps the sessions of the server, one per page load.
type Manager struct {
	opts   Options
	logger Logger

	mu       sync.RWMutex
	sessions map[uuid.UUID]*Entry
}

func NewManager(opts Options, logger Logger) *Manager {
	return &Manager{
		opts:     opts,
		logger:   logger,
		sessions: make(map[uuid.UUID]*Entry),
	}
}

func (m *Manager) Options() Options { return m.opts }

// Create starts a new session with its own hub.
func (m *Manager) Create() (*Entry, error) {
	id := uuid.New()
	hub := ws.NewHub()
	b := ws.NewBroadcaster(hub, nil, m.logger)

	s, err := New(id, m.opts, b, m.logger)
	if err != nil {
		return nil, err
	}
	e := &Entry{Session: s, Hub: hub, Broadcaster: b}
	e.touch(time.Now())

	m.mu.Lock()
	m.sessions[id] = e
	m.mu.Unlock()
	return e, nil
}

func (m *Manager) Get(id uuid.UUID) (*Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return e, nil
}

// Lookup parses id and returns its session, marking it as used.
func (m *Manager) Lookup(id string) (*Entry, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrSessionNotFound, id)
	}
	e, err := m.Get(parsed)
	if err != nil {
		return nil, err
	}
	e.touch(time.Now())
	return e, nil
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Close stops a session and disconnects its clients.
func (m *Manager) Close(id uuid.UUID) error {
	m.mu.Lock()
	e, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	e.Session.Close()
	e.Hub.Close()
	return nil
}

// CloseIfUnwatched closes the session once no websocket watches it. It
// reports whether the session was closed.
func (m *Manager) CloseIfUnwatched(id uuid.UUID) bool {
	m.mu.Lock()
	e, ok := m.sessions[id]
	if !ok || e.Hub.Len() > 0 {
		m.mu.Unlock()
		return false
	}
	delete(m.sessions, id)
	m.mu.Unlock()

	e.Session.Close()
	e.Hub.Close()
	m.logf("session %s closed: last client left", id)
	return true
}

// ExpireIdle closes sessions nobody watches that have not been used for
// ttl. It returns the ids it closed.
func (m *Manager) ExpireIdle(now time.Time, ttl time.Duration) []uuid.UUID {
	m.mu.Lock()
	var expired []*Entry
	for id, e := range m.sessions {
		if e.Hub.Len() == 0 && now.Sub(e.LastUsed()) >= ttl {
			expired = append(expired, e)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	ids := make([]uuid.UUID, 0, len(expired))
	for _, e := range expired {
		e.Session.Close()
		e.Hub.Close()
		ids = append(ids, e.Session.ID())
	}
	if len(ids) > 0 {
		m.logf("expired %d idle sessions", len(ids))
	}
	return ids
}

// RunExpiry calls ExpireIdle every interval until ctx is done.
func (m *Manager) RunExpiry(ctx context.Context, interval, ttl time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			m.ExpireIdle(now, ttl)
		}
	}
}

func (m *Manager) logf(format string, v ...any) {
	if m.logger != nil {
		m.logger.Printf(format, v...)
	}
}

// CloseAll stops every session.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	entries := make([]*Entry, 0, len(m.sessions))
	for id, e := range m.sessions {
		entries = append(entries, e)
		delete(m.sessions, id)
	}
	m.mu.Unlock()

	for _, e := range entries {
		e.Session.Close()
		e.Hub.Close()
	}
}

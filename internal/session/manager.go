package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/logos-reasoner/logos/internal/engine/manager"
	"github.com/logos-reasoner/logos/internal/errs"
	"github.com/logos-reasoner/logos/internal/ontology"
)

// maxSessions is the hard cap of spec.md §7 ("Max concurrent sessions
// 1000; exceeding returns SessionLimit").
const maxSessions = 1000

const (
	defaultTTL = 30 * time.Minute
	maxTTL     = 24 * time.Hour
)

// Manager owns the session table: a single lock around the map, a session
// ID counter (delegated to uuid), and the background reaper timer (spec.md
// §4.I "Shared resources").
type Manager struct {
	engines *manager.Manager

	mu       sync.RWMutex
	sessions map[string]*Session

	reapInterval time.Duration
	stop         chan struct{}
	stopped      chan struct{}
}

// NewManager builds a Manager backed by engines and starts its background
// TTL reaper goroutine; callers must call Close to stop it.
func NewManager(engines *manager.Manager) *Manager {
	m := &Manager{
		engines:      engines,
		sessions:     map[string]*Session{},
		reapInterval: time.Minute,
		stop:         make(chan struct{}),
		stopped:      make(chan struct{}),
	}
	go m.reapLoop()
	return m
}

// CreateOptions configures Create.
type CreateOptions struct {
	TTL            time.Duration // 0 means defaultTTL; clamped to [0,maxTTL]
	EnableOntology bool
}

// Create allocates a new session with an opaque UUID, enforcing the
// max-concurrent-sessions limit (spec.md §7).
func (m *Manager) Create(opts CreateOptions) (*Session, error) {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if ttl > maxTTL {
		ttl = maxTTL
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sessions) >= maxSessions {
		return nil, errs.New(errs.CodeSessionLimit, "max concurrent sessions (%d) exceeded", maxSessions)
	}

	var ont *ontology.Ontology
	if opts.EnableOntology {
		o, err := ontology.New()
		if err != nil {
			return nil, err
		}
		ont = o
	}

	now := time.Now()
	s := &Session{
		ID:             uuid.NewString(),
		CreatedAt:      now,
		LastAccessedAt: now,
		TTL:            ttl,
		Ontology:       ont,
		mgr:            m.engines,
	}
	m.sessions[s.ID] = s
	return s, nil
}

// Get returns the session with id, or CodeSessionNotFound.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, errs.New(errs.CodeSessionNotFound, "no session %q", id)
	}
	return s, nil
}

// Delete removes and closes the session with id.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	m.mu.Unlock()
	if !ok {
		return errs.New(errs.CodeSessionNotFound, "no session %q", id)
	}
	return s.Clear()
}

// List returns every live session's ID.
func (m *Manager) List() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		out = append(out, id)
	}
	return out
}

// Close stops the reaper goroutine and clears every session. Reaper
// errors are logged by the caller's logger, not here; this just releases
// resources (spec.md §5 "Session reaper errors are logged and swallowed").
func (m *Manager) Close() {
	close(m.stop)
	<-m.stopped

	m.mu.Lock()
	sessions := m.sessions
	m.sessions = map[string]*Session{}
	m.mu.Unlock()

	for _, s := range sessions {
		_ = s.Clear()
	}
}

func (m *Manager) reapLoop() {
	defer close(m.stopped)
	ticker := time.NewTicker(m.reapInterval)
	defer ticker.Stop()
	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			m.reapExpired()
		}
	}
}

func (m *Manager) reapExpired() {
	now := time.Now()
	m.mu.Lock()
	var expired []*Session
	for id, s := range m.sessions {
		if s.Expired(now) {
			expired = append(expired, s)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range expired {
		_ = s.Clear() // errors are swallowed per spec.md §5
	}
}

// reapOnce runs one reaper pass synchronously, for tests.
func (m *Manager) reapOnce() { m.reapExpired() }

// withReapInterval overrides the reaper's tick interval before it starts;
// only safe to call before NewManager's goroutine has ticked, so tests
// build the Manager by hand instead of via NewManager when they need this.
func newManagerWithInterval(engines *manager.Manager, interval time.Duration) *Manager {
	m := &Manager{
		engines:      engines,
		sessions:     map[string]*Session{},
		reapInterval: interval,
		stop:         make(chan struct{}),
		stopped:      make(chan struct{}),
	}
	go m.reapLoop()
	return m
}

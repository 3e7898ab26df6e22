// Package registry tracks live puzzle sessions for the game service.
//
// Sessions are engine instances, not HTTP state: both the JSON API and the
// MCP surface resolve ids through one registry so a puzzle started over one
// transport can be continued over another. Entries idle past the TTL are
// evicted lazily on access.
package registry

import (
	"errors"
	"sync"
	"time"

	"github.com/louisbranch/equinox.space/internal/platform/id"
	"github.com/louisbranch/equinox.space/internal/services/game/domain/session"
)

// DefaultTTL is how long an untouched session stays resident.
const DefaultTTL = 24 * time.Hour

// cleanupInterval controls how often expired sessions are purged.
const cleanupInterval = 5 * time.Minute

// ErrSessionNotFound indicates the id maps to no live session.
var ErrSessionNotFound = errors.New("session not found")

type entry struct {
	mu          sync.Mutex
	session     *session.Session
	lastTouched time.Time
	subscribers map[chan struct{}]struct{}
}

// Registry holds live sessions keyed by id.
type Registry struct {
	mu          sync.RWMutex
	entries     map[string]*entry
	ttl         time.Duration
	now         func() time.Time
	lastCleanup time.Time
}

// New creates a registry. A non-positive ttl falls back to DefaultTTL and
// a nil clock to time.Now.
func New(ttl time.Duration, now func() time.Time) *Registry {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if now == nil {
		now = time.Now
	}
	return &Registry{
		entries: make(map[string]*entry),
		ttl:     ttl,
		now:     now,
	}
}

// Add registers a session under a fresh id and returns the id.
func (r *Registry) Add(sess *session.Session) (string, error) {
	if sess == nil {
		return "", errors.New("session is required")
	}
	sessionID, err := id.NewID()
	if err != nil {
		return "", err
	}
	r.Put(sessionID, sess)
	return sessionID, nil
}

// Put registers or replaces the session stored under an id. Subscribers of
// a replaced entry carry over, so a load-from-save does not drop live
// board watchers.
func (r *Registry) Put(sessionID string, sess *session.Session) {
	now := r.now()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cleanupLocked(now)
	if existing, ok := r.entries[sessionID]; ok {
		existing.mu.Lock()
		existing.session = sess
		existing.lastTouched = now
		existing.mu.Unlock()
		return
	}
	r.entries[sessionID] = &entry{
		session:     sess,
		lastTouched: now,
		subscribers: make(map[chan struct{}]struct{}),
	}
}

// Do runs fn against the session for an id while holding that session's
// lock. Sessions are not safe for concurrent use, so every read or
// mutation from any transport goes through here. A successful call bumps
// the idle clock.
func (r *Registry) Do(sessionID string, fn func(*session.Session) error) error {
	now := r.now()
	r.mu.Lock()
	r.cleanupLocked(now)
	e, ok := r.entries[sessionID]
	r.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.lastTouched = now
	return fn(e.session)
}

// Remove drops a session and closes its subscriber channels.
func (r *Registry) Remove(sessionID string) {
	r.mu.Lock()
	e, ok := r.entries[sessionID]
	delete(r.entries, sessionID)
	r.mu.Unlock()
	if !ok {
		return
	}
	e.mu.Lock()
	for ch := range e.subscribers {
		close(ch)
		delete(e.subscribers, ch)
	}
	e.mu.Unlock()
}

// Len reports how many sessions are resident, evicting idle ones first.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cleanupLocked(r.now())
	return len(r.entries)
}

// Subscribe registers a watcher for a session and returns a channel that
// receives one signal per published change, plus a cancel function. The
// channel is closed when the session is removed or evicted. The second
// return is false when the id maps to no live session.
func (r *Registry) Subscribe(sessionID string) (<-chan struct{}, func(), bool) {
	r.mu.Lock()
	r.cleanupLocked(r.now())
	e, ok := r.entries[sessionID]
	r.mu.Unlock()
	if !ok {
		return nil, nil, false
	}

	ch := make(chan struct{}, 1)
	e.mu.Lock()
	e.subscribers[ch] = struct{}{}
	e.mu.Unlock()

	cancel := func() {
		e.mu.Lock()
		if _, live := e.subscribers[ch]; live {
			delete(e.subscribers, ch)
			close(ch)
		}
		e.mu.Unlock()
	}
	return ch, cancel, true
}

// Publish signals every subscriber of a session that its state changed.
// Signals coalesce: a subscriber that has not drained the previous signal
// does not queue another.
func (r *Registry) Publish(sessionID string) {
	r.mu.RLock()
	e, ok := r.entries[sessionID]
	r.mu.RUnlock()
	if !ok {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	for ch := range e.subscribers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// cleanupLocked evicts sessions idle past the TTL. Callers hold r.mu.
func (r *Registry) cleanupLocked(now time.Time) {
	if now.Sub(r.lastCleanup) < cleanupInterval {
		return
	}
	for key, e := range r.entries {
		e.mu.Lock()
		expired := now.Sub(e.lastTouched) > r.ttl
		if expired {
			for ch := range e.subscribers {
				close(ch)
				delete(e.subscribers, ch)
			}
		}
		e.mu.Unlock()
		if expired {
			delete(r.entries, key)
		}
	}
	r.lastCleanup = now
}

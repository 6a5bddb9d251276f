package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Registry maps opaque session ids (carried in bearer tokens) to Manager
// instances, one per signed-in client. Entries expire after ttl — the same
// lifetime as the bearer token — so managers left behind by clients that
// never log out are detached from the provider stream and dropped.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*registryEntry
	factory  func() *Manager
	ttl      time.Duration
	now      func() time.Time
}

type registryEntry struct {
	mgr       *Manager
	expiresAt time.Time
}

func NewRegistry(factory func() *Manager, ttl time.Duration) *Registry {
	return &Registry{
		sessions: make(map[string]*registryEntry),
		factory:  factory,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create builds a fresh manager and returns its session id. Expired entries
// are swept on the way, so abandoned sessions cannot accumulate.
func (r *Registry) Create() (string, *Manager) {
	mgr := r.factory()
	id := uuid.NewString()

	r.mu.Lock()
	now := r.now()
	var stale []*Manager
	for sid, entry := range r.sessions {
		if now.After(entry.expiresAt) {
			stale = append(stale, entry.mgr)
			delete(r.sessions, sid)
		}
	}
	r.sessions[id] = &registryEntry{mgr: mgr, expiresAt: now.Add(r.ttl)}
	r.mu.Unlock()

	for _, m := range stale {
		m.Close()
	}
	return id, mgr
}

// Get returns the session's manager. An expired entry is evicted and
// reported as missing, matching the bearer token's own expiry.
func (r *Registry) Get(id string) (*Manager, bool) {
	r.mu.Lock()
	entry, ok := r.sessions[id]
	if !ok {
		r.mu.Unlock()
		return nil, false
	}
	if r.now().After(entry.expiresAt) {
		delete(r.sessions, id)
		r.mu.Unlock()
		entry.mgr.Close()
		return nil, false
	}
	r.mu.Unlock()
	return entry.mgr, true
}

// Remove detaches and drops a session's manager.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	entry, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if ok {
		entry.mgr.Close()
	}
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

package cart

import (
	"sync"

	"github.com/gofrs/uuid"
)

// Registry hands out per-session baskets keyed by an opaque session id.
// Exactly one logical shopper mutates a given basket at a time; the registry
// only arbitrates which basket a request is talking about.
type Registry struct {
	mu    sync.Mutex
	carts map[string]*Store
}

func NewRegistry() *Registry {
	return &Registry{carts: make(map[string]*Store)}
}

// NewSession creates a fresh basket and returns its session id.
func (r *Registry) NewSession() (string, *Store, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return "", nil, err
	}

	s := NewStore()
	r.mu.Lock()
	r.carts[id.String()] = s
	r.mu.Unlock()

	return id.String(), s, nil
}

// Get returns the basket for a session id, or nil if the session is unknown.
func (r *Registry) Get(id string) *Store {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.carts[id]
}

// Drop forgets a session. Unknown ids are a no-op.
func (r *Registry) Drop(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, id)
}

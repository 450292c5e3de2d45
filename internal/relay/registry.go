package relay

import "sync"

// Registry tracks the live connection for each authenticated user. At
// most one connection per user: a newer connection replaces the older
// one.
type Registry struct {
	mu      sync.RWMutex
	clients map[uint64]*Client
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		clients: make(map[uint64]*Client),
	}
}

// Register records client as the connection for its user, replacing any
// previous one. The replaced client, if any, is returned so the caller
// can close it.
func (r *Registry) Register(client *Client) *Client {
	r.mu.Lock()
	defer r.mu.Unlock()

	previous := r.clients[client.userID]
	if previous == client {
		return nil
	}
	r.clients[client.userID] = client
	return previous
}

// Unregister removes client from the registry, but only if it is still
// the registered connection for its user. A stale client replaced by a
// reconnect must not evict its successor.
func (r *Registry) Unregister(client *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.clients[client.userID] == client {
		delete(r.clients, client.userID)
	}
}

// Get returns the live client for a user, or nil.
func (r *Registry) Get(userID uint64) *Client {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.clients[userID]
}

package signaling

import "sync"

// ConnectionRegistry tracks live connections by id. The transport layer adds
// an entry on accept and removes it when the socket goes away; room member
// ids are resolved through it at dispatch time.
type ConnectionRegistry struct {
	mu    sync.RWMutex
	conns map[string]Sender
}

func NewConnectionRegistry() *ConnectionRegistry {
	return &ConnectionRegistry{conns: make(map[string]Sender)}
}

// Add records a live connection, replacing any previous entry for the id.
func (r *ConnectionRegistry) Add(connID string, s Sender) {
	r.mu.Lock()
	r.conns[connID] = s
	r.mu.Unlock()
}

// Remove forgets a connection. Safe to call for an unknown id.
func (r *ConnectionRegistry) Remove(connID string) {
	r.mu.Lock()
	delete(r.conns, connID)
	r.mu.Unlock()
}

// Get resolves a connection id to its sender.
func (r *ConnectionRegistry) Get(connID string) (Sender, bool) {
	r.mu.RLock()
	s, ok := r.conns[connID]
	r.mu.RUnlock()
	return s, ok
}

// Count returns the number of live connections.
func (r *ConnectionRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}

package broker

import "sync"

// Registry maps live participant ids to their transport connections.
type Registry struct {
	mu    sync.RWMutex
	conns map[string]Conn
}

func NewRegistry() *Registry {
	return &Registry{
		conns: make(map[string]Conn),
	}
}

// Register - records the connection under its id. Re-registering the same
// id replaces the previous reference.
func (that *Registry) Register(conn Conn) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.conns[conn.ID()] = conn
}

// Remove - drops the connection reference. Idempotent; removing an unknown
// id is a no-op since disconnect may race with other cleanup.
func (that *Registry) Remove(participantID string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.conns, participantID)
}

func (that *Registry) Get(participantID string) (Conn, bool) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	conn, ok := that.conns[participantID]
	return conn, ok
}

func (that *Registry) Count() int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.conns)
}

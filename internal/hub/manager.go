package hub

import (
	"fmt"
	"sync"
)

// Manager holds the process's hubs, one per configured upstream server.
// The HTTP projection and the node adapter resolve hubs by server id.
//
// Thread Safety: all methods are safe for concurrent use.
type Manager struct {
	mu   sync.RWMutex
	hubs map[string]*Hub
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	return &Manager{
		hubs: make(map[string]*Hub),
	}
}

// Add registers a hub under its server id.
func (m *Manager) Add(h *Hub) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := h.ServerID()
	if _, exists := m.hubs[id]; exists {
		return fmt.Errorf("hub: server %q already registered", id)
	}
	m.hubs[id] = h
	return nil
}

// Get resolves a hub by server id.
func (m *Manager) Get(serverID string) (*Hub, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	h, ok := m.hubs[serverID]
	return h, ok
}

// Hubs returns all registered hubs.
func (m *Manager) Hubs() []*Hub {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Hub, 0, len(m.hubs))
	for _, h := range m.hubs {
		out = append(out, h)
	}
	return out
}

// StopAll stops every registered hub.
func (m *Manager) StopAll() {
	for _, h := range m.Hubs() {
		h.Stop()
	}
}

// Package store owns the mutable regional wall motion state and its
// persistence boundary. The state store is an explicit owned instance:
// construction injects the key-value backend, and tests build fresh stores
// per case.
package store

import "sync"

// KV is the persistence boundary for the motility state. Load reports
// presence explicitly so absent and empty values are distinguishable; both
// operations are local and synchronous.
type KV interface {
	Load(key string) (string, bool, error)
	Save(key, value string) error
}

// MemoryKV is a map-backed KV used by tests and ephemeral runs.
type MemoryKV struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryKV returns an empty in-memory KV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string]string)}
}

// Load returns the stored value and whether the key exists.
func (m *MemoryKV) Load(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

// Save stores the value under key, replacing any previous value.
func (m *MemoryKV) Save(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

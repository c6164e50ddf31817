// ABOUTME: Durable key-value contract behind the selection tracker
// ABOUTME: Keys are identifiers, values are notes; Keys() keeps insertion order

package selection

import "sync"

// Store is the durable key-value store selections are written to. The
// tracker treats it as optional: any failure disables persistence.
type Store interface {
	// Probe reports whether the store is usable at all.
	Probe() bool
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
	// Keys returns every key in persisted (first insertion) order.
	Keys() ([]string, error)
}

// MemoryStore is an in-process Store, mostly useful in tests and as the
// degraded fallback.
type MemoryStore struct {
	mu     sync.RWMutex
	keys   []string
	values map[string]string
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (m *MemoryStore) Probe() bool {
	return true
}

func (m *MemoryStore) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
	return nil
}

func (m *MemoryStore) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.values[key]; !ok {
		return nil
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
	return nil
}

func (m *MemoryStore) Keys() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.keys...), nil
}

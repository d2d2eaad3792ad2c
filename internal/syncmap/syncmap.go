package syncmap

import "sync"

// Map is a thread-safe map
type Map[K comparable, V any] struct {
	m   map[K]V
	mux sync.RWMutex
}

// Get returns a value from the map
func (m *Map[K, V]) Get(k K) (V, bool) {
	m.mux.RLock()
	defer m.mux.RUnlock()
	v, ok := m.m[k]
	return v, ok
}

// Put adds or replaces a value in the map
func (m *Map[K, V]) Put(k K, v V) {
	m.mux.Lock()
	defer m.mux.Unlock()
	m.m[k] = v
}

// GetOrPut returns existing value or stores the supplied one, loaded is true if value existed
func (m *Map[K, V]) GetOrPut(k K, v V) (actual V, loaded bool) {
	m.mux.Lock()
	defer m.mux.Unlock()
	if prev, ok := m.m[k]; ok {
		return prev, true
	}
	m.m[k] = v
	return v, false
}

// Len returns number of entries
func (m *Map[K, V]) Len() int {
	m.mux.RLock()
	defer m.mux.RUnlock()
	return len(m.m)
}

// Keys returns a snapshot of keys, order is unspecified
func (m *Map[K, V]) Keys() []K {
	m.mux.RLock()
	defer m.mux.RUnlock()
	var result = make([]K, 0, len(m.m))
	for k := range m.m {
		result = append(result, k)
	}
	return result
}

// Reset removes all entries
func (m *Map[K, V]) Reset() {
	m.mux.Lock()
	defer m.mux.Unlock()
	m.m = make(map[K]V)
}

// New creates a map
func New[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{m: make(map[K]V)}
}

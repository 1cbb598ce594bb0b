package utils

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value   V
	expires time.Time
}

// TTLMap provides a thread-safe map with expiring entries.
type TTLMap[K comparable, V any] struct {
	mu   sync.RWMutex
	data map[K]entry[V]
	ttl  time.Duration
}

// NewTTLMap creates a new TTLMap with the specified TTL duration.
func NewTTLMap[K comparable, V any](ttl time.Duration) *TTLMap[K, V] {
	m := &TTLMap[K, V]{
		data: make(map[K]entry[V]),
		ttl:  ttl,
	}

	go m.cleanup()

	return m
}

// Get retrieves a value from the map.
// Returns the value and whether it exists and has not expired.
func (m *TTLMap[K, V]) Get(key K) (V, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, exists := m.data[key]
	if !exists || time.Now().After(e.expires) {
		var zero V
		return zero, false
	}

	return e.value, true
}

// Set adds or updates a value in the map, resetting its TTL.
func (m *TTLMap[K, V]) Set(key K, value V) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = entry[V]{
		value:   value,
		expires: time.Now().Add(m.ttl),
	}
}

// Delete removes a key from the map.
func (m *TTLMap[K, V]) Delete(key K) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, key)
}

// cleanup periodically removes expired entries.
func (m *TTLMap[K, V]) cleanup() {
	ticker := time.NewTicker(m.ttl)
	defer ticker.Stop()

	for range ticker.C {
		m.mu.Lock()

		now := time.Now()
		for key, e := range m.data {
			if now.After(e.expires) {
				delete(m.data, key)
			}
		}

		m.mu.Unlock()
	}
}

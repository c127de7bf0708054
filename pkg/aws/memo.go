package aws

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// memo caches successful results by key. Concurrent callers for the same
// key share one in-flight call; failures are returned but never stored, so
// the next call retries.
type memo[V any] struct {
	mu     sync.RWMutex
	values map[string]V
	flight singleflight.Group
}

func (m *memo[V]) Do(key string, fn func() (V, error)) (V, error) {
	m.mu.RLock()
	v, ok := m.values[key]
	m.mu.RUnlock()
	if ok {
		return v, nil
	}

	res, err, _ := m.flight.Do(key, func() (interface{}, error) {
		v, err := fn()
		if err != nil {
			return nil, err
		}
		m.mu.Lock()
		if m.values == nil {
			m.values = make(map[string]V)
		}
		m.values[key] = v
		m.mu.Unlock()
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	out, _ := res.(V)
	return out, nil
}

// Forget drops every cached value
func (m *memo[V]) Forget() {
	m.mu.Lock()
	m.values = nil
	m.mu.Unlock()
}

func memoKey(parts ...string) string {
	key := ""
	for i, p := range parts {
		if i > 0 {
			key += "\x00"
		}
		key += p
	}
	return key
}

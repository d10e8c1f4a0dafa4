package cache

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Fingerprint is an opaque cache-validity token. Two fingerprints are
// compared only for equality; what they are computed from is the
// concern of each cached quantity (see the artifacts, scope, and
// parentselect packages' own hash functions).
type Fingerprint uint64

// Compute produces a fresh value and the fingerprint it was computed
// against, for installation in a Map on a miss or stale read.
type Compute[V any] func(ctx context.Context) (value V, fingerprint Fingerprint, err error)

type entry[V any] struct {
	value       V
	fingerprint Fingerprint
}

// Map is a fingerprinted, singleflight-deduplicated cache from K to V.
// Safe for concurrent use.
type Map[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]entry[V]
	keyStr  func(K) string
	group   singleflight.Group
}

// NewMap creates an empty Map. keyStr renders a K as the string
// singleflight groups in-flight computations by; it need not be
// injective across unrelated maps, only within one Map's own key space.
func NewMap[K comparable, V any](keyStr func(K) string) *Map[K, V] {
	return &Map[K, V]{
		entries: make(map[K]entry[V]),
		keyStr:  keyStr,
	}
}

// Get returns the cached value for key if present and its stored
// fingerprint equals want. Otherwise it calls compute exactly once per
// concurrently-missing key (later callers asking for the same key while
// a computation is in flight wait on and share that computation's
// result), installs the result, and returns it.
func (m *Map[K, V]) Get(ctx context.Context, key K, want Fingerprint, compute Compute[V]) (V, error) {
	if v, ok := m.lookup(key, want); ok {
		return v, nil
	}

	result, err, _ := m.group.Do(m.keyStr(key), func() (any, error) {
		if v, ok := m.lookup(key, want); ok {
			return v, nil
		}
		value, fp, err := compute(ctx)
		if err != nil {
			return nil, err
		}
		m.mu.Lock()
		m.entries[key] = entry[V]{value: value, fingerprint: fp}
		m.mu.Unlock()
		return value, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return result.(V), nil
}

func (m *Map[K, V]) lookup(key K, want Fingerprint) (V, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[key]
	if !ok || e.fingerprint != want {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Peek returns the cached value for key regardless of fingerprint
// validity, for callers (diagnostics, hover) that would rather show a
// possibly-stale value than block on a recomputation.
func (m *Map[K, V]) Peek(key K) (V, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[key]
	return e.value, ok
}

// Invalidate removes key's entry unconditionally.
func (m *Map[K, V]) Invalidate(key K) {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
}

// InvalidateMatching removes every entry whose key satisfies match.
func (m *Map[K, V]) InvalidateMatching(match func(K) bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.entries {
		if match(k) {
			delete(m.entries, k)
		}
	}
}

// Len reports the number of entries currently cached.
func (m *Map[K, V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Package vars holds the named text and binary variables templates read from.
package vars

import (
	"sort"
	"strings"
	"sync"
)

// DefaultName is the variable looked up when a template names none.
const DefaultName = "default"

// Reader is the read-only lookup templates evaluate against.
type Reader[V any] interface {
	Get(name string) (V, bool)
}

// Store is an in-memory name -> value map safe for concurrent use.
type Store[V any] struct {
	mu    sync.RWMutex
	items map[string]V
	clone func(V) V
}

// NewTexts constructs an empty text variable store.
func NewTexts() *Store[string] {
	return &Store[string]{
		items: make(map[string]string),
		clone: func(v string) string { return v },
	}
}

// NewBins constructs an empty binary variable store.
func NewBins() *Store[[]byte] {
	return &Store[[]byte]{
		items: make(map[string][]byte),
		clone: cloneBytes,
	}
}

func (s *Store[V]) Get(name string) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[name]
	if !ok {
		var zero V
		return zero, false
	}
	return s.clone(v), true
}

// Put upserts name. Values are copied on the way in.
func (s *Store[V]) Put(name string, value V) {
	s.mu.Lock()
	s.items[name] = s.clone(value)
	s.mu.Unlock()
}

func (s *Store[V]) Delete(name string) {
	s.mu.Lock()
	delete(s.items, name)
	s.mu.Unlock()
}

// Names lists variable names with the given prefix, sorted.
func (s *Store[V]) Names(prefix string) []string {
	s.mu.RLock()
	names := make([]string, 0, len(s.items))
	for k := range s.items {
		if prefix == "" || strings.HasPrefix(k, prefix) {
			names = append(names, k)
		}
	}
	s.mu.RUnlock()
	sort.Strings(names)
	return names
}

func (s *Store[V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Snapshot returns an immutable copy of the store taken under one read lock.
func (s *Store[V]) Snapshot() Snapshot[V] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make(map[string]V, len(s.items))
	for k, v := range s.items {
		items[k] = s.clone(v)
	}
	return Snapshot[V]{items: items, clone: s.clone}
}

// Snapshot is a point-in-time view of a Store.
type Snapshot[V any] struct {
	items map[string]V
	clone func(V) V
}

func (s Snapshot[V]) Get(name string) (V, bool) {
	v, ok := s.items[name]
	if !ok {
		var zero V
		return zero, false
	}
	return s.clone(v), true
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

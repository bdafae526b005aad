package querycache

import (
	"context"
	"sync"
	"time"
)

var _ Store = (*MemoryStore)(nil)

type memEntry struct {
	data      []byte
	stale     bool
	expiresAt time.Time // cero = no expira
}

// MemoryStore store en memoria del proceso, seguro para uso concurrente.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]*memEntry
	tags    map[string]map[string]struct{}
	now     func() time.Time
}

// NewMemoryStore crea un store vacío.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*memEntry),
		tags:    make(map[string]map[string]struct{}),
		now:     time.Now,
	}
}

func (s *MemoryStore) Load(_ context.Context, key string) (Entry, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[key]
	if !ok {
		return Entry{}, false, nil
	}
	if !e.expiresAt.IsZero() && s.now().After(e.expiresAt) {
		return Entry{}, false, nil
	}
	return Entry{Data: e.data, Stale: e.stale}, true, nil
}

func (s *MemoryStore) Save(_ context.Context, key string, data []byte, tags []string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := &memEntry{data: data}
	if ttl > 0 {
		e.expiresAt = s.now().Add(ttl)
	}
	s.entries[key] = e
	for _, t := range tags {
		if s.tags[t] == nil {
			s.tags[t] = make(map[string]struct{})
		}
		s.tags[t][key] = struct{}{}
	}
	return nil
}

// MarkStale marca obsoletas las entradas vivas de tags y devuelve sus claves.
// Las entradas expiradas se eliminan y las etiquetas quedan sin claves huérfanas.
func (s *MemoryStore) MarkStale(_ context.Context, tags ...string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	var keys []string
	for _, t := range tags {
		for key := range s.tags[t] {
			e, ok := s.entries[key]
			if !ok {
				delete(s.tags[t], key)
				continue
			}
			if !e.expiresAt.IsZero() && now.After(e.expiresAt) {
				delete(s.entries, key)
				delete(s.tags[t], key)
				continue
			}
			if !e.stale {
				e.stale = true
				keys = append(keys, key)
			}
		}
	}
	return keys, nil
}

package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

type entry struct {
	data    []byte
	expires time.Time
}

// MemoryStore is an in-memory implementation of Store.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

// NewMemoryStore creates a new instance of MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Load returns a copy of the state stored under id.
func (s *MemoryStore) Load(_ context.Context, id string) (*State, error) {
	s.mu.Lock()
	e, ok := s.entries[id]
	if ok && !e.expires.IsZero() && s.now().After(e.expires) {
		delete(s.entries, id)
		ok = false
	}
	s.mu.Unlock()
	if !ok {
		return nil, ErrSessionNotFound
	}

	// round-trip through JSON so callers never share maps with the store
	st := NewState()
	if err := json.Unmarshal(e.data, st); err != nil {
		return nil, err
	}
	return st, nil
}

// Save stores state under id. A zero ttl never expires.
func (s *MemoryStore) Save(_ context.Context, id string, state *State, ttl time.Duration) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	e := entry{data: data}
	if ttl > 0 {
		e.expires = s.now().Add(ttl)
	}
	s.mu.Lock()
	s.entries[id] = e
	s.mu.Unlock()
	return nil
}

// Delete removes the state stored under id.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.entries, id)
	s.mu.Unlock()
	return nil
}

// Sweep drops expired sessions.
func (s *MemoryStore) Sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for id, e := range s.entries {
		if !e.expires.IsZero() && now.After(e.expires) {
			delete(s.entries, id)
		}
	}
}

// StartSweeper runs Sweep every interval until ctx is done.
func (s *MemoryStore) StartSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

// Len reports how many sessions are stored.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

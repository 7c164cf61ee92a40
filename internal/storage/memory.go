package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/YashSadhu/mentme/internal/model"
)

// MemoryStore is an in-process Store for tests and ephemeral sessions. It
// serializes snapshots the same way the sqlite store does, so round-trip
// behavior matches production.
type MemoryStore struct {
	mu       sync.Mutex
	snapshot []byte
	saves    int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(ctx context.Context) (model.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapshot == nil {
		return model.State{}, ErrNotFound
	}
	var state model.State
	if err := json.Unmarshal(s.snapshot, &state); err != nil {
		return model.State{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return state, nil
}

func (s *MemoryStore) Save(ctx context.Context, state model.State) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = payload
	s.saves++
	return nil
}

// Saves reports how many times Save succeeded. Test hook.
func (s *MemoryStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

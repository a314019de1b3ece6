package storage

import (
	"context"
	"sync"
)

//goland:noinspection GoExportedFuncWithUnexportedType
func NewMemory() *memoryStore {
	return &memoryStore{values: make(map[string]string)}
}

// memoryStore keeps everything in process memory. Used by tests and by
// ephemeral runs; contents vanish on exit.
type memoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func (s *memoryStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

func (s *memoryStore) Set(ctx context.Context, key string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	return nil
}

func (s *memoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, key)
	return nil
}

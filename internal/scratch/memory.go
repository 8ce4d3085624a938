package scratch

import (
	"context"
	"sync"
)

type memoryKey struct {
	owner int64
	key   string
}

// MemoryStore черновики в памяти процесса, без срока жизни
type MemoryStore struct {
	mu     sync.RWMutex
	values map[memoryKey]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[memoryKey]string)}
}

func (s *MemoryStore) Set(_ context.Context, owner int64, key, value string) error {
	s.mu.Lock()
	s.values[memoryKey{owner, key}] = value
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Get(_ context.Context, owner int64, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[memoryKey{owner, key}]
	return v, ok, nil
}

func (s *MemoryStore) Delete(_ context.Context, owner int64, key string) error {
	s.mu.Lock()
	delete(s.values, memoryKey{owner, key})
	s.mu.Unlock()
	return nil
}

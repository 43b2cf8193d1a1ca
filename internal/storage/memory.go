package storage

import (
	"fmt"
	"sort"
	"sync"

	"github.com/dmitrijs2005/sitekeeper/internal/common"
)

// MemStorage is an in-memory Storage used by tests and isolated instances.
type MemStorage struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemStorage() *MemStorage {
	return &MemStorage{data: make(map[string][]byte)}
}

func (s *MemStorage) Get(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.data[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", common.ErrNotFound, key)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (s *MemStorage) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]byte, len(value))
	copy(stored, value)
	s.data[key] = stored
	return nil
}

func (s *MemStorage) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

func (s *MemStorage) Keys() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

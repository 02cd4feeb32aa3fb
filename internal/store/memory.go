package store

import (
	"sync"
)

// MemoryKV is a concurrency-safe in-memory key-value store.
type MemoryKV struct {
	mu     sync.RWMutex
	data   map[string]string
	closed bool
}

// NewMemoryKV creates an empty MemoryKV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{
		data: make(map[string]string),
	}
}

func (s *MemoryKV) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return "", false, ErrClosed
	}
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *MemoryKV) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	s.data[key] = value
	return nil
}

func (s *MemoryKV) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}

package database

import (
	"context"
	"sync"
)

// MemoryStore keeps slots in process memory. It backs tests and the
// "memory" store type.
type MemoryStore struct {
	mutex   sync.RWMutex
	entries map[string][]byte
	putErr  error
	getErr  error
	puts    int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string][]byte)}
}

func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if s.getErr != nil {
		return nil, s.getErr
	}
	value, ok := s.entries[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return append([]byte(nil), value...), nil
}

func (s *MemoryStore) Put(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.putErr != nil {
		return s.putErr
	}
	s.entries[key] = append([]byte(nil), value...)
	s.puts++
	return nil
}

// FailPuts makes every following Put return err; nil restores normal writes.
func (s *MemoryStore) FailPuts(err error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.putErr = err
}

// FailGets makes every following Get return err; nil restores normal reads.
func (s *MemoryStore) FailGets(err error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.getErr = err
}

// Puts returns the number of successful writes.
func (s *MemoryStore) Puts() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.puts
}

package storage

import (
	"context"
	"sync"
)

// MemorySlot keeps the slot contents in memory. Used by tests and by
// ephemeral runs where durability is not wanted.
type MemorySlot struct {
	mu      sync.Mutex
	data    []byte
	written bool
}

func NewMemorySlot() *MemorySlot {
	return &MemorySlot{}
}

func (s *MemorySlot) Load(_ context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.written {
		return nil, nil
	}
	out := make([]byte, len(s.data))
	copy(out, s.data)
	return out, nil
}

func (s *MemorySlot) Store(_ context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make([]byte, len(data))
	copy(s.data, data)
	s.written = true
	return nil
}

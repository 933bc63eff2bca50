package quotastore

import (
	"context"
	"sync"

	"github.com/yanqian/agristack/internal/domain/quota"
)

// MemoryStore keeps the daily counter in process memory. It is not persisted across restarts.
type MemoryStore struct {
	mu    sync.Mutex
	day   string
	count int
}

// NewMemoryStore constructs a store backed by process memory.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Admit implements quota.Store.
func (s *MemoryStore) Admit(_ context.Context, day string, ceiling int) (quota.Decision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.day != day {
		s.day = day
		s.count = 0
	}
	if s.count >= ceiling {
		return quota.Decision{Admitted: false, Count: s.count}, nil
	}
	s.count++
	return quota.Decision{Admitted: true, Count: s.count}, nil
}

var _ quota.Store = (*MemoryStore)(nil)

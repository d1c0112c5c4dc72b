package snapshot

import (
	"context"
	"sync"
	"time"

	"github.com/hamed0406/pagewatch/internal/domain"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore is the in-process backend used by tests and local dev.
type MemoryStore struct {
	mu    sync.RWMutex
	snaps map[string]domain.Snapshot
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{snaps: make(map[string]domain.Snapshot)}
}

func (s *MemoryStore) Exists(ctx context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.snaps[key]
	return ok, nil
}

func (s *MemoryStore) Load(ctx context.Context, key string) (*domain.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.snaps[key]
	if !ok {
		return nil, nil
	}
	cp := snap
	return &cp, nil
}

func (s *MemoryStore) Save(ctx context.Context, key string, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snaps[key] = domain.Snapshot{Timestamp: time.Now().UTC(), Text: text}
	return nil
}

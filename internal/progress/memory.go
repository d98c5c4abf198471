package progress

import (
	"context"
	"sync"

	"github.com/shaiso/Simplify/internal/domain"
)

// MemoryStore — хранилище прогресса в памяти процесса.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]domain.Progress
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore создаёт пустое хранилище.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]domain.Progress)}
}

func (s *MemoryStore) Get(_ context.Context, flowID string) (domain.Progress, error) {
	if flowID == "" {
		return domain.Progress{}, ErrEmptyFlowID
	}

	s.mu.RLock()
	p, ok := s.items[flowID]
	s.mu.RUnlock()

	if !ok {
		return domain.EmptyProgress(flowID), nil
	}
	return clone(p), nil
}

func (s *MemoryStore) Save(_ context.Context, p domain.Progress) error {
	if p.FlowID == "" {
		return ErrEmptyFlowID
	}

	s.mu.Lock()
	s.items[p.FlowID] = clone(p)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, flowID string) error {
	if flowID == "" {
		return ErrEmptyFlowID
	}

	s.mu.Lock()
	delete(s.items, flowID)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Close() error { return nil }

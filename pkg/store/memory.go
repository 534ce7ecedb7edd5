package store

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore keeps saved views in process memory.
// Suitable for development and tests; contents vanish on restart.
type MemoryStore struct {
	mu    sync.RWMutex
	views map[string]SavedView
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{views: make(map[string]SavedView)}
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*SavedView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.views[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &v, nil
}

func (s *MemoryStore) List(ctx context.Context) ([]SavedView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]SavedView, 0, len(s.views))
	for _, v := range s.views {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *MemoryStore) Save(ctx context.Context, v *SavedView) error {
	if err := prepare(v); err != nil {
		return err
	}
	s.mu.Lock()
	s.views[v.ID] = *v
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.views[id]; !ok {
		return ErrNotFound
	}
	delete(s.views, id)
	return nil
}

func (s *MemoryStore) Close() error {
	s.mu.Lock()
	s.views = make(map[string]SavedView)
	s.mu.Unlock()
	return nil
}

var _ Store = (*MemoryStore)(nil)

package trip

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"
)

type InMemoryRepository struct {
	mu      sync.RWMutex
	results map[uuid.UUID]*Result
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{results: make(map[uuid.UUID]*Result)}
}

func (r *InMemoryRepository) Save(_ context.Context, res *Result) error {
	if res.ID == uuid.Nil {
		res.ID = uuid.New()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results[res.ID] = res
	return nil
}

func (r *InMemoryRepository) FindByID(_ context.Context, id uuid.UUID) (*Result, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res, ok := r.results[id]
	if !ok {
		return nil, ErrNotFound
	}
	return res, nil
}

// ListByUser returns the user's results, newest first.
func (r *InMemoryRepository) ListByUser(_ context.Context, userID string) ([]*Result, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Result
	for _, res := range r.results {
		if res.UserID == userID {
			out = append(out, res)
		}
	}
	slices.SortFunc(out, func(a, b *Result) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return out, nil
}

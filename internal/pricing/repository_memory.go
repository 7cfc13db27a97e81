package pricing

import (
	"context"
	"strings"
	"sync"
)

type InMemoryRepository struct {
	mu   sync.RWMutex
	rows map[string]ReferencePrice
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{rows: make(map[string]ReferencePrice)}
}

func (r *InMemoryRepository) List(ctx context.Context) ([]ReferencePrice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := make([]ReferencePrice, 0, len(r.rows))
	for _, row := range r.rows {
		rows = append(rows, row)
	}
	SortRows(rows)
	return rows, nil
}

func (r *InMemoryRepository) Upsert(ctx context.Context, row ReferencePrice) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rows[NormalizeItem(row.Item)+"|"+strings.ToLower(row.Chain)] = row
	return nil
}

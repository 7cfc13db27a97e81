package pricing

import "context"

// Repository persists reference price overrides.
type Repository interface {
	List(ctx context.Context) ([]ReferencePrice, error)
	Upsert(ctx context.Context, row ReferencePrice) error
}

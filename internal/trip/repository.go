package trip

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists optimization results.
type Repository interface {
	Save(ctx context.Context, r *Result) error
	FindByID(ctx context.Context, id uuid.UUID) (*Result, error)
	ListByUser(ctx context.Context, userID string) ([]*Result, error)
}

// Archiver keeps a durable copy of a result outside the database.
type Archiver interface {
	Archive(ctx context.Context, r *Result) error
}

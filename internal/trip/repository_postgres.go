package trip

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// --------------------------------------------------
// Save a result (full document in payload)
// --------------------------------------------------
func (r *PostgresRepository) Save(ctx context.Context, res *Result) error {
	if res.ID == uuid.Nil {
		res.ID = uuid.New()
	}

	payload, err := json.Marshal(res)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO trips (id, user_id, status, payload, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`,
		res.ID,
		res.UserID,
		string(res.Status),
		payload,
		res.CreatedAt,
	)
	return err
}

// --------------------------------------------------
// Load one result
// --------------------------------------------------
func (r *PostgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*Result, error) {
	var payload []byte
	err := r.db.QueryRow(ctx, `
		SELECT payload
		FROM trips
		WHERE id = $1
	`, id).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var res Result
	if err := json.Unmarshal(payload, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// --------------------------------------------------
// List a user's results, newest first
// --------------------------------------------------
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*Result, error) {
	rows, err := r.db.Query(ctx, `
		SELECT payload
		FROM trips
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 100
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Result
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var res Result
		if err := json.Unmarshal(payload, &res); err != nil {
			return nil, err
		}
		out = append(out, &res)
	}
	return out, rows.Err()
}

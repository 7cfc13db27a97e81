package pricing

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// --------------------------------------------------
// List all reference price overrides
// --------------------------------------------------
func (r *PostgresRepository) List(ctx context.Context) ([]ReferencePrice, error) {
	rows, err := r.db.Query(ctx, `
		SELECT item, chain, price
		FROM reference_prices
		ORDER BY item, chain
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var prices []ReferencePrice
	for rows.Next() {
		var p ReferencePrice
		if err := rows.Scan(&p.Item, &p.Chain, &p.Price); err != nil {
			return nil, err
		}
		prices = append(prices, p)
	}

	return prices, rows.Err()
}

// --------------------------------------------------
// Insert or update one (item, chain) price
// --------------------------------------------------
func (r *PostgresRepository) Upsert(ctx context.Context, row ReferencePrice) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO reference_prices (item, chain, price)
		VALUES ($1, $2, $3)
		ON CONFLICT (item, chain)
		DO UPDATE SET
			price = EXCLUDED.price,
			updated_at = now()
	`,
		NormalizeItem(row.Item),
		row.Chain,
		row.Price,
	)

	return err
}

package category

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// List returns category rows ordered by ord then id.
func (r *PostgresRepository) List(ctx context.Context, limit int) ([]Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, image, ord FROM category ORDER BY ord DESC, id LIMIT $1`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "list categories")
	}
	defer rows.Close()

	out := make([]Category, 0)
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Image, &c.Ord); err != nil {
			return nil, errors.Wrap(err, "scan category")
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Save(ctx context.Context, items []Category) error {
	for _, c := range items {
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO category (id, name, image, ord) VALUES ($1, $2, $3, $4) ON CONFLICT (id) DO NOTHING`,
			c.ID, c.Name, c.Image, c.Ord); err != nil {
			return errors.Wrap(err, "insert category")
		}
	}
	return nil
}

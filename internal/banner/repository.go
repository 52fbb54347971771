package banner

import (
	"context"
	"database/sql"
	"sort"
	"sync"

	"github.com/pkg/errors"
)

type Repository interface {
	List(ctx context.Context, limit int) ([]Banner, error)
	Save(ctx context.Context, items []Banner) error
}

type InMemoryRepository struct {
	mu    sync.RWMutex
	items []Banner
}

func NewInMemoryRepository(seed []Banner) *InMemoryRepository {
	return &InMemoryRepository{items: append([]Banner(nil), seed...)}
}

func (r *InMemoryRepository) List(ctx context.Context, limit int) ([]Banner, error) {
	r.mu.RLock()
	out := append([]Banner{}, r.items...)
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].Ord > out[j].Ord })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *InMemoryRepository) Save(ctx context.Context, items []Banner) error {
	r.mu.Lock()
	r.items = append(r.items, items...)
	r.mu.Unlock()
	return nil
}

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context, limit int) ([]Banner, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, image, title, link, ord FROM banner ORDER BY ord DESC, id LIMIT $1`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "list banners")
	}
	defer rows.Close()

	out := make([]Banner, 0)
	for rows.Next() {
		var b Banner
		if err := rows.Scan(&b.ID, &b.Image, &b.Title, &b.Link, &b.Ord); err != nil {
			return nil, errors.Wrap(err, "scan banner")
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Save(ctx context.Context, items []Banner) error {
	for _, b := range items {
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO banner (id, image, title, link, ord) VALUES ($1, $2, $3, $4, $5) ON CONFLICT (id) DO NOTHING`,
			b.ID, b.Image, b.Title, b.Link, b.Ord); err != nil {
			return errors.Wrap(err, "insert banner")
		}
	}
	return nil
}

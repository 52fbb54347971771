package order

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
)

type PostgresRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

const (
	orderColumns = `id, reference, user_id, user_email, items, total_amount, payment_method, shipping_address, status, created_at, updated_at`

	insertOrderQuery = `
		INSERT INTO orders (id, reference, user_id, user_email, items, total_amount, payment_method, shipping_address, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	getOrderByIDQuery      = `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	listOrdersQuery        = `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC, id`
	listOrdersByUserQuery  = `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY created_at DESC, id`
	updateOrderStatusQuery = `UPDATE orders SET status = $2, updated_at = $3 WHERE id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, o Order) (Order, error) {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return Order{}, errors.Wrap(err, "marshal items")
	}
	addr, err := json.Marshal(o.ShippingAddress)
	if err != nil {
		return Order{}, errors.Wrap(err, "marshal shipping address")
	}
	if _, err := r.db.ExecContext(ctx, insertOrderQuery,
		o.ID, o.Reference, o.UserID, o.UserEmail, items, o.TotalAmount, o.PaymentMethod, addr, string(o.Status), o.CreatedAt,
	); err != nil {
		return Order{}, errors.Wrap(err, "insert order")
	}
	return o, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx, getOrderByIDQuery, id))
	if err == sql.ErrNoRows {
		return Order{}, ErrNotFound
	}
	if err != nil {
		return Order{}, errors.Wrap(err, "get order")
	}
	return o, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]Order, error) {
	return r.query(ctx, listOrdersQuery)
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	return r.query(ctx, listOrdersByUserQuery, userID)
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id string, status Status, at time.Time) error {
	res, err := r.db.ExecContext(ctx, updateOrderStatusQuery, id, string(status), at)
	if err != nil {
		return errors.Wrap(err, "update order status")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) query(ctx context.Context, query string, args ...any) ([]Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "list orders")
	}
	defer rows.Close()

	out := make([]Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan order")
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func scanOrder(scanner rowScanner) (Order, error) {
	var (
		o         Order
		items     []byte
		addr      []byte
		status    string
		updatedAt sql.NullTime
	)
	if err := scanner.Scan(&o.ID, &o.Reference, &o.UserID, &o.UserEmail, &items, &o.TotalAmount,
		&o.PaymentMethod, &addr, &status, &o.CreatedAt, &updatedAt); err != nil {
		return Order{}, err
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return Order{}, errors.Wrap(err, "decode items")
	}
	if len(addr) > 0 {
		if err := json.Unmarshal(addr, &o.ShippingAddress); err != nil {
			return Order{}, errors.Wrap(err, "decode shipping address")
		}
	}
	o.Status = NormalizeStatus(status)
	if updatedAt.Valid {
		t := updatedAt.Time
		o.UpdatedAt = &t
	}
	return o, nil
}

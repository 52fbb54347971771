package backend

import (
	"context"
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pkg/errors"
)

// OpenPostgres opens and pings a pgx-backed database handle.
func OpenPostgres(ctx context.Context, url string) (*sql.DB, error) {
	if url == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}
	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, errors.Wrap(err, "open postgres")
	}
	pingCtx, cancel := WithTimeout(ctx, DefaultTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "ping postgres")
	}
	return db, nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		uid TEXT PRIMARY KEY,
		email TEXT UNIQUE NOT NULL,
		display_name TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL DEFAULT 'customer',
		password_hash TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		price BIGINT NOT NULL DEFAULT 0,
		original_price BIGINT NOT NULL DEFAULT 0,
		discount INT NOT NULL DEFAULT 0,
		category TEXT NOT NULL DEFAULT '',
		stock_quantity INT NOT NULL DEFAULT 0,
		rating DOUBLE PRECISION NOT NULL DEFAULT 0,
		reviews INT NOT NULL DEFAULT 0,
		image TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS addresses (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		name TEXT NOT NULL,
		phone TEXT NOT NULL,
		house_no TEXT NOT NULL,
		road_name TEXT NOT NULL,
		city TEXT NOT NULL,
		state TEXT NOT NULL,
		pin_code TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS addresses_user_id_idx ON addresses (user_id, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id TEXT PRIMARY KEY,
		reference TEXT NOT NULL DEFAULT '',
		user_id TEXT NOT NULL,
		user_email TEXT NOT NULL DEFAULT '',
		items JSONB NOT NULL DEFAULT '[]',
		total_amount BIGINT NOT NULL DEFAULT 0,
		payment_method TEXT NOT NULL DEFAULT '',
		shipping_address JSONB NOT NULL DEFAULT '{}',
		status TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ
	)`,
	`CREATE INDEX IF NOT EXISTS orders_user_id_idx ON orders (user_id, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS category (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		image TEXT NOT NULL DEFAULT '',
		ord INT NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS banner (
		id TEXT PRIMARY KEY,
		image TEXT NOT NULL DEFAULT '',
		title TEXT NOT NULL DEFAULT '',
		link TEXT NOT NULL DEFAULT '',
		ord INT NOT NULL DEFAULT 0
	)`,
}

// EnsureSchema creates the tables used by the postgres repositories.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return errors.Wrap(err, "ensure schema")
		}
	}
	return nil
}

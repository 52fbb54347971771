package address

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
)

type PostgresRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

const (
	addressColumns = `id, user_id, name, phone, house_no, road_name, city, state, pin_code, created_at`

	listAddressesQuery = `SELECT ` + addressColumns + ` FROM addresses WHERE user_id = $1 ORDER BY created_at DESC, id`
	insertAddressQuery = `
		INSERT INTO addresses (` + addressColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]Address, error) {
	rows, err := r.db.QueryContext(ctx, listAddressesQuery, userID)
	if err != nil {
		return nil, errors.Wrap(err, "list addresses")
	}
	defer rows.Close()

	out := make([]Address, 0)
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan address")
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Create(ctx context.Context, a Address) (Address, error) {
	_, err := r.db.ExecContext(ctx, insertAddressQuery,
		a.ID, a.UserID, a.Name, a.Phone, a.HouseNo, a.RoadName, a.City, a.State, a.PinCode, a.CreatedAt)
	if err != nil {
		return Address{}, errors.Wrap(err, "insert address")
	}
	return a, nil
}

func scanAddress(scanner rowScanner) (Address, error) {
	var a Address
	err := scanner.Scan(&a.ID, &a.UserID, &a.Name, &a.Phone, &a.HouseNo, &a.RoadName, &a.City, &a.State, &a.PinCode, &a.CreatedAt)
	return a, err
}

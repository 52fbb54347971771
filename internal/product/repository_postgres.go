package product

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"
	"github.com/pkg/errors"
)

type PostgresRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

const (
	productColumns = `id, title, price, original_price, discount, category, stock_quantity, rating, reviews, image, description, created_at, updated_at`

	listProductsQuery   = `SELECT ` + productColumns + ` FROM products ORDER BY created_at, id`
	getProductByIDQuery = `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	insertProductQuery = `
		INSERT INTO products (id, title, price, original_price, discount, category, stock_quantity, rating, reviews, image, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	updateProductQuery = `
		UPDATE products
		SET title = $2, price = $3, original_price = $4, discount = $5, category = $6,
			stock_quantity = $7, rating = $8, reviews = $9, image = $10, description = $11, updated_at = $12
		WHERE id = $1
		RETURNING ` + productColumns
	deleteProductQuery      = `DELETE FROM products WHERE id = $1`
	deleteManyProductsQuery = `DELETE FROM products WHERE id = ANY($1)`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context) ([]Product, error) {
	rows, err := r.db.QueryContext(ctx, listProductsQuery)
	if err != nil {
		return nil, errors.Wrap(err, "list products")
	}
	defer rows.Close()

	products := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan product")
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (Product, error) {
	p, err := scanProduct(r.db.QueryRowContext(ctx, getProductByIDQuery, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return Product{}, ErrNotFound
		}
		return Product{}, errors.Wrap(err, "get product")
	}
	return p, nil
}

func (r *PostgresRepository) Create(ctx context.Context, p Product) (Product, error) {
	_, err := r.db.ExecContext(ctx, insertProductQuery,
		p.ID, p.Title, p.Price, p.OriginalPrice, p.Discount, p.Category,
		p.StockQuantity, p.Rating, p.Reviews, p.Image, p.Description, p.CreatedAt)
	if err != nil {
		return Product{}, errors.Wrap(err, "insert product")
	}
	return p, nil
}

func (r *PostgresRepository) Update(ctx context.Context, p Product) (Product, error) {
	row := r.db.QueryRowContext(ctx, updateProductQuery,
		p.ID, p.Title, p.Price, p.OriginalPrice, p.Discount, p.Category,
		p.StockQuantity, p.Rating, p.Reviews, p.Image, p.Description, time.Now().UTC())
	updated, err := scanProduct(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return Product{}, ErrNotFound
		}
		return Product{}, errors.Wrap(err, "update product")
	}
	return updated, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, deleteProductQuery, id)
	if err != nil {
		return errors.Wrap(err, "delete product")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteMany(ctx context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res, err := r.db.ExecContext(ctx, deleteManyProductsQuery, pq.Array(ids))
	if err != nil {
		return 0, errors.Wrap(err, "delete products")
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

func scanProduct(scanner rowScanner) (Product, error) {
	var p Product
	var updated sql.NullTime
	err := scanner.Scan(&p.ID, &p.Title, &p.Price, &p.OriginalPrice, &p.Discount, &p.Category,
		&p.StockQuantity, &p.Rating, &p.Reviews, &p.Image, &p.Description, &p.CreatedAt, &updated)
	if err != nil {
		return Product{}, err
	}
	if updated.Valid {
		t := updated.Time
		p.UpdatedAt = &t
	}
	return p, nil
}

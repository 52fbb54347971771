package user

import (
	"context"
	"database/sql"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
)

type PostgresRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

const (
	userColumns = `uid, email, display_name, role, password_hash, created_at`

	listUsersQuery      = `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`
	getUserByIDQuery    = `SELECT ` + userColumns + ` FROM users WHERE uid = $1`
	getUserByEmailQuery = `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1)`

	insertUserQuery = `
		INSERT INTO users (uid, email, display_name, role, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	upsertUserQuery = `
		INSERT INTO users (uid, email, display_name, role, password_hash, created_at)
		VALUES ($1, $2, $3, $4, '', $5)
		ON CONFLICT (uid) DO UPDATE
		SET email = EXCLUDED.email, display_name = EXCLUDED.display_name, role = EXCLUDED.role
		RETURNING ` + userColumns
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context) ([]User, error) {
	rows, err := r.db.QueryContext(ctx, listUsersQuery)
	if err != nil {
		return nil, errors.Wrap(err, "list users")
	}
	defer rows.Close()

	users := make([]User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan user")
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *PostgresRepository) GetByID(ctx context.Context, uid string) (User, error) {
	return r.getOne(ctx, getUserByIDQuery, uid)
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (User, error) {
	return r.getOne(ctx, getUserByEmailQuery, strings.TrimSpace(email))
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, arg string) (User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if err == sql.ErrNoRows {
			return User{}, ErrNotFound
		}
		return User{}, errors.Wrap(err, "get user")
	}
	return user, nil
}

func (r *PostgresRepository) Create(ctx context.Context, user User) (User, error) {
	_, err := r.db.ExecContext(ctx, insertUserQuery, user.UID, user.Email, user.DisplayName, user.Role, user.PasswordHash, user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return User{}, ErrEmailTaken
		}
		return User{}, errors.Wrap(err, "insert user")
	}
	return user, nil
}

func (r *PostgresRepository) Upsert(ctx context.Context, user User) (User, error) {
	row := r.db.QueryRowContext(ctx, upsertUserQuery, user.UID, user.Email, user.DisplayName, user.Role, user.CreatedAt)
	saved, err := scanUser(row)
	if err != nil {
		return User{}, errors.Wrap(err, "upsert user")
	}
	return saved, nil
}

func scanUser(scanner rowScanner) (User, error) {
	var u User
	err := scanner.Scan(&u.UID, &u.Email, &u.DisplayName, &u.Role, &u.PasswordHash, &u.CreatedAt)
	return u, err
}

package identity

import (
	"context"
	"database/sql"

	"hailsim/internal/domain"
)

// PostgresStore implements Store on PostgreSQL, for deployments that
// already run a database and do not want identity records in Redis.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a PostgresStore on an existing connection.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the identity tables if they do not exist. The
// session_pointer table holds at most one row.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS users (
	email        TEXT PRIMARY KEY,
	name         TEXT NOT NULL,
	password     TEXT NOT NULL,
	role         TEXT NOT NULL,
	rating       DOUBLE PRECISION NOT NULL DEFAULT 0,
	car          TEXT NOT NULL DEFAULT '',
	plate_number TEXT NOT NULL DEFAULT '',
	phone        TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS session_pointer (
	id    INT PRIMARY KEY CHECK (id = 1),
	email TEXT NOT NULL
);`
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

func (s *PostgresStore) GetUser(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT email, name, password, role, rating, car, plate_number, phone
		FROM users WHERE email = $1`
	row := s.db.QueryRowContext(ctx, query, email)

	var user domain.User
	err := row.Scan(&user.Email, &user.Name, &user.Password, &user.Role,
		&user.Rating, &user.Car, &user.PlateNumber, &user.Phone)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *PostgresStore) SaveUser(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (email, name, password, role, rating, car, plate_number, phone)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (email) DO UPDATE SET
			name = EXCLUDED.name,
			password = EXCLUDED.password,
			role = EXCLUDED.role,
			rating = EXCLUDED.rating,
			car = EXCLUDED.car,
			plate_number = EXCLUDED.plate_number,
			phone = EXCLUDED.phone`
	_, err := s.db.ExecContext(ctx, query, user.Email, user.Name, user.Password,
		user.Role, user.Rating, user.Car, user.PlateNumber, user.Phone)
	return err
}

func (s *PostgresStore) UserExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`
	if err := s.db.QueryRowContext(ctx, query, email).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (s *PostgresStore) SetCurrentUser(ctx context.Context, email string) error {
	query := `INSERT INTO session_pointer (id, email) VALUES (1, $1)
		ON CONFLICT (id) DO UPDATE SET email = EXCLUDED.email`
	_, err := s.db.ExecContext(ctx, query, email)
	return err
}

func (s *PostgresStore) CurrentUser(ctx context.Context) (string, error) {
	var email string
	query := `SELECT email FROM session_pointer WHERE id = 1`
	err := s.db.QueryRowContext(ctx, query).Scan(&email)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return email, nil
}

func (s *PostgresStore) ClearCurrentUser(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM session_pointer WHERE id = 1`)
	return err
}

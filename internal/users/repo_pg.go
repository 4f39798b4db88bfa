package users

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new user and returns its id.
func (r *PGRepo) Create(ctx context.Context, email, role string) (int64, error) {
	const query = `
INSERT INTO users (email, role)
VALUES ($1, $2)
RETURNING user_id`
	var id int64
	if err := r.DB.QueryRowContext(ctx, query, email, role).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// GetByEmail returns the user for an email, or ErrNotFound.
func (r *PGRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	const query = `
SELECT user_id, email, role, created_date, last_login, is_active
FROM users
WHERE email = $1
LIMIT 1`
	var user User
	var lastLogin sql.NullTime
	err := r.DB.QueryRowContext(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.Role,
		&user.CreatedDate,
		&lastLogin,
		&user.IsActive,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	if lastLogin.Valid {
		user.LastLogin = &lastLogin.Time
	}
	return user, nil
}

var _ Repo = (*PGRepo)(nil)

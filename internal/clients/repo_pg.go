package clients

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// GetOrCreate resolves a client id for an email inside a single transaction.
// Concurrent first contact from the same email races; the unique index on
// email makes the losing insert fail rather than duplicate the client.
func (r *PGRepo) GetOrCreate(ctx context.Context, email, name string) (int64, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var id int64
	err = tx.QueryRowContext(ctx, `SELECT client_id FROM clients WHERE email = $1`, email).Scan(&id)
	switch {
	case err == nil:
		if _, err := tx.ExecContext(ctx, `UPDATE clients SET last_processed_date = now() WHERE client_id = $1`, id); err != nil {
			return 0, err
		}
	case errors.Is(err, sql.ErrNoRows):
		if name == "" {
			name = DeriveName(email)
		}
		const insert = `
INSERT INTO clients (email, name)
VALUES ($1, $2)
RETURNING client_id`
		if err := tx.QueryRowContext(ctx, insert, email, name).Scan(&id); err != nil {
			return 0, err
		}
	default:
		return 0, err
	}

	return id, tx.Commit()
}

// GetByEmail returns the client for an email, or ErrNotFound.
func (r *PGRepo) GetByEmail(ctx context.Context, email string) (Client, error) {
	const query = `
SELECT client_id, email, name, created_date, last_processed_date, is_active
FROM clients
WHERE email = $1
LIMIT 1`
	var client Client
	var name sql.NullString
	var lastProcessed sql.NullTime
	err := r.DB.QueryRowContext(ctx, query, email).Scan(
		&client.ID,
		&client.Email,
		&name,
		&client.CreatedDate,
		&lastProcessed,
		&client.IsActive,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Client{}, ErrNotFound
		}
		return Client{}, err
	}
	if name.Valid {
		client.Name = name.String
	}
	if lastProcessed.Valid {
		client.LastProcessedDate = &lastProcessed.Time
	}
	return client, nil
}

// List returns all clients, most recently processed first.
func (r *PGRepo) List(ctx context.Context) ([]Client, error) {
	const query = `
SELECT client_id, email, name, created_date, last_processed_date, is_active
FROM clients
ORDER BY last_processed_date DESC NULLS LAST`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Client
	for rows.Next() {
		var client Client
		var name sql.NullString
		var lastProcessed sql.NullTime
		if err := rows.Scan(
			&client.ID,
			&client.Email,
			&name,
			&client.CreatedDate,
			&lastProcessed,
			&client.IsActive,
		); err != nil {
			return nil, err
		}
		if name.Valid {
			client.Name = name.String
		}
		if lastProcessed.Valid {
			client.LastProcessedDate = &lastProcessed.Time
		}
		out = append(out, client)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)

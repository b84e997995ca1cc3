package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"pokedex/internal/domain"

	"github.com/lib/pq"
)

// Ensure the interface is met.
var _ domain.UserRepository = (*DB)(nil)

const userColumns = "id, username, email, password_hash, favorites, history, registered_at, last_access"

func scanUser(row *sql.Row) (*domain.User, error) {
	var u domain.User
	var favorites pq.Int64Array
	var history []byte

	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash,
		&favorites, &history, &u.RegisteredAt, &u.LastAccess)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	u.Favorites = make([]int, len(favorites))
	for i, f := range favorites {
		u.Favorites[i] = int(f)
	}
	if err := json.Unmarshal(history, &u.History); err != nil {
		return nil, err
	}
	return &u, nil
}

func favoritesArray(favorites []int) pq.Int64Array {
	out := make(pq.Int64Array, len(favorites))
	for i, f := range favorites {
		out[i] = int64(f)
	}
	return out
}

// GetByEmail retrieves a user by exact (lowercased) email.
func (d *DB) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return scanUser(d.sql.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email = $1", email))
}

// GetByID retrieves a user by ID.
func (d *DB) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return scanUser(d.sql.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = $1", id))
}

// FindByUsername matches the username case-insensitively.
func (d *DB) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return scanUser(d.sql.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE LOWER(username) = LOWER($1)", username))
}

// Create inserts a new user.
func (d *DB) Create(ctx context.Context, u *domain.User) error {
	history, err := json.Marshal(u.History)
	if err != nil {
		return err
	}
	_, err = d.sql.ExecContext(ctx,
		`INSERT INTO users (id, username, email, password_hash, favorites, history, registered_at, last_access)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		u.ID, u.Username, u.Email, u.PasswordHash,
		favoritesArray(u.Favorites), history, u.RegisteredAt, u.LastAccess)
	return err
}

// Update persists username, favorites, history and last access. The
// password hash column is deliberately not touched here.
func (d *DB) Update(ctx context.Context, u *domain.User) error {
	history, err := json.Marshal(u.History)
	if err != nil {
		return err
	}
	_, err = d.sql.ExecContext(ctx,
		`UPDATE users SET username = $2, favorites = $3, history = $4, last_access = $5 WHERE id = $1`,
		u.ID, u.Username, favoritesArray(u.Favorites), history, u.LastAccess)
	return err
}

// UpdatePasswordHash replaces the stored hash.
func (d *DB) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	_, err := d.sql.ExecContext(ctx,
		"UPDATE users SET password_hash = $2 WHERE id = $1", id, hash)
	return err
}

// Delete removes a user.
func (d *DB) Delete(ctx context.Context, id string) error {
	_, err := d.sql.ExecContext(ctx, "DELETE FROM users WHERE id = $1", id)
	return err
}

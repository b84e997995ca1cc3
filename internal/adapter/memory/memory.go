// Package memory implements an in-memory repository for development and testing.
package memory

import (
	"context"
	"strings"
	"sync"

	"pokedex/internal/domain"
)

// DB implements an in-memory user store.
type DB struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{users: make(map[string]*domain.User)}
}

// Ensure the interface is met.
var _ domain.UserRepository = (*DB)(nil)

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	c := *u
	c.Favorites = append([]int(nil), u.Favorites...)
	c.History = append([]domain.HistoryEntry(nil), u.History...)
	return &c
}

// GetByEmail retrieves a user by exact (lowercased) email.
func (db *DB) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, u := range db.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

// GetByID retrieves a user by ID.
func (db *DB) GetByID(ctx context.Context, id string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return cloneUser(db.users[id]), nil
}

// FindByUsername matches the username case-insensitively.
func (db *DB) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, u := range db.users {
		if strings.EqualFold(u.Username, username) {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

// Create stores a new user.
func (db *DB) Create(ctx context.Context, u *domain.User) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.users[u.ID] = cloneUser(u)
	return nil
}

// Update persists username, favorites, history and last access. The
// stored password hash is kept as is.
func (db *DB) Update(ctx context.Context, u *domain.User) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	stored, ok := db.users[u.ID]
	if !ok {
		return nil
	}
	c := cloneUser(u)
	c.PasswordHash = stored.PasswordHash
	db.users[u.ID] = c
	return nil
}

// UpdatePasswordHash replaces the stored hash.
func (db *DB) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if u, ok := db.users[id]; ok {
		u.PasswordHash = hash
	}
	return nil
}

// Delete removes a user.
func (db *DB) Delete(ctx context.Context, id string) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	delete(db.users, id)
	return nil
}

// Package domain contains the core business entities and interfaces.
package domain

import (
	"context"
	"time"
)

// MaxHistory is the number of history entries kept per user. Adding an
// entry beyond this evicts the oldest.
const MaxHistory = 10

// Pokémon IDs accepted anywhere in the system (generation 1 through 9).
const (
	MinPokemonID = 1
	MaxPokemonID = 1025
)

// User represents a registered account in the system.
//
// Favorites holds Pokémon IDs with set semantics: no duplicates, order
// irrelevant. History is most-recent-first, unique per Pokémon ID and
// capped at MaxHistory.
type User struct {
	ID           string         `json:"id"`
	Username     string         `json:"username"`
	Email        string         `json:"email"`
	PasswordHash string         `json:"-"`
	Favorites    []int          `json:"favoritos"`
	History      []HistoryEntry `json:"historial"`
	RegisteredAt time.Time      `json:"fechaRegistro"`
	LastAccess   time.Time      `json:"ultimoAcceso"`
}

// HistoryEntry records a Pokémon the user previously viewed. It is owned
// exclusively by its user.
type HistoryEntry struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Sprite    string    `json:"sprite"`
	Timestamp time.Time `json:"timestamp"`
}

// PublicUser is the projection of a User returned to clients. It never
// carries the password hash.
type PublicUser struct {
	ID           string         `json:"id"`
	Username     string         `json:"username"`
	Email        string         `json:"email"`
	Favorites    []int          `json:"favoritos"`
	History      []HistoryEntry `json:"historial"`
	RegisteredAt time.Time      `json:"fechaRegistro"`
	LastAccess   time.Time      `json:"ultimoAcceso"`
}

// Public returns the client-facing projection of u. Nil collections are
// normalised to empty so they serialize as [] rather than null.
func (u *User) Public() *PublicUser {
	favorites := u.Favorites
	if favorites == nil {
		favorites = []int{}
	}
	history := u.History
	if history == nil {
		history = []HistoryEntry{}
	}
	return &PublicUser{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		Favorites:    favorites,
		History:      history,
		RegisteredAt: u.RegisteredAt,
		LastAccess:   u.LastAccess,
	}
}

// HasFavorite reports whether id is in the user's favorites set.
func (u *User) HasFavorite(id int) bool {
	for _, f := range u.Favorites {
		if f == id {
			return true
		}
	}
	return false
}

// UserRepository defines the port for user persistence operations.
// Lookups return (nil, nil) when no row matches.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	// FindByUsername matches the username case-insensitively.
	FindByUsername(ctx context.Context, username string) (*User, error)
	Create(ctx context.Context, u *User) error
	// Update persists username, favorites, history and last access.
	// It never touches the password hash.
	Update(ctx context.Context, u *User) error
	UpdatePasswordHash(ctx context.Context, id, hash string) error
	Delete(ctx context.Context, id string) error
}

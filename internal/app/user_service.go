package app

import (
	"context"
	"log"
	"strings"
	"time"

	"pokedex/internal/domain"
)

// UserService mutates the per-user collections (favorites, history) and
// the profile, enforcing bounds before anything reaches persistence.
type UserService struct {
	store *AccountStore
}

// NewUserService creates a UserService backed by the given account store.
func NewUserService(store *AccountStore) *UserService {
	return &UserService{store: store}
}

// AddFavorite appends id to the favorites set. A duplicate is a conflict
// and leaves the stored state unchanged.
func (s *UserService) AddFavorite(ctx context.Context, u *domain.User, id int) ([]int, error) {
	if err := domain.ValidatePokemonID(id); err != nil {
		var verr ValidationError
		verr.add("pokemonId", err)
		return nil, &verr
	}
	if u.HasFavorite(id) {
		return nil, ErrFavoriteExists
	}
	u.Favorites = append(u.Favorites, id)
	if err := s.store.Save(ctx, u); err != nil {
		return nil, err
	}
	log.Printf("pokemon %d added to favorites of %s", id, u.Username)
	return u.Favorites, nil
}

// RemoveFavorite removes id from the favorites set; absent IDs are an
// error.
func (s *UserService) RemoveFavorite(ctx context.Context, u *domain.User, id int) ([]int, error) {
	if err := domain.ValidatePokemonID(id); err != nil {
		var verr ValidationError
		verr.add("id", err)
		return nil, &verr
	}
	if !u.HasFavorite(id) {
		return nil, ErrFavoriteNotFound
	}
	kept := u.Favorites[:0]
	for _, f := range u.Favorites {
		if f != id {
			kept = append(kept, f)
		}
	}
	u.Favorites = kept
	if err := s.store.Save(ctx, u); err != nil {
		return nil, err
	}
	log.Printf("pokemon %d removed from favorites of %s", id, u.Username)
	return u.Favorites, nil
}

// ClearFavorites unconditionally empties the set.
func (s *UserService) ClearFavorites(ctx context.Context, u *domain.User) error {
	u.Favorites = []int{}
	if err := s.store.Save(ctx, u); err != nil {
		return err
	}
	log.Printf("favorites cleared for user: %s", u.Username)
	return nil
}

// AddHistory records a viewed Pokémon: any existing entry with the same ID
// is removed, the new entry goes to the front, and the list is truncated
// to the most recent MaxHistory.
func (s *UserService) AddHistory(ctx context.Context, u *domain.User, entry domain.HistoryEntry) ([]domain.HistoryEntry, error) {
	if err := domain.ValidateHistoryEntry(entry); err != nil {
		var verr ValidationError
		verr.add("entry", err)
		return nil, &verr
	}
	entry.Name = strings.TrimSpace(entry.Name)
	entry.Timestamp = time.Now()

	kept := make([]domain.HistoryEntry, 0, len(u.History)+1)
	kept = append(kept, entry)
	for _, h := range u.History {
		if h.ID != entry.ID {
			kept = append(kept, h)
		}
	}
	if len(kept) > domain.MaxHistory {
		kept = kept[:domain.MaxHistory]
	}
	u.History = kept

	if err := s.store.Save(ctx, u); err != nil {
		return nil, err
	}
	return u.History, nil
}

// ClearHistory unconditionally empties the list.
func (s *UserService) ClearHistory(ctx context.Context, u *domain.User) error {
	u.History = []domain.HistoryEntry{}
	if err := s.store.Save(ctx, u); err != nil {
		return err
	}
	log.Printf("history cleared for user: %s", u.Username)
	return nil
}

// UpdateProfile renames the account. The collision check against other
// users is a case-insensitive exact match; see TestUpdateProfile_
// PrefixOfOtherUsernameAllowed for the deliberate divergence from
// prefix matching.
func (s *UserService) UpdateProfile(ctx context.Context, u *domain.User, newUsername string) (*domain.PublicUser, error) {
	newUsername = strings.TrimSpace(newUsername)
	if newUsername == "" || newUsername == u.Username {
		return u.Public(), nil
	}
	if err := domain.ValidateUsername(newUsername); err != nil {
		var verr ValidationError
		verr.add("username", err)
		return nil, &verr
	}

	other, err := s.store.Repo().FindByUsername(ctx, newUsername)
	if err != nil {
		return nil, err
	}
	if other != nil && other.ID != u.ID {
		return nil, ErrUsernameTaken
	}

	u.Username = newUsername
	if err := s.store.Save(ctx, u); err != nil {
		return nil, err
	}
	log.Printf("profile updated for user: %s", u.Username)
	return u.Public(), nil
}

// Stats summarises an account. Pure read, no mutation.
type Stats struct {
	TotalFavorites int       `json:"totalFavoritos"`
	TotalSearches  int       `json:"totalBusquedas"`
	RegisteredAt   time.Time `json:"fechaRegistro"`
	LastAccess     time.Time `json:"ultimoAcceso"`
	DaysRegistered int       `json:"diasRegistrado"`
}

// Stats derives the account counters from stored state.
func (s *UserService) Stats(u *domain.User) Stats {
	return Stats{
		TotalFavorites: len(u.Favorites),
		TotalSearches:  len(u.History),
		RegisteredAt:   u.RegisteredAt,
		LastAccess:     u.LastAccess,
		DaysRegistered: int(time.Since(u.RegisteredAt).Hours() / 24),
	}
}

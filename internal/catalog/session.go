package catalog

import (
	"context"
	"errors"

	"pokedex/internal/apiclient"
	"pokedex/internal/domain"
)

// Session is the client-side view of one authenticated user: the bearer
// token, the user projection and local mirrors of the favorites set and
// the search history. Mirrors are replaced with the server's confirmed
// state after every mutation; they are never updated optimistically.
type Session struct {
	api *apiclient.Client

	user      *domain.PublicUser
	favorites map[int]bool
	history   []domain.HistoryEntry
}

// NewSession creates a logged-out session over the given API client.
func NewSession(api *apiclient.Client) *Session {
	return &Session{api: api, favorites: map[int]bool{}}
}

// LoggedIn reports whether the session carries a user.
func (s *Session) LoggedIn() bool {
	return s.user != nil
}

// User returns the current user projection, or nil when logged out.
func (s *Session) User() *domain.PublicUser {
	return s.user
}

// Token returns the session's bearer token.
func (s *Session) Token() string {
	return s.api.Token()
}

// Resume attaches a previously issued token and loads the user behind it.
func (s *Session) Resume(ctx context.Context, token string) error {
	s.api.SetToken(token)
	user, err := s.api.Me(ctx)
	if err != nil {
		return s.check(err)
	}
	s.user = user
	s.syncFrom(user)
	return nil
}

// Login authenticates and populates the session mirrors.
func (s *Session) Login(ctx context.Context, email, password string) error {
	user, err := s.api.Login(ctx, email, password)
	if err != nil {
		return s.check(err)
	}
	s.user = user
	s.syncFrom(user)
	return nil
}

// Register creates an account. It does not log in; tokens are only
// issued by Login.
func (s *Session) Register(ctx context.Context, username, email, password string) (*domain.PublicUser, error) {
	return s.api.Register(ctx, username, email, password)
}

// Logout tells the server and resets all local state.
func (s *Session) Logout(ctx context.Context) error {
	err := s.api.Logout(ctx)
	s.reset()
	if errors.Is(err, apiclient.ErrUnauthorized) {
		return nil
	}
	return err
}

// Favorites returns a copy of the mirrored favorites set. Mutating the
// returned map does not touch session state.
func (s *Session) Favorites() map[int]bool {
	out := make(map[int]bool, len(s.favorites))
	for id := range s.favorites {
		out[id] = true
	}
	return out
}

// IsFavorite reports membership in the mirrored set.
func (s *Session) IsFavorite(id int) bool {
	return s.favorites[id]
}

// History returns the mirrored search history, newest first.
func (s *Session) History() []domain.HistoryEntry {
	return s.history
}

// RefreshFavorites replaces the mirror with the server's set.
func (s *Session) RefreshFavorites(ctx context.Context) error {
	favs, err := s.api.Favorites(ctx)
	if err != nil {
		return s.check(err)
	}
	s.setFavorites(favs)
	return nil
}

// AddFavorite marks a Pokémon and mirrors the confirmed set.
func (s *Session) AddFavorite(ctx context.Context, id int) error {
	favs, err := s.api.AddFavorite(ctx, id)
	if err != nil {
		return s.check(err)
	}
	s.setFavorites(favs)
	return nil
}

// RemoveFavorite unmarks a Pokémon and mirrors the confirmed set.
func (s *Session) RemoveFavorite(ctx context.Context, id int) error {
	favs, err := s.api.RemoveFavorite(ctx, id)
	if err != nil {
		return s.check(err)
	}
	s.setFavorites(favs)
	return nil
}

// ClearFavorites empties both server and mirror.
func (s *Session) ClearFavorites(ctx context.Context) error {
	if err := s.api.ClearFavorites(ctx); err != nil {
		return s.check(err)
	}
	s.favorites = map[int]bool{}
	return nil
}

// RecordView reports a viewed Pokémon to the server history and mirrors
// the confirmed list.
func (s *Session) RecordView(ctx context.Context, id int, name, sprite string) error {
	hist, err := s.api.AddHistory(ctx, id, name, sprite)
	if err != nil {
		return s.check(err)
	}
	s.history = hist
	return nil
}

// RefreshHistory replaces the mirror with the server's list.
func (s *Session) RefreshHistory(ctx context.Context) error {
	hist, err := s.api.History(ctx)
	if err != nil {
		return s.check(err)
	}
	s.history = hist
	return nil
}

// ClearHistory empties both server and mirror.
func (s *Session) ClearHistory(ctx context.Context) error {
	if err := s.api.ClearHistory(ctx); err != nil {
		return s.check(err)
	}
	s.history = nil
	return nil
}

// check resets the session when the server no longer accepts the token,
// so a stale session cannot keep presenting itself as logged in.
func (s *Session) check(err error) error {
	if errors.Is(err, apiclient.ErrUnauthorized) {
		s.reset()
	}
	return err
}

func (s *Session) reset() {
	s.api.SetToken("")
	s.user = nil
	s.favorites = map[int]bool{}
	s.history = nil
}

func (s *Session) syncFrom(user *domain.PublicUser) {
	s.setFavorites(user.Favorites)
	s.history = user.History
}

func (s *Session) setFavorites(ids []int) {
	set := make(map[int]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	s.favorites = set
}

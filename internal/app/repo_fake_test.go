package app_test

import (
	"context"
	"strings"
	"sync"

	"pokedex/internal/domain"
)

// fakeUserRepo is a map-backed UserRepository for exercising the services
// end to end without a database.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User

	// optional per-test overrides; nil falls through to the map
	getByEmailFn func(ctx context.Context, email string) (*domain.User, error)
	updateFn     func(ctx context.Context, u *domain.User) error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func clone(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	c := *u
	c.Favorites = append([]int(nil), u.Favorites...)
	c.History = append([]domain.HistoryEntry(nil), u.History...)
	return &c
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if r.getByEmailFn != nil {
		return r.getByEmailFn(ctx, email)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return clone(u), nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return clone(r.users[id]), nil
}

func (r *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Username, username) {
			return clone(u), nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Create(ctx context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = clone(u)
	return nil
}

func (r *fakeUserRepo) Update(ctx context.Context, u *domain.User) error {
	if r.updateFn != nil {
		return r.updateFn(ctx, u)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.users[u.ID]
	if !ok {
		return nil
	}
	c := clone(u)
	c.PasswordHash = stored.PasswordHash
	r.users[u.ID] = c
	return nil
}

func (r *fakeUserRepo) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		u.PasswordHash = hash
	}
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

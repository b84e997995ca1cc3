package app

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"pokedex/internal/domain"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost matches the original deployment; high enough to resist
// offline brute force.
const bcryptCost = 12

// AccountStore is the write path for user records. Password hashing
// happens here, and only on the operations that set the password field;
// every other write leaves the stored hash untouched.
type AccountStore struct {
	repo domain.UserRepository
}

// NewAccountStore wraps a repository as the account write path.
func NewAccountStore(repo domain.UserRepository) *AccountStore {
	return &AccountStore{repo: repo}
}

// Repo exposes the underlying repository for read-only lookups.
func (s *AccountStore) Repo() domain.UserRepository {
	return s.repo
}

// Create registers a new account. The email is checked first (exact match
// on the lowercased form), then the username (case-insensitive exact
// match), so the caller gets the specific conflict reason.
func (s *AccountStore) Create(ctx context.Context, username, email, password string) (*domain.User, error) {
	email = domain.NormalizeEmail(email)

	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("lookup email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	existing, err = s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("lookup username: %w", err)
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	u := &domain.User{
		ID:           uuid.NewString(),
		Username:     strings.TrimSpace(username),
		Email:        email,
		PasswordHash: string(hash),
		Favorites:    []int{},
		History:      []domain.HistoryEntry{},
		RegisteredAt: now,
		LastAccess:   now,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	s.audit(u)
	return u, nil
}

// Save persists profile and collection state. It never rewrites the hash.
func (s *AccountStore) Save(ctx context.Context, u *domain.User) error {
	if err := s.repo.Update(ctx, u); err != nil {
		return err
	}
	s.audit(u)
	return nil
}

// SetPassword re-hashes and persists a new password. This is the only
// write that touches the password field after registration.
func (s *AccountStore) SetPassword(ctx context.Context, u *domain.User, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePasswordHash(ctx, u.ID, string(hash)); err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	s.audit(u)
	return nil
}

// CheckPassword verifies a plaintext password against the stored hash.
func (s *AccountStore) CheckPassword(u *domain.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// Delete removes the account irrevocably.
func (s *AccountStore) Delete(ctx context.Context, u *domain.User) error {
	return s.repo.Delete(ctx, u.ID)
}

// audit emits the informational line logged on every successful persist.
func (s *AccountStore) audit(u *domain.User) {
	log.Printf("user %s saved", u.Username)
}

package app

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log"
	"strings"
	"time"

	"pokedex/internal/domain"
	"pokedex/internal/token"
)

// AuthService handles registration, login and request authentication.
type AuthService struct {
	store  *AccountStore
	secret []byte
	ttl    time.Duration
}

// NewAuthService creates an authentication service issuing tokens signed
// with secret and valid for ttl.
func NewAuthService(store *AccountStore, secret []byte, ttl time.Duration) *AuthService {
	return &AuthService{store: store, secret: secret, ttl: ttl}
}

// Register validates the input and creates a new account. It returns the
// public projection; the hash never leaves the store.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*domain.PublicUser, error) {
	username = strings.TrimSpace(username)
	email = domain.NormalizeEmail(email)

	var verr ValidationError
	verr.add("username", domain.ValidateUsername(username))
	verr.add("email", domain.ValidateEmail(email))
	verr.add("password", domain.ValidatePassword(password))
	if err := verr.errOrNil(); err != nil {
		return nil, err
	}

	u, err := s.store.Create(ctx, username, email, password)
	if err != nil {
		return nil, err
	}
	log.Printf("new user registered: %s (%s)", u.Username, u.Email)
	return u.Public(), nil
}

// Login verifies the credentials, refreshes last access and returns a
// signed bearer token with the public projection. Lookup and password
// failures are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.PublicUser, error) {
	u, err := s.store.Repo().GetByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		return "", nil, err
	}
	if u == nil || !s.store.CheckPassword(u, password) {
		return "", nil, ErrInvalidCredentials
	}

	u.LastAccess = time.Now()
	if err := s.store.Save(ctx, u); err != nil {
		return "", nil, err
	}

	tok, err := token.Generate(u.ID, s.secret, s.ttl)
	if err != nil {
		return "", nil, err
	}
	log.Printf("user logged in: %s (%s)", u.Username, u.Email)
	return tok, u.Public(), nil
}

// Authenticate resolves an Authorization header to the stored user and
// refreshes last access. Missing or malformed headers, invalid, expired or
// not-yet-valid tokens, and tokens for vanished users all fail.
func (s *AuthService) Authenticate(ctx context.Context, authHeader string) (*domain.User, error) {
	if authHeader == "" {
		return nil, ErrMissingAuthHeader
	}
	raw, ok := strings.CutPrefix(authHeader, "Bearer ")
	if !ok || raw == "" {
		return nil, ErrInvalidAuthHeader
	}

	userID, err := token.Parse(raw, s.secret)
	if err != nil {
		return nil, err
	}

	u, err := s.store.Repo().GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}

	u.LastAccess = time.Now()
	if err := s.store.Save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// AuthenticateOptional behaves like Authenticate but proceeds as anonymous
// (nil user, nil error) when no header is present or the token does not
// resolve.
func (s *AuthService) AuthenticateOptional(ctx context.Context, authHeader string) (*domain.User, error) {
	if authHeader == "" {
		return nil, nil
	}
	u, err := s.Authenticate(ctx, authHeader)
	if err != nil {
		return nil, nil
	}
	return u, nil
}

// LoginWithIdentity issues a token for an externally authenticated
// identity (SSO), provisioning an account on first login. Provisioned
// accounts get a random password; they can only ever log in via SSO until
// the password is changed.
func (s *AuthService) LoginWithIdentity(ctx context.Context, email, preferredUsername string) (string, *domain.PublicUser, error) {
	email = domain.NormalizeEmail(email)
	if err := domain.ValidateEmail(email); err != nil {
		var verr ValidationError
		verr.add("email", err)
		return "", nil, &verr
	}

	u, err := s.store.Repo().GetByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if u == nil {
		username, err := s.provisionUsername(ctx, preferredUsername, email)
		if err != nil {
			return "", nil, err
		}
		u, err = s.store.Create(ctx, username, email, randomPassword())
		if err != nil {
			return "", nil, err
		}
		log.Printf("user provisioned via sso: %s (%s)", u.Username, u.Email)
	}

	u.LastAccess = time.Now()
	if err := s.store.Save(ctx, u); err != nil {
		return "", nil, err
	}
	tok, err := token.Generate(u.ID, s.secret, s.ttl)
	if err != nil {
		return "", nil, err
	}
	return tok, u.Public(), nil
}

// provisionUsername derives a free username from the SSO identity,
// suffixing a counter on collision.
func (s *AuthService) provisionUsername(ctx context.Context, preferred, email string) (string, error) {
	base := strings.TrimSpace(preferred)
	if base == "" {
		base, _, _ = strings.Cut(email, "@")
	}
	base = sanitizeUsername(base)

	candidate := base
	for i := 2; ; i++ {
		existing, err := s.store.Repo().FindByUsername(ctx, candidate)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s%d", base, i)
	}
}

func sanitizeUsername(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		}
	}
	out := b.String()
	if len(out) < 3 {
		out = "trainer-" + out
	}
	if len(out) > 50 {
		out = out[:50]
	}
	return out
}

func randomPassword() string {
	b := make([]byte, 24)
	_, _ = rand.Read(b)
	return base64.URLEncoding.EncodeToString(b)
}

// ChangePassword verifies the current password and persists a new one.
func (s *AuthService) ChangePassword(ctx context.Context, u *domain.User, current, newPassword string) error {
	if !s.store.CheckPassword(u, current) {
		return ErrWrongPassword
	}
	if err := domain.ValidatePassword(newPassword); err != nil {
		var verr ValidationError
		verr.add("newPassword", err)
		return &verr
	}
	if err := s.store.SetPassword(ctx, u, newPassword); err != nil {
		return err
	}
	log.Printf("password changed for user: %s", u.Username)
	return nil
}

// DeleteAccount removes the account after password re-confirmation.
func (s *AuthService) DeleteAccount(ctx context.Context, u *domain.User, password string) error {
	if !s.store.CheckPassword(u, password) {
		return ErrWrongPassword
	}
	if err := s.store.Delete(ctx, u); err != nil {
		return err
	}
	log.Printf("account deleted: %s (%s)", u.Username, u.Email)
	return nil
}

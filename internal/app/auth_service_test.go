package app_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"pokedex/internal/app"
	"pokedex/internal/token"
)

const testSecret = "test-secret"

func newAuthService(repo *fakeUserRepo, ttl time.Duration) (*app.AccountStore, *app.AuthService) {
	store := app.NewAccountStore(repo)
	return store, app.NewAuthService(store, []byte(testSecret), ttl)
}

func TestRegister_Validation(t *testing.T) {
	repo := newFakeUserRepo()
	_, svc := newAuthService(repo, time.Hour)

	tests := []struct {
		name     string
		username string
		email    string
		password string
	}{
		{"short username", "ab", "a@x.com", "pikachu1"},
		{"bad charset", "ash ketchum", "a@x.com", "pikachu1"},
		{"bad email", "ash", "not-an-email", "pikachu1"},
		{"short password", "ash", "a@x.com", "12345"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.username, tc.email, tc.password)
			var verr *app.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if len(verr.Fields) == 0 {
				t.Fatal("expected per-field details")
			}
		})
	}
}

func TestRegister_NeverExposesPassword(t *testing.T) {
	repo := newFakeUserRepo()
	_, svc := newAuthService(repo, time.Hour)

	pub, err := svc.Register(context.Background(), "ash", "ash@x.com", "pikachu1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b, err := json.Marshal(pub)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(b), "pikachu1") || strings.Contains(strings.ToLower(string(b)), "password") {
		t.Fatalf("projection leaks credentials: %s", b)
	}
}

func TestRegister_DuplicateEmailAnyCase(t *testing.T) {
	repo := newFakeUserRepo()
	_, svc := newAuthService(repo, time.Hour)

	if _, err := svc.Register(context.Background(), "ash", "ash@x.com", "pikachu1"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := svc.Register(context.Background(), "misty", "ASH@X.COM", "starmie1")
	if !errors.Is(err, app.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	if len(repo.users) != 1 {
		t.Fatalf("expected a single stored record, got %d", len(repo.users))
	}
}

func TestRegister_DuplicateUsernameCaseInsensitive(t *testing.T) {
	repo := newFakeUserRepo()
	_, svc := newAuthService(repo, time.Hour)

	if _, err := svc.Register(context.Background(), "Ash", "ash@x.com", "pikachu1"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := svc.Register(context.Background(), "ASH", "other@x.com", "pikachu1")
	if !errors.Is(err, app.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestLogin_UniformFailure(t *testing.T) {
	repo := newFakeUserRepo()
	_, svc := newAuthService(repo, time.Hour)

	if _, err := svc.Register(context.Background(), "ash", "ash@x.com", "pikachu1"); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, _, errUnknown := svc.Login(context.Background(), "nobody@x.com", "pikachu1")
	_, _, errWrongPw := svc.Login(context.Background(), "ash@x.com", "wrong-password")

	if !errors.Is(errUnknown, app.ErrInvalidCredentials) || !errors.Is(errWrongPw, app.ErrInvalidCredentials) {
		t.Fatalf("expected uniform ErrInvalidCredentials, got %v / %v", errUnknown, errWrongPw)
	}
}

func TestLogin_IssuesUsableToken(t *testing.T) {
	repo := newFakeUserRepo()
	_, svc := newAuthService(repo, time.Hour)

	pub, err := svc.Register(context.Background(), "ash", "ash@x.com", "pikachu1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	tok, loggedIn, err := svc.Login(context.Background(), "ash@x.com", "pikachu1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if loggedIn.ID != pub.ID {
		t.Fatalf("projection mismatch: %s != %s", loggedIn.ID, pub.ID)
	}

	u, err := svc.Authenticate(context.Background(), "Bearer "+tok)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if u.ID != pub.ID {
		t.Fatalf("resolved wrong identity: %s", u.ID)
	}
}

func TestAuthenticate_HeaderErrors(t *testing.T) {
	repo := newFakeUserRepo()
	_, svc := newAuthService(repo, time.Hour)

	if _, err := svc.Authenticate(context.Background(), ""); !errors.Is(err, app.ErrMissingAuthHeader) {
		t.Fatalf("expected ErrMissingAuthHeader, got %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), "Basic abc"); !errors.Is(err, app.ErrInvalidAuthHeader) {
		t.Fatalf("expected ErrInvalidAuthHeader, got %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), "Bearer "); !errors.Is(err, app.ErrInvalidAuthHeader) {
		t.Fatalf("expected ErrInvalidAuthHeader for empty token, got %v", err)
	}
}

func TestAuthenticate_ExpiredToken(t *testing.T) {
	repo := newFakeUserRepo()
	_, svc := newAuthService(repo, -time.Second)

	if _, err := svc.Register(context.Background(), "ash", "ash@x.com", "pikachu1"); err != nil {
		t.Fatalf("register: %v", err)
	}
	tok, _, err := svc.Login(context.Background(), "ash@x.com", "pikachu1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	// Signature is valid; only the expiry has passed.
	_, err = svc.Authenticate(context.Background(), "Bearer "+tok)
	if !errors.Is(err, token.ErrExpired) {
		t.Fatalf("expected token.ErrExpired, got %v", err)
	}
}

func TestAuthenticate_VanishedUser(t *testing.T) {
	repo := newFakeUserRepo()
	_, svc := newAuthService(repo, time.Hour)

	pub, err := svc.Register(context.Background(), "ash", "ash@x.com", "pikachu1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	tok, _, err := svc.Login(context.Background(), "ash@x.com", "pikachu1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := repo.Delete(context.Background(), pub.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), "Bearer "+tok); !errors.Is(err, app.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthenticateOptional(t *testing.T) {
	repo := newFakeUserRepo()
	_, svc := newAuthService(repo, time.Hour)

	u, err := svc.AuthenticateOptional(context.Background(), "")
	if err != nil || u != nil {
		t.Fatalf("expected anonymous pass-through, got %v / %v", u, err)
	}

	if _, err := svc.Register(context.Background(), "ash", "ash@x.com", "pikachu1"); err != nil {
		t.Fatalf("register: %v", err)
	}
	tok, _, err := svc.Login(context.Background(), "ash@x.com", "pikachu1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	u, err = svc.AuthenticateOptional(context.Background(), "Bearer "+tok)
	if err != nil || u == nil {
		t.Fatalf("expected resolved user, got %v / %v", u, err)
	}
}

func TestChangePassword(t *testing.T) {
	repo := newFakeUserRepo()
	store, svc := newAuthService(repo, time.Hour)

	pub, err := svc.Register(context.Background(), "ash", "ash@x.com", "pikachu1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	u, _ := repo.GetByID(context.Background(), pub.ID)

	if err := svc.ChangePassword(context.Background(), u, "wrong", "raichu99"); !errors.Is(err, app.ErrWrongPassword) {
		t.Fatalf("expected ErrWrongPassword, got %v", err)
	}
	if err := svc.ChangePassword(context.Background(), u, "pikachu1", "12345"); err == nil {
		t.Fatal("expected validation error for short password")
	}
	if err := svc.ChangePassword(context.Background(), u, "pikachu1", "raichu99"); err != nil {
		t.Fatalf("change password: %v", err)
	}

	stored, _ := repo.GetByID(context.Background(), pub.ID)
	if !store.CheckPassword(stored, "raichu99") || store.CheckPassword(stored, "pikachu1") {
		t.Fatal("new password not in effect")
	}
	if stored.PasswordHash == "raichu99" {
		t.Fatal("password stored in plaintext")
	}
}

func TestDeleteAccount(t *testing.T) {
	repo := newFakeUserRepo()
	_, svc := newAuthService(repo, time.Hour)

	pub, err := svc.Register(context.Background(), "ash", "ash@x.com", "pikachu1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	u, _ := repo.GetByID(context.Background(), pub.ID)

	if err := svc.DeleteAccount(context.Background(), u, "wrong"); !errors.Is(err, app.ErrWrongPassword) {
		t.Fatalf("expected ErrWrongPassword, got %v", err)
	}
	if err := svc.DeleteAccount(context.Background(), u, "pikachu1"); err != nil {
		t.Fatalf("delete account: %v", err)
	}
	if got, _ := repo.GetByID(context.Background(), pub.ID); got != nil {
		t.Fatal("account still present after deletion")
	}
}

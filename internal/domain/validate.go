package domain

import (
	"errors"
	"net/url"
	"regexp"
	"strings"
)

var (
	ErrUsernameLength  = errors.New("username must be between 3 and 50 characters")
	ErrUsernameCharset = errors.New("username may only contain letters, numbers, hyphens and underscores")
	ErrEmailInvalid    = errors.New("invalid email address")
	ErrPasswordLength  = errors.New("password must be at least 6 characters")
	ErrPokemonIDRange  = errors.New("pokemon id must be between 1 and 1025")
	ErrNameLength      = errors.New("name must be between 1 and 50 characters")
	ErrSpriteURL       = errors.New("sprite must be a valid URL")
)

var (
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	emailRe    = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)
)

// ValidateUsername checks the account-name rules: 3-50 chars, restricted
// charset. The input is expected to be trimmed already.
func ValidateUsername(username string) error {
	if len(username) < 3 || len(username) > 50 {
		return ErrUsernameLength
	}
	if !usernameRe.MatchString(username) {
		return ErrUsernameCharset
	}
	return nil
}

// ValidateEmail checks the (already lowercased) email format.
func ValidateEmail(email string) error {
	if email == "" || !emailRe.MatchString(email) {
		return ErrEmailInvalid
	}
	return nil
}

// ValidatePassword enforces the minimum length on plaintext passwords.
func ValidatePassword(password string) error {
	if len(password) < 6 {
		return ErrPasswordLength
	}
	return nil
}

// ValidatePokemonID bounds-checks a Pokémon numeric ID.
func ValidatePokemonID(id int) error {
	if id < MinPokemonID || id > MaxPokemonID {
		return ErrPokemonIDRange
	}
	return nil
}

// ValidateHistoryEntry checks the client-supplied fields of a history
// entry: ID bounds, display-name length and an absolute sprite URL.
func ValidateHistoryEntry(e HistoryEntry) error {
	if err := ValidatePokemonID(e.ID); err != nil {
		return err
	}
	name := strings.TrimSpace(e.Name)
	if len(name) < 1 || len(name) > 50 {
		return ErrNameLength
	}
	u, err := url.Parse(e.Sprite)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return ErrSpriteURL
	}
	return nil
}

// NormalizeEmail lowercases and trims an email for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Package token issues and verifies the signed bearer credentials used to
// authenticate API requests. Tokens are stateless: validity is purely a
// function of signature and the embedded time bounds, so nothing is stored
// server-side.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalid covers malformed tokens and bad signatures.
	ErrInvalid = errors.New("invalid token")
	// ErrExpired indicates the token's expiry has passed.
	ErrExpired = errors.New("token expired")
	// ErrNotYetValid indicates the token's not-before is in the future.
	ErrNotYetValid = errors.New("token not yet valid")
)

// Claims carries the authenticated user's ID alongside the registered
// JWT claims.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"uid"`
}

// Generate signs an HS256 token identifying userID, valid from now for ttl.
func Generate(userID string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: userID,
	})
	return t.SignedString(secret)
}

// Parse verifies signature and time bounds and returns the user ID the
// token was issued for.
func Parse(tokenString string, secret []byte) (string, error) {
	claims := &Claims{}
	t, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalid
		}
		return secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", ErrExpired
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			return "", ErrNotYetValid
		default:
			return "", ErrInvalid
		}
	}
	if !t.Valid || claims.UserID == "" {
		return "", ErrInvalid
	}
	return claims.UserID, nil
}

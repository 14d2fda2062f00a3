// Package auth inspects the bearer tokens handed out by the backend. The
// client never holds the signing secret, so tokens are decoded without
// verification and only their timing claims are trusted for local decisions.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// ErrOpaqueToken is returned for bearer tokens that are not JWTs.
var ErrOpaqueToken = errors.New("token is not a JWT")

// Claims are the fields the backend puts in its tokens.
type Claims struct {
	UserID string `json:"userId,omitempty"`
	Role   string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Parse decodes a token without checking its signature.
func Parse(token string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, ErrOpaqueToken
	}
	return claims, nil
}

// Expired reports whether token is a JWT whose exp lies before now. Opaque
// tokens and JWTs without exp never expire locally.
func Expired(token string, now time.Time) bool {
	claims, err := Parse(token)
	if err != nil || claims.ExpiresAt == nil {
		return false
	}
	return !now.Before(claims.ExpiresAt.Time)
}

// Sign issues an HS256 token. Only fake backends in tests hold a secret.
func Sign(secret []byte, userID, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

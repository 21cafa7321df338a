package token

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/seguraep/acm-reportes/internal/pkg/cache"
	"github.com/seguraep/acm-reportes/internal/pkg/env"
)

const (
	issuer           = "acm-reportes"
	TypeAccess       = "access"
	TypeRefresh      = "refresh"
	AccessTTL        = 15 * time.Minute
	RefreshTTL       = 72 * time.Hour
	revokedKeyPrefix = "token:revoked:"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims carried by both access and refresh tokens. TokenType distinguishes
// the two so a refresh token can never be used as a bearer credential.
type Claims struct {
	UserID    uint   `json:"user_id"`
	Role      string `json:"role"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// Pair is the session the auth endpoints hand to the client.
type Pair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

func secret() []byte {
	return []byte(env.GetEnv("JWT_SECRET", ""))
}

func sign(userID uint, role, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:    userID,
		Role:      role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret())
}

// IssuePair creates a fresh access/refresh token pair for the user.
func IssuePair(userID uint, role string) (*Pair, error) {
	access, err := sign(userID, role, TypeAccess, AccessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := sign(userID, role, TypeRefresh, RefreshTTL)
	if err != nil {
		return nil, err
	}
	return &Pair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(AccessTTL.Seconds()),
	}, nil
}

// Parse validates the signature and expiry of raw and returns its claims.
// It does not consult the revocation list; use ParseRefresh for that.
func Parse(raw string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret(), nil
	}, jwt.WithIssuer(issuer))
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ParseAccess validates an access token.
func ParseAccess(raw string) (*Claims, error) {
	claims, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != TypeAccess {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ParseRefresh validates a refresh token and rejects revoked ones.
func ParseRefresh(raw string) (*Claims, error) {
	claims, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != TypeRefresh {
		return nil, ErrInvalidToken
	}
	if revoked, err := cache.Exists(revokedKeyPrefix + claims.ID); err == nil && revoked {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Revoke denylists a refresh token until its natural expiry. Cache failures
// are returned so logout can report them, but an unreachable cache only
// shortens the denylist, it never locks a user out.
func Revoke(claims *Claims) error {
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	return cache.Set(revokedKeyPrefix+claims.ID, "1", ttl)
}

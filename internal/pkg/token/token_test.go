package token

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seguraep/acm-reportes/internal/pkg/env"
)

func setTestSecret(t *testing.T) {
	t.Helper()
	env.Env = map[string]string{"JWT_SECRET": "test-secret"}
	t.Cleanup(func() { env.Env = nil })
}

func TestIssuePairAndParse(t *testing.T) {
	setTestSecret(t)

	pair, err := IssuePair(42, "acm")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, int64(AccessTTL.Seconds()), pair.ExpiresIn)

	access, err := ParseAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint(42), access.UserID)
	assert.Equal(t, "acm", access.Role)
	assert.Equal(t, TypeAccess, access.TokenType)
}

func TestParseAccessRejectsRefreshToken(t *testing.T) {
	setTestSecret(t)

	pair, err := IssuePair(1, "admin")
	require.NoError(t, err)

	_, err = ParseAccess(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsExpired(t *testing.T) {
	setTestSecret(t)

	raw, err := sign(7, "acm", TypeAccess, -time.Minute)
	require.NoError(t, err)

	_, err = Parse(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsWrongSignature(t *testing.T) {
	setTestSecret(t)

	claims := Claims{UserID: 1, TokenType: TypeAccess, RegisteredClaims: jwt.RegisteredClaims{
		Issuer:    issuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
	require.NoError(t, err)

	_, err = Parse(forged)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsGarbage(t *testing.T) {
	setTestSecret(t)

	_, err := Parse("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

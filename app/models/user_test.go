package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	u, err := CreateUser("Ana", "Mora", "acm1@seguraep.gob.ec", "0912345678", "secret-pw")
	require.NoError(t, err)

	assert.Equal(t, ROLE_ACM, u.Role)
	assert.Equal(t, STATUS_ACTIVE, u.Status)
	assert.Equal(t, "Ana Mora", u.NombreCompleto())
	assert.NotEqual(t, "secret-pw", u.Password)
	assert.True(t, u.CheckPassword("secret-pw"))
	assert.False(t, u.CheckPassword("wrong"))
}

func TestCreateUserRejectsInvalidInput(t *testing.T) {
	cases := []struct {
		name     string
		email    string
		cedula   string
		password string
	}{
		{"bad email", "not-an-email", "0912345678", "secret-pw"},
		{"short cedula", "acm1@seguraep.gob.ec", "091", "secret-pw"},
		{"short password", "acm1@seguraep.gob.ec", "0912345678", "ab"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := CreateUser("Ana", "Mora", tc.email, tc.cedula, tc.password)
			assert.Error(t, err)
		})
	}
}

func TestGenerateResetToken(t *testing.T) {
	u := &User{}
	require.NoError(t, u.GenerateResetToken())
	assert.Len(t, u.ResetToken, 32)
	assert.NotNil(t, u.ResetTokenSentAt)

	prev := u.ResetToken
	require.NoError(t, u.GenerateResetToken())
	assert.NotEqual(t, prev, u.ResetToken)
}

func TestIsValidEstado(t *testing.T) {
	for _, e := range ReportEstados {
		assert.True(t, IsValidEstado(e))
	}
	assert.False(t, IsValidEstado(""))
	assert.False(t, IsValidEstado("abierto"))
}

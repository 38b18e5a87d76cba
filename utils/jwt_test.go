package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateJWT("65a1b2c3d4e5f6a7b8c9d0e1", "user@example.com", "user", "")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "65a1b2c3d4e5f6a7b8c9d0e1", claims.ID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, "property-catalogue", claims.Issuer)
}

func TestJWTExpiresInSevenDays(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateJWT("65a1b2c3d4e5f6a7b8c9d0e1", "user@example.com", "user", "")
	require.NoError(t, err)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)

	expected := time.Now().Add(7 * 24 * time.Hour).Unix()
	assert.InDelta(t, expected, claims.ExpiresAt, 5)
}

func TestJWTAdminClaimsCarryName(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateJWT("65a1b2c3d4e5f6a7b8c9d0e1", "admin@example.com", "admin", "Asha")
	require.NoError(t, err)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "Asha", claims.Name)
}

func TestJWTRejectsWrongKey(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	token, err := GenerateJWT("65a1b2c3d4e5f6a7b8c9d0e1", "user@example.com", "user", "")
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "different-secret")
	_, err = ValidateJWT(token)
	assert.Error(t, err)
}

func TestJWTRejectsGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	_, err := ValidateJWT("not-a-token")
	assert.Error(t, err)
}

package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHMACRoundTrip(t *testing.T) {
	svc, err := NewJWTService(JWTConfig{
		Secret:     "unit-test-secret",
		Issuer:     "backoffice",
		Expiration: time.Minute,
	})
	require.NoError(t, err)

	userID := uuid.New()
	token, err := svc.GenerateToken(userID, []string{RoleAccountant})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.True(t, claims.HasRole(RoleAccountant))
	assert.False(t, claims.HasRole(RoleAdmin))
	assert.Equal(t, "backoffice", claims.Issuer)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	issuer, err := NewJWTService(JWTConfig{Secret: "secret-a", Issuer: "backoffice"})
	require.NoError(t, err)
	validator, err := NewJWTService(JWTConfig{Secret: "secret-b", Issuer: "backoffice"})
	require.NoError(t, err)

	token, err := issuer.GenerateToken(uuid.New(), nil)
	require.NoError(t, err)

	_, err = validator.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateRejectsWrongIssuer(t *testing.T) {
	issuer, err := NewJWTService(JWTConfig{Secret: "s", Issuer: "someone-else"})
	require.NoError(t, err)
	validator, err := NewJWTService(JWTConfig{Secret: "s", Issuer: "backoffice"})
	require.NoError(t, err)

	token, err := issuer.GenerateToken(uuid.New(), nil)
	require.NoError(t, err)

	_, err = validator.ValidateToken(token)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "issuer")
}

func TestNewJWTServiceRequiresKeyMaterial(t *testing.T) {
	_, err := NewJWTService(JWTConfig{})
	assert.Error(t, err)
}

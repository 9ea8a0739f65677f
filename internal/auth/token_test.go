package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService() *TokenService {
	return NewTokenService(
		"test-access-secret",
		"test-refresh-secret",
		900,
		604800,
	)
}

func TestTokenService_AccessTokenRoundTrip(t *testing.T) {
	ts := newTestTokenService()
	entityID := uuid.New()

	tokenStr, err := ts.GenerateAccessToken(entityID, "user")
	require.NoError(t, err)
	require.NotEmpty(t, tokenStr)

	isValid, claims, err := ts.ValidateAccessToken(tokenStr)
	require.NoError(t, err)
	assert.True(t, isValid)
	assert.Equal(t, entityID.String(), claims.EntityID)
	assert.Equal(t, "user", claims.EntityType)
}

func TestTokenService_RefreshTokenRejectedAsAccess(t *testing.T) {
	ts := newTestTokenService()

	tokenStr, err := ts.GenerateRefreshToken(uuid.New(), "user")
	require.NoError(t, err)

	// refresh tokens are signed with a different secret, so parsing fails
	isValid, _, err := ts.ValidateAccessToken(tokenStr)
	assert.False(t, isValid)
	assert.Error(t, err)
}

func TestTokenService_GarbageToken(t *testing.T) {
	ts := newTestTokenService()

	isValid, claims, err := ts.ValidateAccessToken("not-a-jwt")
	assert.False(t, isValid)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_ExpiredToken(t *testing.T) {
	ts := NewTokenService("s1", "s2", -60, -60)

	tokenStr, err := ts.GenerateAccessToken(uuid.New(), "admin")
	require.NoError(t, err)

	isValid, _, err := ts.ValidateAccessToken(tokenStr)
	assert.False(t, isValid)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

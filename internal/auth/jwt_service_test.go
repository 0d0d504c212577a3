package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *JWTService {
	svc := &JWTService{}
	svc.SetConfig(TokenConfig{
		Secret:           []byte("test-secret-test-secret-test-secret!"),
		ExpiresIn:        time.Hour,
		RefreshExpiresIn: 24 * time.Hour,
	})
	return svc
}

func TestGenerateAndParseAccessToken(t *testing.T) {
	svc := newTestJWTService()

	pair, err := svc.GenerateTokens("admin", 1, "admin")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	claims, err := svc.ExtractClaims(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.EqualValues(t, 1, claims.UserID)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "access", claims.Type)

	ok, err := svc.IsAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	svc := newTestJWTService()
	pair, err := svc.GenerateTokens("admin", 1, "admin")
	require.NoError(t, err)

	other := &JWTService{}
	other.SetConfig(TokenConfig{
		Secret:           []byte("another-secret-another-secret-secret"),
		ExpiresIn:        time.Hour,
		RefreshExpiresIn: 24 * time.Hour,
	})

	_, err = other.ParseToken(pair.AccessToken)
	assert.Error(t, err)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	svc := &JWTService{}
	svc.SetConfig(TokenConfig{
		Secret:           []byte("test-secret-test-secret-test-secret!"),
		ExpiresIn:        -time.Minute,
		RefreshExpiresIn: 24 * time.Hour,
	})

	token, _, err := svc.GenerateAccessToken("admin", 1, "admin")
	require.NoError(t, err)

	_, err = svc.ParseToken(token)
	assert.Error(t, err)
}

func TestRefreshTokensAreUnique(t *testing.T) {
	svc := newTestJWTService()

	first, _, err := svc.GenerateRefreshToken()
	require.NoError(t, err)
	second, _, err := svc.GenerateRefreshToken()
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

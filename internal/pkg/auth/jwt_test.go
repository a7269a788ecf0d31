package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkuznetsov/awardhub/internal/app/models"
)

func testJWTService() *JWTService {
	return NewJWTService(JWTConfig{
		AccessSecret:    "test-access-secret",
		RefreshSecret:   "test-refresh-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 360 * time.Hour,
		TokenIssuer:     "awardhub-test",
	})
}

func TestGenerateTokenPair(t *testing.T) {
	svc := testJWTService()
	user := &models.User{ID: 42, Role: models.RoleAdmin}

	access, refresh, err := svc.GenerateTokenPair(user)
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)
	assert.NotEqual(t, access, refresh)

	claims, err := svc.ValidateAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, string(models.RoleAdmin), claims.Role)
	assert.Equal(t, "awardhub-test", claims.Issuer)

	refreshClaims, err := svc.ValidateRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, int64(42), refreshClaims.UserID)
}

func TestTokenSecretsAreDistinct(t *testing.T) {
	svc := testJWTService()
	user := &models.User{ID: 7, Role: models.RoleUser}

	access, refresh, err := svc.GenerateTokenPair(user)
	require.NoError(t, err)

	// A refresh token must not pass access validation and vice versa
	_, err = svc.ValidateAccessToken(refresh)
	assert.Error(t, err)
	_, err = svc.ValidateRefreshToken(access)
	assert.Error(t, err)
}

func TestValidateExpiredToken(t *testing.T) {
	svc := NewJWTService(JWTConfig{
		AccessSecret:    "test-access-secret",
		RefreshSecret:   "test-refresh-secret",
		AccessTokenExp:  -time.Minute,
		RefreshTokenExp: -time.Minute,
		TokenIssuer:     "awardhub-test",
	})
	user := &models.User{ID: 1, Role: models.RoleUser}

	access, refresh, err := svc.GenerateTokenPair(user)
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(access)
	assert.ErrorIs(t, err, ErrExpiredToken)
	_, err = svc.ValidateRefreshToken(refresh)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateGarbageToken(t *testing.T) {
	svc := testJWTService()

	_, err := svc.ValidateAccessToken("not-a-token")
	assert.Error(t, err)
	_, err = svc.ValidateAccessToken("")
	assert.Error(t, err)
}

func TestRefreshTokenMaxAge(t *testing.T) {
	svc := testJWTService()
	assert.Equal(t, int((360 * time.Hour).Seconds()), svc.RefreshTokenMaxAge())
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	// A token without the scheme is not a valid Authorization header
	_, err = ExtractBearerToken("abc.def.ghi")
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = ExtractBearerToken("Bearer ")
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = ExtractBearerToken("")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

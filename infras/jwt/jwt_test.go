package jwt_test

import (
	"hotelbook/config"
	"hotelbook/infras/jwt"
	"hotelbook/shared/clock"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "hotelbook"
	cfg.JWT.AccessSecret = "access-secret"
	cfg.JWT.RefreshSecret = "refresh-secret"
	cfg.JWT.AccessExpireMin = 15
	cfg.JWT.RefreshExpireMin = 60

	return cfg
}

func TestGenerateAndValidate(t *testing.T) {
	now := time.Now()
	svc := jwt.New(newConfig(), clock.NewFixed(now))

	pair, err := svc.GenerateTokenPair("user-1", "guest@hotelbook.test", "customer")
	require.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.Equal(t, int64(15*60), pair.ExpiresIn)

	claims, err := svc.ValidateToken(pair.AccessToken, jwt.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "customer", claims.Role)
	assert.Equal(t, jwt.AccessToken, claims.Type)

	_, err = svc.ValidateToken(pair.AccessToken, jwt.RefreshToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken, "access token is signed with the access secret")

	_, err = svc.ValidateToken("not-a-token", jwt.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestExpiredToken(t *testing.T) {
	issued := time.Now().Add(-time.Hour)
	pair, err := jwt.New(newConfig(), clock.NewFixed(issued)).GenerateTokenPair("user-1", "guest@hotelbook.test", "customer")
	require.NoError(t, err)

	later := jwt.New(newConfig(), clock.NewFixed(issued.Add(30*time.Minute)))

	_, err = later.ValidateToken(pair.AccessToken, jwt.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrExpiredToken)

	_, err = later.ValidateToken(pair.RefreshToken, jwt.RefreshToken)
	assert.NoError(t, err)
}

func TestRefreshTokens(t *testing.T) {
	svc := jwt.New(newConfig(), clock.NewFixed(time.Now()))

	pair, err := svc.GenerateTokenPair("owner-1", "owner@hotelbook.test", "owner")
	require.NoError(t, err)

	refreshed, err := svc.RefreshTokens(pair.RefreshToken)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(refreshed.AccessToken, jwt.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "owner", claims.Role)

	_, err = svc.RefreshTokens(pair.AccessToken)
	assert.Error(t, err)
}

func TestExtractTokenFromHeader(t *testing.T) {
	token, err := jwt.ExtractTokenFromHeader("Bearer abc.def")
	require.NoError(t, err)
	assert.Equal(t, "abc.def", token)

	_, err = jwt.ExtractTokenFromHeader("")
	assert.ErrorIs(t, err, jwt.ErrMissingAuthorization)

	_, err = jwt.ExtractTokenFromHeader("Basic abc")
	assert.ErrorIs(t, err, jwt.ErrMalformedAuthorization)

	_, err = jwt.ExtractTokenFromHeader("Bearer ")
	assert.ErrorIs(t, err, jwt.ErrMalformedAuthorization)
}

func TestValidateTokenRejectsOtherIssuer(t *testing.T) {
	now := time.Now()

	other := newConfig()
	other.App.Name = "other-app"

	pair, err := jwt.New(other, clock.NewFixed(now)).GenerateTokenPair("user-1", "guest@hotelbook.test", "customer")
	require.NoError(t, err)

	_, err = jwt.New(newConfig(), clock.NewFixed(now)).ValidateToken(pair.AccessToken, jwt.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidClaim)
}

func TestValidateTokenUnknownType(t *testing.T) {
	_, err := jwt.New(newConfig(), clock.NewFixed(time.Now())).ValidateToken("abc.def.ghi", jwt.TokenType("api"))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, jwt.ErrInvalidToken)
}

package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestManager(expiry time.Duration) *JWTManager {
	return NewJWTManager(JWTConfig{
		Secret:        "test-secret",
		Expiry:        expiry,
		RefreshExpiry: 7 * 24 * time.Hour,
		Issuer:        "event-campus-api",
	})
}

func TestAccessTokenRoundTrip(t *testing.T) {
	manager := newTestManager(time.Hour)

	token, jti, err := manager.GenerateAccessToken(42, "ada@ege.edu.tr", "Ada", "Yilmaz")
	require.NoError(t, err)
	require.NotEmpty(t, jti)

	claims, err := manager.ValidateToken(token)
	require.NoError(t, err)
	require.EqualValues(t, 42, claims.UserID)
	require.Equal(t, "ada@ege.edu.tr", claims.Email)
	require.Equal(t, "Ada", claims.Name)
	require.Equal(t, "Yilmaz", claims.Surname)
	require.Equal(t, "access", claims.TokenType)
	require.Equal(t, jti, claims.ID)
	require.Equal(t, "event-campus-api", claims.Issuer)
}

func TestExpiredTokenRejected(t *testing.T) {
	manager := newTestManager(-time.Minute)

	token, _, err := manager.GenerateAccessToken(1, "a@ege.edu.tr", "A", "B")
	require.NoError(t, err)

	_, err = manager.ValidateToken(token)
	require.ErrorIs(t, err, ErrExpiredToken)
}

func TestTamperedTokenRejected(t *testing.T) {
	manager := newTestManager(time.Hour)

	token, _, err := manager.GenerateAccessToken(1, "a@ege.edu.tr", "A", "B")
	require.NoError(t, err)

	other := NewJWTManager(JWTConfig{Secret: "other-secret", Expiry: time.Hour})
	_, err = other.ValidateToken(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshAccessToken(t *testing.T) {
	manager := newTestManager(time.Hour)

	refreshToken, _, err := manager.GenerateRefreshToken(7, "b@ege.edu.tr", "Bora", "Kaya")
	require.NoError(t, err)

	accessToken, jti, err := manager.RefreshAccessToken(refreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, jti)

	claims, err := manager.ValidateToken(accessToken)
	require.NoError(t, err)
	require.Equal(t, "access", claims.TokenType)
	require.EqualValues(t, 7, claims.UserID)
	require.Equal(t, "Bora", claims.Name)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	manager := newTestManager(time.Hour)

	accessToken, _, err := manager.GenerateAccessToken(7, "b@ege.edu.tr", "Bora", "Kaya")
	require.NoError(t, err)

	_, _, err = manager.RefreshAccessToken(accessToken)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestGetTokenExpiry(t *testing.T) {
	manager := newTestManager(time.Hour)

	token, _, err := manager.GenerateAccessToken(1, "a@ege.edu.tr", "A", "B")
	require.NoError(t, err)

	expiry, err := manager.GetTokenExpiry(token)
	require.NoError(t, err)
	require.WithinDuration(t, time.Now().Add(time.Hour), expiry, time.Minute)
}

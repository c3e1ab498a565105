package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/your-org/sneakershop-backend/internal/config"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "sneakershop"},
		JWT: config.JWTConfig{
			Secret:             "test-secret-at-least-32-characters-long",
			AccessTokenExpiry:  15 * time.Minute,
			RefreshTokenExpiry: 7 * 24 * time.Hour,
		},
		Security: config.SecurityConfig{BcryptCost: bcrypt.MinCost},
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	mgr := NewJWTManager(testConfig())

	token, err := mgr.GenerateAccessToken(42, "jordan@example.com", true)
	require.NoError(t, err)

	claims, err := mgr.ValidateAccessToken(token)
	require.NoError(t, err)
	require.Equal(t, uint(42), claims.UserID)
	require.Equal(t, "jordan@example.com", claims.Email)
	require.True(t, claims.IsAdmin)
	require.Equal(t, "access", claims.TokenType)
}

func TestRefreshTokenDropsAdminFlag(t *testing.T) {
	mgr := NewJWTManager(testConfig())

	token, err := mgr.GenerateRefreshToken(42, "jordan@example.com")
	require.NoError(t, err)

	claims, err := mgr.ValidateRefreshToken(token)
	require.NoError(t, err)
	require.False(t, claims.IsAdmin)
}

func TestTokenTypeMismatchRejected(t *testing.T) {
	mgr := NewJWTManager(testConfig())

	access, err := mgr.GenerateAccessToken(1, "a@b.com", false)
	require.NoError(t, err)
	refresh, err := mgr.GenerateRefreshToken(1, "a@b.com")
	require.NoError(t, err)

	_, err = mgr.ValidateRefreshToken(access)
	require.Error(t, err)
	_, err = mgr.ValidateAccessToken(refresh)
	require.Error(t, err)
}

func TestTokenSignedWithOtherSecretRejected(t *testing.T) {
	mgr := NewJWTManager(testConfig())

	otherCfg := testConfig()
	otherCfg.JWT.Secret = "a-completely-different-signing-secret!"
	other := NewJWTManager(otherCfg)

	token, err := other.GenerateAccessToken(1, "a@b.com", false)
	require.NoError(t, err)

	_, err = mgr.ValidateToken(token)
	require.Error(t, err)
}

func TestExtractTokenFromHeader(t *testing.T) {
	require.Equal(t, "abc.def.ghi", ExtractTokenFromHeader("Bearer abc.def.ghi"))
	require.Equal(t, "", ExtractTokenFromHeader("abc.def.ghi"))
	require.Equal(t, "", ExtractTokenFromHeader(""))
	require.Equal(t, "", ExtractTokenFromHeader("Basic dXNlcjpwYXNz"))
}

func TestHashAndVerifyPassword(t *testing.T) {
	mgr := NewPasswordManager(testConfig())

	hash, err := mgr.HashPassword("sneakers123")
	require.NoError(t, err)
	require.NotEqual(t, "sneakers123", hash)

	require.NoError(t, mgr.VerifyPassword("sneakers123", hash))
	require.Error(t, mgr.VerifyPassword("sneakers124", hash))
}

func TestValidatePasswordRules(t *testing.T) {
	mgr := NewPasswordManager(testConfig())

	require.Error(t, mgr.ValidatePassword("abc1"))
	require.Error(t, mgr.ValidatePassword("onlyletters"))
	require.Error(t, mgr.ValidatePassword("12345678"))
	require.NoError(t, mgr.ValidatePassword("sneakers123"))
}

func TestGenerateResetTokenIsRandom(t *testing.T) {
	a, err := GenerateResetToken()
	require.NoError(t, err)
	require.Len(t, a, 64)

	b, err := GenerateResetToken()
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

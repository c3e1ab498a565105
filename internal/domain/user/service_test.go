package user

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"github.com/your-org/sneakershop-backend/internal/config"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&User{}))

	cfg := &config.Config{
		App: config.AppConfig{Name: "sneakershop"},
		JWT: config.JWTConfig{
			Secret:             "test-secret-test-secret-test-secret",
			AccessTokenExpiry:  15 * time.Minute,
			RefreshTokenExpiry: 24 * time.Hour,
		},
		Security: config.SecurityConfig{BcryptCost: bcrypt.MinCost},
	}

	return NewService(db, nil, cfg, nil)
}

func registerReq() *RegisterRequest {
	return &RegisterRequest{
		Email:           "Sam@Example.com",
		Password:        "sneaker99",
		ConfirmPassword: "sneaker99",
		FirstName:       "Sam",
		LastName:        "Reyes",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestService(t)

	resp, err := svc.Register(registerReq())
	require.NoError(t, err)
	require.Equal(t, "sam@example.com", resp.User.Email)
	require.Empty(t, resp.User.Password)
	require.NotEmpty(t, resp.AccessToken)
	require.NotEmpty(t, resp.RefreshToken)
	require.False(t, resp.User.IsAdmin)

	login, err := svc.Login(&LoginRequest{Email: "sam@example.com", Password: "sneaker99"})
	require.NoError(t, err)
	require.NotNil(t, login.User.LastLoginAt)
}

func TestRegisterRejectsMismatchedPasswords(t *testing.T) {
	svc := newTestService(t)

	req := registerReq()
	req.ConfirmPassword = "different1"
	_, err := svc.Register(req)
	require.Error(t, err)
	require.Contains(t, err.Error(), "do not match")
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	svc := newTestService(t)

	req := registerReq()
	req.Password = "short1"
	req.ConfirmPassword = "short1"
	_, err := svc.Register(req)
	require.Error(t, err)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Register(registerReq())
	require.NoError(t, err)

	req := registerReq()
	req.Email = "SAM@example.com" // same account, different casing
	_, err = svc.Register(req)
	require.Error(t, err)
	require.Contains(t, err.Error(), "already exists")
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Register(registerReq())
	require.NoError(t, err)

	_, err = svc.Login(&LoginRequest{Email: "sam@example.com", Password: "wrongpass1"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid email or password")
}

func TestRefreshTokenIssuesNewPair(t *testing.T) {
	svc := newTestService(t)
	resp, err := svc.Register(registerReq())
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(resp.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, refreshed.AccessToken)

	// An access token must not work as a refresh token.
	_, err = svc.RefreshToken(resp.AccessToken)
	require.Error(t, err)
}

func TestChangePassword(t *testing.T) {
	svc := newTestService(t)
	resp, err := svc.Register(registerReq())
	require.NoError(t, err)

	err = svc.ChangePassword(resp.User.ID, "wrongpass1", "newpass123")
	require.Error(t, err)

	require.NoError(t, svc.ChangePassword(resp.User.ID, "sneaker99", "newpass123"))

	_, err = svc.Login(&LoginRequest{Email: "sam@example.com", Password: "newpass123"})
	require.NoError(t, err)
}

func TestUpdateProfilePartialFields(t *testing.T) {
	svc := newTestService(t)
	resp, err := svc.Register(registerReq())
	require.NoError(t, err)

	first := "Sammy"
	updated, err := svc.UpdateProfile(resp.User.ID, &UpdateProfileRequest{FirstName: &first})
	require.NoError(t, err)
	require.Equal(t, "Sammy", updated.FirstName)
	require.Equal(t, "Reyes", updated.LastName)
}

func TestSetActiveBlocksLogin(t *testing.T) {
	svc := newTestService(t)
	resp, err := svc.Register(registerReq())
	require.NoError(t, err)

	require.NoError(t, svc.SetActive(resp.User.ID, false))

	_, err = svc.Login(&LoginRequest{Email: "sam@example.com", Password: "sneaker99"})
	require.Error(t, err)
}

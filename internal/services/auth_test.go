package services_test

import (
	"testing"
	"time"

	"taskhub/backend/internal/apperrors"
	"taskhub/backend/internal/config"
	"taskhub/backend/internal/services"
	"taskhub/backend/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:      "test-secret",
		TokenIssuer:    "taskhub-backend",
		AccessTokenTTL: time.Hour,
		BCryptCost:     bcrypt.MinCost,
	}
}

func TestRegisterAndLogin(t *testing.T) {
	db := openTestDB(t)
	service := services.NewAuthService(testAuthConfig())

	user, err := service.Register(db, validation.Register{
		Name: "Alice Doe", Email: "alice@example.com", Password: "Secret123",
	})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEqual(t, "Secret123", user.Password)

	loggedIn, token, err := service.Login(db, validation.Login{
		Email: "alice@example.com", Password: "Secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.NotEmpty(t, token)
}

func TestRegister_DuplicateEmailConflicts(t *testing.T) {
	db := openTestDB(t)
	service := services.NewAuthService(testAuthConfig())

	in := validation.Register{Name: "Alice Doe", Email: "alice@example.com", Password: "Secret123"}
	_, err := service.Register(db, in)
	require.NoError(t, err)

	_, err = service.Register(db, in)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.KindConflict, appErr.Kind)
}

func TestLogin_GenericFailure(t *testing.T) {
	db := openTestDB(t)
	service := services.NewAuthService(testAuthConfig())

	_, err := service.Register(db, validation.Register{
		Name: "Alice Doe", Email: "alice@example.com", Password: "Secret123",
	})
	require.NoError(t, err)

	// unknown email and wrong password report the same message
	_, _, errUnknown := service.Login(db, validation.Login{Email: "nobody@example.com", Password: "Secret123"})
	_, _, errWrongPw := service.Login(db, validation.Login{Email: "alice@example.com", Password: "wrong"})

	unknownErr, ok := apperrors.As(errUnknown)
	require.True(t, ok)
	wrongPwErr, ok := apperrors.As(errWrongPw)
	require.True(t, ok)

	assert.Equal(t, apperrors.KindAuthentication, unknownErr.Kind)
	assert.Equal(t, apperrors.KindAuthentication, wrongPwErr.Kind)
	assert.Equal(t, unknownErr.Message, wrongPwErr.Message)
}

func TestTokenRoundTrip(t *testing.T) {
	service := services.NewAuthService(testAuthConfig())

	token, err := service.GenerateToken(42)
	require.NoError(t, err)

	userID, err := service.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestParseToken_RejectsForgedAndExpired(t *testing.T) {
	service := services.NewAuthService(testAuthConfig())

	_, err := service.ParseToken("not-a-token")
	assert.Error(t, err)

	forged := services.NewAuthService(config.AuthConfig{
		JWTSecret: "other-secret", TokenIssuer: "taskhub-backend",
		AccessTokenTTL: time.Hour, BCryptCost: bcrypt.MinCost,
	})
	token, err := forged.GenerateToken(42)
	require.NoError(t, err)
	_, err = service.ParseToken(token)
	assert.Error(t, err)

	expiring := services.NewAuthService(config.AuthConfig{
		JWTSecret: "test-secret", TokenIssuer: "taskhub-backend",
		AccessTokenTTL: -time.Minute, BCryptCost: bcrypt.MinCost,
	})
	token, err = expiring.GenerateToken(42)
	require.NoError(t, err)
	_, err = service.ParseToken(token)
	assert.Error(t, err)
}

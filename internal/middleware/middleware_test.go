package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"taskhub/backend/internal/config"
	"taskhub/backend/internal/middleware"
	"taskhub/backend/internal/models"
	"taskhub/backend/internal/ratelimit"
	"taskhub/backend/internal/response"
	"taskhub/backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func openMiddlewareTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Category{}, &models.Task{}))
	return db
}

func newAuthFixture(t *testing.T) (*gorm.DB, services.AuthService, models.User, string) {
	db := openMiddlewareTestDB(t)
	authService := services.NewAuthService(config.AuthConfig{
		JWTSecret:      "test-secret",
		TokenIssuer:    "taskhub-backend",
		AccessTokenTTL: time.Hour,
		BCryptCost:     bcrypt.MinCost,
	})

	user := models.User{Name: "Alice Doe", Email: "alice@example.com", Password: "x"}
	require.NoError(t, db.Create(&user).Error)

	token, err := authService.GenerateToken(user.ID)
	require.NoError(t, err)
	return db, authService, user, token
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) response.Envelope {
	var env response.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestRequireAuth(t *testing.T) {
	db, authService, user, token := newAuthFixture(t)

	router := gin.New()
	router.GET("/protected", middleware.RequireAuth(db, authService), func(c *gin.Context) {
		userID := c.GetUint(middleware.ContextUserIDKey)
		response.OK(c, http.StatusOK, "ok", gin.H{"user_id": userID})
	})

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc123", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-token", http.StatusUnauthorized},
		{"valid token", "Bearer " + token, http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tc.status, rec.Code)
			env := decodeEnvelope(t, rec)
			if tc.status == http.StatusOK {
				assert.True(t, env.Success)
				data := env.Data.(map[string]interface{})
				assert.Equal(t, float64(user.ID), data["user_id"])
			} else {
				assert.False(t, env.Success)
				assert.NotEmpty(t, env.Message)
			}
		})
	}
}

func TestRequireAuth_DeletedUserRejected(t *testing.T) {
	db, authService, user, token := newAuthFixture(t)
	require.NoError(t, db.Delete(&models.User{}, user.ID).Error)

	router := gin.New()
	router.GET("/protected", middleware.RequireAuth(db, authService), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOptionalAuth(t *testing.T) {
	db, authService, user, token := newAuthFixture(t)

	router := gin.New()
	router.GET("/open", middleware.OptionalAuth(db, authService), func(c *gin.Context) {
		response.OK(c, http.StatusOK, "ok", gin.H{"user_id": c.GetUint(middleware.ContextUserIDKey)})
	})

	// anonymous request proceeds with the zero user id
	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, float64(0), env.Data.(map[string]interface{})["user_id"])

	// a valid token attaches the identity
	req = httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	env = decodeEnvelope(t, rec)
	assert.Equal(t, float64(user.ID), env.Data.(map[string]interface{})["user_id"])

	// a bad token is ignored rather than rejected
	req = httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set("Authorization", "Bearer junk")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

type stubLimiter struct {
	result ratelimit.Result
	err    error
}

func (s stubLimiter) Allow(ctx context.Context, key string) (ratelimit.Result, error) {
	return s.result, s.err
}

func TestRateLimit_RejectsWithRetryAfter(t *testing.T) {
	router := gin.New()
	router.Use(middleware.RateLimit(stubLimiter{
		result: ratelimit.Result{Allowed: false, RetryAfter: 42 * time.Second},
	}))
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "42", rec.Header().Get("Retry-After"))
	env := decodeEnvelope(t, rec)
	assert.False(t, env.Success)
	assert.Equal(t, float64(42), env.Data.(map[string]interface{})["retry_after"])
}

func TestRateLimit_FailsOpenOnLimiterError(t *testing.T) {
	router := gin.New()
	router.Use(middleware.RateLimit(stubLimiter{err: errors.New("redis down")}))
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimit_AllowsUnderLimit(t *testing.T) {
	limiter := ratelimit.NewMemoryLimiter(5, time.Minute, time.Minute)
	defer limiter.Stop()

	router := gin.New()
	router.Use(middleware.RateLimit(limiter))
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRecoveryWithLog(t *testing.T) {
	router := gin.New()
	router.Use(middleware.RecoveryWithLog())
	router.GET("/boom", func(c *gin.Context) {
		panic("kaboom")
	})

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.False(t, env.Success)
	assert.Equal(t, "an unexpected error occurred", env.Message)
}

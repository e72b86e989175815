package config

import (
	"os"
	"testing"
	"time"
)

func setEnvVars(vars map[string]string) {
	for k, v := range vars {
		os.Setenv(k, v)
	}
}

func clearEnvVars(vars []string) {
	for _, k := range vars {
		os.Unsetenv(k)
	}
}

var allEnvVars = []string{
	"HOST", "PORT", "READ_TIMEOUT", "WRITE_TIMEOUT", "IDLE_TIMEOUT", "ENVIRONMENT",
	"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSL_MODE",
	"DB_MAX_OPEN_CONNS", "DB_MAX_IDLE_CONNS", "DB_CONN_MAX_LIFETIME", "DB_CONN_MAX_IDLE_TIME",
	"REDIS_HOST", "REDIS_PORT", "REDIS_PASSWORD", "REDIS_DB", "REDIS_POOL_SIZE",
	"REDIS_MIN_IDLE_CONNS", "REDIS_MAX_RETRIES", "REDIS_DIAL_TIMEOUT", "REDIS_READ_TIMEOUT", "REDIS_WRITE_TIMEOUT",
	"JWT_SECRET", "TOKEN_ISSUER", "ACCESS_TOKEN_TTL", "BCRYPT_COST",
	"RATE_LIMIT_ENABLED", "RATE_LIMIT_MAX_REQUESTS", "RATE_LIMIT_WINDOW",
	"RATE_LIMIT_BACKEND", "RATE_LIMIT_CLEANUP",
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnvVars(allEnvVars)

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("Expected no error with default config, got: %v", err)
	}

	if config.Server.Host != "localhost" {
		t.Errorf("Expected default host 'localhost', got %s", config.Server.Host)
	}

	if config.Server.Port != "8080" {
		t.Errorf("Expected default port '8080', got %s", config.Server.Port)
	}

	if config.Server.Environment != "development" {
		t.Errorf("Expected default environment 'development', got %s", config.Server.Environment)
	}

	if config.Database.Host != "localhost" {
		t.Errorf("Expected default DB host 'localhost', got %s", config.Database.Host)
	}

	if config.Database.Port != "5432" {
		t.Errorf("Expected default DB port '5432', got %s", config.Database.Port)
	}

	if config.Database.User != "postgres" {
		t.Errorf("Expected default DB user 'postgres', got %s", config.Database.User)
	}

	if config.Database.Name != "taskhub" {
		t.Errorf("Expected default DB name 'taskhub', got %s", config.Database.Name)
	}

	if config.Database.MaxOpenConns != 25 {
		t.Errorf("Expected default max open conns 25, got %d", config.Database.MaxOpenConns)
	}

	if config.Redis.Host != "localhost" {
		t.Errorf("Expected default Redis host 'localhost', got %s", config.Redis.Host)
	}

	if config.Redis.Port != "6379" {
		t.Errorf("Expected default Redis port '6379', got %s", config.Redis.Port)
	}

	if config.Redis.DB != 0 {
		t.Errorf("Expected default Redis DB 0, got %d", config.Redis.DB)
	}

	if config.Redis.PoolSize != 10 {
		t.Errorf("Expected default Redis pool size 10, got %d", config.Redis.PoolSize)
	}

	if config.Auth.BCryptCost != 10 {
		t.Errorf("Expected default bcrypt cost 10, got %d", config.Auth.BCryptCost)
	}

	if config.Auth.TokenIssuer != "taskhub-backend" {
		t.Errorf("Expected default token issuer 'taskhub-backend', got %s", config.Auth.TokenIssuer)
	}

	if config.Auth.AccessTokenTTL != 24*time.Hour {
		t.Errorf("Expected default access token TTL 24h, got %v", config.Auth.AccessTokenTTL)
	}

	if !config.RateLimit.Enabled {
		t.Error("Expected rate limiting to be enabled by default")
	}

	if config.RateLimit.MaxRequests != 100 {
		t.Errorf("Expected default max requests 100, got %d", config.RateLimit.MaxRequests)
	}

	if config.RateLimit.Window != time.Minute {
		t.Errorf("Expected default window 1m, got %v", config.RateLimit.Window)
	}

	if config.RateLimit.Backend != "memory" {
		t.Errorf("Expected default backend 'memory', got %s", config.RateLimit.Backend)
	}
}

func TestLoadConfig_CustomEnvironment(t *testing.T) {
	envVars := map[string]string{
		"HOST":                    "0.0.0.0",
		"PORT":                    "9000",
		"ENVIRONMENT":             "production",
		"DB_HOST":                 "db.example.com",
		"DB_PORT":                 "5433",
		"DB_USER":                 "app_user",
		"DB_PASSWORD":             "secure_password",
		"DB_NAME":                 "production_db",
		"DB_MAX_OPEN_CONNS":       "50",
		"REDIS_HOST":              "redis.example.com",
		"REDIS_PORT":              "6380",
		"REDIS_PASSWORD":          "redis_pass",
		"REDIS_DB":                "1",
		"JWT_SECRET":              "super-secret-key",
		"RATE_LIMIT_ENABLED":      "false",
		"RATE_LIMIT_MAX_REQUESTS": "200",
		"RATE_LIMIT_BACKEND":      "redis",
		"READ_TIMEOUT":            "45s",
		"WRITE_TIMEOUT":           "45s",
		"ACCESS_TOKEN_TTL":        "30m",
	}

	setEnvVars(envVars)
	defer func() {
		var keys []string
		for k := range envVars {
			keys = append(keys, k)
		}
		clearEnvVars(keys)
	}()

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("Expected no error with custom config, got: %v", err)
	}

	if config.Server.Host != "0.0.0.0" {
		t.Errorf("Expected host '0.0.0.0', got %s", config.Server.Host)
	}

	if config.Server.Port != "9000" {
		t.Errorf("Expected port '9000', got %s", config.Server.Port)
	}

	if config.Server.Environment != "production" {
		t.Errorf("Expected environment 'production', got %s", config.Server.Environment)
	}

	if config.Database.Host != "db.example.com" {
		t.Errorf("Expected DB host 'db.example.com', got %s", config.Database.Host)
	}

	if config.Database.Password != "secure_password" {
		t.Errorf("Expected DB password 'secure_password', got %s", config.Database.Password)
	}

	if config.Database.MaxOpenConns != 50 {
		t.Errorf("Expected max open conns 50, got %d", config.Database.MaxOpenConns)
	}

	if config.Redis.Host != "redis.example.com" {
		t.Errorf("Expected Redis host 'redis.example.com', got %s", config.Redis.Host)
	}

	if config.Redis.DB != 1 {
		t.Errorf("Expected Redis DB 1, got %d", config.Redis.DB)
	}

	if config.Auth.JWTSecret != "super-secret-key" {
		t.Errorf("Expected JWT secret 'super-secret-key', got %s", config.Auth.JWTSecret)
	}

	if config.RateLimit.Enabled {
		t.Error("Expected rate limiting to be disabled")
	}

	if config.RateLimit.MaxRequests != 200 {
		t.Errorf("Expected max requests 200, got %d", config.RateLimit.MaxRequests)
	}

	if config.RateLimit.Backend != "redis" {
		t.Errorf("Expected backend 'redis', got %s", config.RateLimit.Backend)
	}

	if config.Server.ReadTimeout != 45*time.Second {
		t.Errorf("Expected read timeout 45s, got %v", config.Server.ReadTimeout)
	}

	if config.Auth.AccessTokenTTL != 30*time.Minute {
		t.Errorf("Expected access token TTL 30m, got %v", config.Auth.AccessTokenTTL)
	}
}

func TestLoadConfig_ProductionValidation(t *testing.T) {
	clearEnvVars(allEnvVars)
	envVars := map[string]string{
		"ENVIRONMENT": "production",
		"JWT_SECRET":  "secure-jwt-secret",
	}

	setEnvVars(envVars)
	defer func() {
		var keys []string
		for k := range envVars {
			keys = append(keys, k)
		}
		clearEnvVars(keys)
	}()

	_, err := LoadConfig()
	if err == nil {
		t.Fatal("Expected error for missing database password in production")
	}

	if err.Error() != "database password is required in production" {
		t.Errorf("Expected specific error message, got: %v", err)
	}
}

func TestLoadConfig_ProductionJWTValidation(t *testing.T) {
	clearEnvVars(allEnvVars)
	envVars := map[string]string{
		"ENVIRONMENT": "production",
		"DB_PASSWORD": "secure-db-password",
	}

	setEnvVars(envVars)
	defer func() {
		var keys []string
		for k := range envVars {
			keys = append(keys, k)
		}
		clearEnvVars(keys)
	}()

	_, err := LoadConfig()
	if err == nil {
		t.Fatal("Expected error for default JWT secret in production")
	}

	if err.Error() != "JWT secret must be set in production" {
		t.Errorf("Expected specific error message, got: %v", err)
	}
}

func TestLoadConfig_RejectsZeroMaxRequests(t *testing.T) {
	clearEnvVars(allEnvVars)
	os.Setenv("RATE_LIMIT_MAX_REQUESTS", "0")
	defer os.Unsetenv("RATE_LIMIT_MAX_REQUESTS")

	_, err := LoadConfig()
	if err == nil {
		t.Fatal("Expected error for zero rate limit max requests")
	}

	if err.Error() != "rate limit max requests must be at least 1" {
		t.Errorf("Expected specific error message, got: %v", err)
	}
}

func TestLoadConfig_UnknownRateLimitBackend(t *testing.T) {
	clearEnvVars(allEnvVars)
	os.Setenv("RATE_LIMIT_BACKEND", "memcached")
	defer os.Unsetenv("RATE_LIMIT_BACKEND")

	_, err := LoadConfig()
	if err == nil {
		t.Fatal("Expected error for unknown rate limit backend")
	}
}

func TestConfig_GetDatabaseDSN(t *testing.T) {
	config := &Config{
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     "5432",
			User:     "testuser",
			Password: "testpass",
			Name:     "testdb",
			SSLMode:  "require",
		},
	}

	expected := "host=localhost port=5432 user=testuser password=testpass dbname=testdb sslmode=require"
	actual := config.GetDatabaseDSN()

	if actual != expected {
		t.Errorf("Expected DSN '%s', got '%s'", expected, actual)
	}
}

func TestConfig_GetRedisAddr(t *testing.T) {
	config := &Config{
		Redis: RedisConfig{
			Host: "redis.example.com",
			Port: "6380",
		},
	}

	expected := "redis.example.com:6380"
	actual := config.GetRedisAddr()

	if actual != expected {
		t.Errorf("Expected Redis addr '%s', got '%s'", expected, actual)
	}
}

func TestConfig_GetServerAddr(t *testing.T) {
	config := &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: "9000",
		},
	}

	expected := "0.0.0.0:9000"
	actual := config.GetServerAddr()

	if actual != expected {
		t.Errorf("Expected server addr '%s', got '%s'", expected, actual)
	}
}

func TestConfig_IsProduction(t *testing.T) {
	tests := []struct {
		environment string
		expected    bool
	}{
		{"production", true},
		{"development", false},
		{"staging", false},
		{"test", false},
		{"", false},
	}

	for _, test := range tests {
		config := &Config{
			Server: ServerConfig{
				Environment: test.environment,
			},
		}

		actual := config.IsProduction()
		if actual != test.expected {
			t.Errorf("For environment '%s', expected IsProduction() = %v, got %v",
				test.environment, test.expected, actual)
		}
	}
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	defaultValue := "default"

	os.Unsetenv(key)
	result := getEnv(key, defaultValue)
	if result != defaultValue {
		t.Errorf("Expected default value '%s', got '%s'", defaultValue, result)
	}

	expectedValue := "custom_value"
	os.Setenv(key, expectedValue)
	defer os.Unsetenv(key)

	result = getEnv(key, defaultValue)
	if result != expectedValue {
		t.Errorf("Expected env value '%s', got '%s'", expectedValue, result)
	}
}

func TestGetEnvAsInt(t *testing.T) {
	key := "TEST_INT_VAR"
	defaultValue := 42

	os.Unsetenv(key)
	result := getEnvAsInt(key, defaultValue)
	if result != defaultValue {
		t.Errorf("Expected default value %d, got %d", defaultValue, result)
	}

	os.Setenv(key, "100")
	defer os.Unsetenv(key)

	result = getEnvAsInt(key, defaultValue)
	if result != 100 {
		t.Errorf("Expected env value 100, got %d", result)
	}

	os.Setenv(key, "not-a-number")
	result = getEnvAsInt(key, defaultValue)
	if result != defaultValue {
		t.Errorf("Expected default value %d for invalid int, got %d", defaultValue, result)
	}
}

func TestGetEnvAsBool(t *testing.T) {
	key := "TEST_BOOL_VAR"
	defaultValue := true

	os.Unsetenv(key)
	result := getEnvAsBool(key, defaultValue)
	if result != defaultValue {
		t.Errorf("Expected default value %v, got %v", defaultValue, result)
	}

	testCases := []struct {
		value    string
		expected bool
	}{
		{"true", true},
		{"false", false},
		{"1", true},
		{"0", false},
		{"True", true},
		{"False", false},
		{"invalid", defaultValue},
	}

	for _, tc := range testCases {
		os.Setenv(key, tc.value)
		result = getEnvAsBool(key, defaultValue)
		if result != tc.expected {
			t.Errorf("For value '%s', expected %v, got %v", tc.value, tc.expected, result)
		}
	}

	os.Unsetenv(key)
}

func TestGetEnvAsDuration(t *testing.T) {
	key := "TEST_DURATION_VAR"
	defaultValue := 30 * time.Second

	os.Unsetenv(key)
	result := getEnvAsDuration(key, defaultValue)
	if result != defaultValue {
		t.Errorf("Expected default value %v, got %v", defaultValue, result)
	}

	os.Setenv(key, "5m")
	defer os.Unsetenv(key)

	result = getEnvAsDuration(key, defaultValue)
	if result != 5*time.Minute {
		t.Errorf("Expected env value 5m, got %v", result)
	}

	os.Setenv(key, "not-a-duration")
	result = getEnvAsDuration(key, defaultValue)
	if result != defaultValue {
		t.Errorf("Expected default value %v for invalid duration, got %v", defaultValue, result)
	}
}

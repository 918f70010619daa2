package config

import (
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

var configKeys = []string{
	"APP_ENV", "APP_PORT", "APP_HOST", "LOG_LEVEL", "JWT_SECRET",
	"DB_DRIVER", "DB_PATH", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE",
	"RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "CORS_ALLOWED_ORIGINS", "SEED_DATABASE",
}

// clearEnv blanks every key LoadConfig reads; t.Setenv restores them after the test
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

func TestGetEnvWithDefault(t *testing.T) {
	testCases := []struct {
		name         string
		key          string
		defaultValue string
		envValue     string
		expected     string
	}{
		{
			name:         "should return env value when set",
			key:          "TEST_KEY",
			defaultValue: "default",
			envValue:     "from_env",
			expected:     "from_env",
		},
		{
			name:         "should return default when env not set",
			key:          "MISSING_KEY",
			defaultValue: "default_value",
			expected:     "default_value",
		},
		{
			name:     "should return empty string default",
			key:      "EMPTY_KEY",
			expected: "",
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.envValue)

			result := GetEnvWithDefault(tt.key, tt.defaultValue)

			if result != tt.expected {
				t.Errorf("GetEnvWithDefault() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestGetEnvAsType(t *testing.T) {
	t.Setenv("TYPED_INT", "42")
	t.Setenv("TYPED_FLOAT", "2.5")
	t.Setenv("TYPED_BOOL", "false")
	t.Setenv("TYPED_BAD", "not-a-number")

	if got := GetEnvAsType("TYPED_INT", 1); got != 42 {
		t.Errorf("int = %d, expected 42", got)
	}
	if got := GetEnvAsType("TYPED_FLOAT", 1.0); got != 2.5 {
		t.Errorf("float = %v, expected 2.5", got)
	}
	if got := GetEnvAsType("TYPED_BOOL", true); got {
		t.Error("bool = true, expected false")
	}
	if got := GetEnvAsType("TYPED_BAD", 7); got != 7 {
		t.Errorf("malformed int = %d, expected default 7", got)
	}
	if got := GetEnvAsType("TYPED_MISSING", "fallback"); got != "fallback" {
		t.Errorf("missing = %s, expected fallback", got)
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("successful config load with all env vars", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("APP_PORT", "9000")
		t.Setenv("APP_HOST", "0.0.0.0")
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("JWT_SECRET", "super_secret_jwt_key")
		t.Setenv("DB_DRIVER", "postgres")
		t.Setenv("DB_PASSWORD", "hunter2")
		t.Setenv("RATE_LIMIT_RPS", "5")
		t.Setenv("RATE_LIMIT_BURST", "10")
		t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
		t.Setenv("SEED_DATABASE", "false")

		config, err := LoadConfig()
		if err != nil {
			t.Fatalf("LoadConfig() returned error: %v", err)
		}

		if config.Port != 9000 {
			t.Errorf("Port = %d, expected 9000", config.Port)
		}
		if config.Host != "0.0.0.0" {
			t.Errorf("Host = %s, expected 0.0.0.0", config.Host)
		}
		if config.LogrusLevel() != logrus.DebugLevel {
			t.Errorf("LogrusLevel = %v, expected debug", config.LogrusLevel())
		}
		if config.JWTSecret != "super_secret_jwt_key" {
			t.Errorf("JWTSecret = %s", config.JWTSecret)
		}
		if config.RateLimitRPS != 5 || config.RateLimitBurst != 10 {
			t.Errorf("RateLimit = %v/%d, expected 5/10", config.RateLimitRPS, config.RateLimitBurst)
		}
		if len(config.AllowedOrigins) != 2 || config.AllowedOrigins[1] != "https://b.example" {
			t.Errorf("AllowedOrigins = %v", config.AllowedOrigins)
		}
		if config.SeedDB {
			t.Error("SeedDB = true, expected false")
		}

		db := config.Database()
		if db.Driver != "postgres" || db.Password != "hunter2" || db.Port != "5432" {
			t.Errorf("Database() = %s", db.String())
		}
	})

	t.Run("should fail with invalid port", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("APP_PORT", "not_a_number")

		config, err := LoadConfig()

		if err == nil {
			t.Error("LoadConfig() should return error when APP_PORT is invalid")
		}
		if config != nil {
			t.Error("Config should be nil when error occurs")
		}
	})

	t.Run("should fail with unknown driver", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DB_DRIVER", "mysql")

		if _, err := LoadConfig(); err == nil {
			t.Error("LoadConfig() should reject DB_DRIVER=mysql")
		}
	})

	t.Run("production requires a strong JWT secret", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("APP_ENV", "production")

		if _, err := LoadConfig(); err == nil {
			t.Error("LoadConfig() should require JWT_SECRET in production")
		}

		t.Setenv("JWT_SECRET", "short")
		if _, err := LoadConfig(); err == nil {
			t.Error("LoadConfig() should reject a short JWT_SECRET in production")
		}

		t.Setenv("JWT_SECRET", strings.Repeat("k", 32))
		if _, err := LoadConfig(); err != nil {
			t.Errorf("LoadConfig() returned error: %v", err)
		}
	})

	t.Run("should use defaults when optional env vars not set", func(t *testing.T) {
		clearEnv(t)

		config, err := LoadConfig()
		if err != nil {
			t.Fatalf("LoadConfig() returned unexpected error: %v", err)
		}

		if config.Port != 8080 {
			t.Errorf("Port = %d, expected default 8080", config.Port)
		}
		if config.Host != "localhost" {
			t.Errorf("Host = %s, expected default localhost", config.Host)
		}
		if config.LogLevel != "info" {
			t.Errorf("LogLevel = %s, expected default info", config.LogLevel)
		}
		if config.DBDriver != "sqlite" || config.DBPath != "pizza_restaurants.sqlite" {
			t.Errorf("DB = %s %s, expected sqlite pizza_restaurants.sqlite", config.DBDriver, config.DBPath)
		}
		if !config.SeedDB {
			t.Error("SeedDB should default to true")
		}
		if config.RateLimitRPS != 20 || config.RateLimitBurst != 40 {
			t.Errorf("RateLimit = %v/%d, expected 20/40", config.RateLimitRPS, config.RateLimitBurst)
		}
		if len(config.AllowedOrigins) != 1 || config.AllowedOrigins[0] != "*" {
			t.Errorf("AllowedOrigins = %v, expected [*]", config.AllowedOrigins)
		}
		if config.JWTSecret == "" {
			t.Error("JWTSecret should fall back to the development secret")
		}
	})

	t.Run("String masks secrets", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("JWT_SECRET", "very-secret-value")
		t.Setenv("DB_PASSWORD", "hunter2")

		config, err := LoadConfig()
		if err != nil {
			t.Fatalf("LoadConfig() returned error: %v", err)
		}
		s := config.String()
		if strings.Contains(s, "very-secret-value") || strings.Contains(s, "hunter2") {
			t.Errorf("String() leaks a secret: %s", s)
		}
	})
}

func BenchmarkGetEnvWithDefault(b *testing.B) {
	b.Setenv("BENCH_KEY", "test_value")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		GetEnvWithDefault("BENCH_KEY", "default")
	}
}

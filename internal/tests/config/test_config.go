package config

import (
	"testing"
	"time"

	"github.com/you/pomodorosvc/internal/config"
)

// BootstrapAdminEmail is granted the admin role when it registers
const BootstrapAdminEmail = "bootstrap-admin@example.com"

// GetTestJWTSecret returns a deterministic JWT secret for testing
func GetTestJWTSecret() string {
	return "test-jwt-secret-for-e2e-validation-pomodoro"
}

// NewTestConfig returns a configuration for in-process E2E tests.
// Connections are supplied by the caller, so DSN and Redis address are placeholders.
func NewTestConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := &config.Config{
		Port:             "0",
		GinMode:          "test",
		LogLevel:         "disabled",
		DSN:              "sqlite://memory",
		RedisAddr:        "miniredis",
		SettingsCacheTTL: 10 * time.Minute,
		JWTSecret:        GetTestJWTSecret(),
		JWTIssuer:        "pomodorosvc-test",
		AccessTTL:        15 * time.Minute,
		RefreshTTL:       24 * time.Hour,
		AdminEmails:      []string{BootstrapAdminEmail},
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("invalid test configuration: %v", err)
	}
	return cfg
}

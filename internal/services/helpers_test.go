package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/you/pomodorosvc/domain"
	"github.com/you/pomodorosvc/internal/mocks"
)

// authMocks groups the collaborators of an AuthService under test
type authMocks struct {
	userRepo    *mocks.MockUserRepository
	passwordSvc *mocks.MockPasswordService
	tokenSvc    *mocks.MockTokenService
	denylist    *mocks.MockTokenDenylist
	audit       *mocks.MockAuditLogger
}

// settingsMocks groups the collaborators of a SettingsService under test
type settingsMocks struct {
	repo  *mocks.MockSettingsRepository
	cache *mocks.MockSettingsCache
	audit *mocks.MockAuditLogger
}

// createAuthServiceForTest creates an AuthService with fresh mock dependencies
func createAuthServiceForTest(t *testing.T) (domain.AuthService, *authMocks) {
	t.Helper()

	m := &authMocks{
		userRepo:    mocks.NewMockUserRepository(),
		passwordSvc: mocks.NewMockPasswordService(),
		tokenSvc:    mocks.NewMockTokenService(),
		denylist:    mocks.NewMockTokenDenylist(),
		audit:       mocks.NewMockAuditLogger(),
	}
	svc := NewAuthService(m.userRepo, m.passwordSvc, m.tokenSvc, m.denylist, m.audit)
	return svc, m
}

// createSettingsServiceForTest creates a SettingsService with fresh mock dependencies
func createSettingsServiceForTest(t *testing.T) (domain.SettingsService, *settingsMocks) {
	t.Helper()

	m := &settingsMocks{
		repo:  mocks.NewMockSettingsRepository(),
		cache: mocks.NewMockSettingsCache(),
		audit: mocks.NewMockAuditLogger(),
	}
	svc := NewSettingsService(m.repo, m.cache, m.audit, zerolog.Nop())
	return svc, m
}

// createValidUser creates a stored user whose password is "password123"
func createValidUser(t *testing.T) *domain.User {
	t.Helper()

	return &domain.User{
		ID:           "user-123",
		Email:        "test@example.com",
		PasswordHash: "hashed_password123",
		Name:         "Test User",
		Role:         domain.DefaultRole,
		CreatedAt:    time.Now().Add(-24 * time.Hour),
		UpdatedAt:    time.Now().Add(-1 * time.Hour),
	}
}

// createStoredSettings creates a settings record as the datastore would return it
func createStoredSettings(t *testing.T, userID string) *domain.PomodoroSettings {
	t.Helper()

	settings := domain.NewDefaultSettings(userID)
	settings.ID = "settings-456"
	return settings
}

// assertAuthResult validates the structure and content of an AuthResult
func assertAuthResult(t *testing.T, result *domain.AuthResult, expectedUser *domain.User) {
	t.Helper()

	if result == nil {
		t.Fatal("AuthResult is nil")
	}

	if result.User == nil {
		t.Fatal("AuthResult.User is nil")
	}

	if result.User.ID != expectedUser.ID {
		t.Errorf("expected user ID %s, got %s", expectedUser.ID, result.User.ID)
	}

	if result.User.Email != expectedUser.Email {
		t.Errorf("expected user email %s, got %s", expectedUser.Email, result.User.Email)
	}

	if result.AccessToken == "" {
		t.Error("AccessToken is empty")
	}

	if result.RefreshToken == "" {
		t.Error("RefreshToken is empty")
	}
}

// createTestContext creates a context for testing with timeout
func createTestContext(t *testing.T) context.Context {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func intPtr(v int) *int {
	return &v
}

package mocks

import (
	"context"

	"github.com/you/pomodorosvc/domain"
)

// MockAuthService implements domain.AuthService interface for testing
type MockAuthService struct {
	RegisterFunc      func(ctx context.Context, creds domain.AuthCredentials) (*domain.AuthResult, error)
	LoginFunc         func(ctx context.Context, creds domain.AuthCredentials) (*domain.AuthResult, error)
	RefreshTokensFunc func(ctx context.Context, refreshToken string) (*domain.AuthResult, error)
	LogoutFunc        func(ctx context.Context, refreshToken string) error
	GetProfileFunc    func(ctx context.Context, userID string) (*domain.User, error)
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

func mockAuthResult(email string) *domain.AuthResult {
	return &domain.AuthResult{
		User: &domain.User{
			ID:    "user-123",
			Email: email,
			Role:  domain.DefaultRole,
		},
		AccessToken:  "mock-token",
		RefreshToken: "mock-refresh-token",
	}
}

// Register registers a new user
func (m *MockAuthService) Register(ctx context.Context, creds domain.AuthCredentials) (*domain.AuthResult, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, creds)
	}
	return mockAuthResult(creds.Email), nil
}

// Login authenticates a user
func (m *MockAuthService) Login(ctx context.Context, creds domain.AuthCredentials) (*domain.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, creds)
	}
	return mockAuthResult(creds.Email), nil
}

// RefreshTokens issues a new token pair
func (m *MockAuthService) RefreshTokens(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
	if m.RefreshTokensFunc != nil {
		return m.RefreshTokensFunc(ctx, refreshToken)
	}
	return mockAuthResult("test@example.com"), nil
}

// Logout revokes a refresh token
func (m *MockAuthService) Logout(ctx context.Context, refreshToken string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, refreshToken)
	}
	return nil
}

// GetProfile returns the user with the given ID
func (m *MockAuthService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	if m.GetProfileFunc != nil {
		return m.GetProfileFunc(ctx, userID)
	}
	return mockAuthResult("test@example.com").User, nil
}

// Compile-time interface compliance verification
var _ domain.AuthService = (*MockAuthService)(nil)

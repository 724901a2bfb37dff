package mocks

import (
	"strings"
	"time"

	"github.com/you/pomodorosvc/domain"
)

// MockTokenService implements domain.TokenService interface for testing
type MockTokenService struct {
	GenerateAccessTokenFunc  func(user *domain.User) (string, error)
	GenerateRefreshTokenFunc func(user *domain.User) (string, error)
	ValidateTokenFunc        func(token string) (*domain.TokenClaims, error)
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

// GenerateAccessToken generates an access token for the user
func (m *MockTokenService) GenerateAccessToken(user *domain.User) (string, error) {
	if m.GenerateAccessTokenFunc != nil {
		return m.GenerateAccessTokenFunc(user)
	}
	return "access_token_" + user.ID, nil
}

// GenerateRefreshToken generates a refresh token for the user
func (m *MockTokenService) GenerateRefreshToken(user *domain.User) (string, error) {
	if m.GenerateRefreshTokenFunc != nil {
		return m.GenerateRefreshTokenFunc(user)
	}
	return "refresh_token_" + user.ID, nil
}

// ValidateToken parses the default mock token format "<type>_token_<userID>"
func (m *MockTokenService) ValidateToken(token string) (*domain.TokenClaims, error) {
	if m.ValidateTokenFunc != nil {
		return m.ValidateTokenFunc(token)
	}

	var typ domain.TokenType
	var userID string
	switch {
	case strings.HasPrefix(token, "access_token_"):
		typ, userID = domain.AccessToken, strings.TrimPrefix(token, "access_token_")
	case strings.HasPrefix(token, "refresh_token_"):
		typ, userID = domain.RefreshToken, strings.TrimPrefix(token, "refresh_token_")
	default:
		return nil, domain.ErrTokenInvalid
	}

	now := time.Now().Unix()
	return &domain.TokenClaims{
		ID:        "jti_" + token,
		UserID:    userID,
		Role:      domain.DefaultRole,
		Type:      typ,
		IssuedAt:  now,
		ExpiresAt: now + 3600,
	}, nil
}

// Compile-time interface compliance verification
var _ domain.TokenService = (*MockTokenService)(nil)

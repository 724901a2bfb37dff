package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/you/pomodorosvc/domain"
)

// AuthServiceImpl implements domain.AuthService
type AuthServiceImpl struct {
	userRepo    domain.UserRepository
	passwordSvc domain.PasswordService
	tokenSvc    domain.TokenService
	denylist    domain.TokenDenylist
	audit       domain.AuditLogger
	now         func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo domain.UserRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	denylist domain.TokenDenylist,
	audit domain.AuditLogger,
) domain.AuthService {
	return &AuthServiceImpl{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		denylist:    denylist,
		audit:       audit,
		now:         time.Now,
	}
}

// Register implements domain.AuthService
func (s *AuthServiceImpl) Register(ctx context.Context, creds domain.AuthCredentials) (*domain.AuthResult, error) {
	existing, err := s.userRepo.GetByEmail(ctx, creds.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrUserAlreadyExists
	}

	// The repository hashes the password
	user, err := s.userRepo.Create(ctx, creds)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	result, err := s.issueTokens(user)
	if err != nil {
		return nil, err
	}

	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.UserRegistrationEvent, user.ID).WithEmail(user.Email))
	return result, nil
}

// Login implements domain.AuthService
func (s *AuthServiceImpl) Login(ctx context.Context, creds domain.AuthCredentials) (*domain.AuthResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, creds.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.UserLoginFailureEvent, "").
			WithEmail(creds.Email).
			WithError(domain.ErrUserNotFound))
		return nil, domain.ErrUserNotFound
	}

	if !s.passwordSvc.Verify(user.PasswordHash, creds.Password) {
		s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.UserLoginFailureEvent, user.ID).
			WithEmail(creds.Email).
			WithError(domain.ErrInvalidCredentials))
		return nil, domain.ErrInvalidCredentials
	}

	result, err := s.issueTokens(user)
	if err != nil {
		return nil, err
	}

	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.UserLoginEvent, user.ID).WithEmail(user.Email))
	return result, nil
}

// RefreshTokens implements domain.AuthService. The presented refresh token is revoked before new
// tokens are issued, so concurrent refreshes with one token succeed at most once.
func (s *AuthServiceImpl) RefreshTokens(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
	claims, err := s.tokenSvc.ValidateToken(refreshToken)
	if err != nil || claims.Type != domain.RefreshToken {
		return nil, domain.ErrTokenInvalid
	}

	claimed, err := s.denylist.RevokeIfAbsent(ctx, claims.ID, s.remaining(claims))
	if err != nil {
		return nil, fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	if !claimed {
		return nil, domain.ErrTokenInvalid
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	result, err := s.issueTokens(user)
	if err != nil {
		return nil, err
	}

	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.TokensRefreshedEvent, user.ID))
	return result, nil
}

// Logout implements domain.AuthService. Logging out twice with the same token succeeds, and so
// does logging out with an expired one.
func (s *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.tokenSvc.ValidateToken(refreshToken)
	if errors.Is(err, domain.ErrTokenExpired) {
		return nil
	}
	if err != nil || claims.Type != domain.RefreshToken {
		return domain.ErrTokenInvalid
	}

	if err := s.denylist.Revoke(ctx, claims.ID, s.remaining(claims)); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.UserLogoutEvent, claims.UserID))
	return nil
}

// GetProfile implements domain.AuthService
func (s *AuthServiceImpl) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

// remaining is how long the token stays valid
func (s *AuthServiceImpl) remaining(claims *domain.TokenClaims) time.Duration {
	return time.Unix(claims.ExpiresAt, 0).Sub(s.now())
}

func (s *AuthServiceImpl) issueTokens(user *domain.User) (*domain.AuthResult, error) {
	accessToken, err := s.tokenSvc.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.tokenSvc.GenerateRefreshToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &domain.AuthResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

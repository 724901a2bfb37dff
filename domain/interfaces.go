package domain

import (
	"context"
	"time"
)

// UserRepository defines user data access operations.
// Lookups return (nil, nil) when no user matches.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	// Create hashes creds.Password before storing the user
	Create(ctx context.Context, creds AuthCredentials) (*User, error)
}

// SettingsRepository defines Pomodoro settings data access operations
type SettingsRepository interface {
	FindFirstByUserID(ctx context.Context, userID string) (*PomodoroSettings, error)
	Create(ctx context.Context, settings *PomodoroSettings) error
	Update(ctx context.Context, id string, update SettingsUpdate) (*PomodoroSettings, error)
}

// SettingsCache holds recently read settings keyed by user ID.
// Lookup returns a fill ticket that Invalidate voids, so Fill never stores a row read before the last write.
type SettingsCache interface {
	Lookup(ctx context.Context, userID string) (*PomodoroSettings, string, error)
	Fill(ctx context.Context, settings *PomodoroSettings, ticket string) (bool, error)
	Invalidate(ctx context.Context, userID string) error
}

// TokenDenylist records revoked token IDs until they expire
type TokenDenylist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	// RevokeIfAbsent revokes tokenID and reports false if it was already revoked or ttl is not positive
	RevokeIfAbsent(ctx context.Context, tokenID string, ttl time.Duration) (bool, error)
}

// AuthService defines authentication business logic
type AuthService interface {
	Register(ctx context.Context, creds AuthCredentials) (*AuthResult, error)
	Login(ctx context.Context, creds AuthCredentials) (*AuthResult, error)
	RefreshTokens(ctx context.Context, refreshToken string) (*AuthResult, error)
	Logout(ctx context.Context, refreshToken string) error
	GetProfile(ctx context.Context, userID string) (*User, error)
}

// SettingsService defines Pomodoro settings business logic
type SettingsService interface {
	Create(ctx context.Context, userID string) (*PomodoroSettings, error)
	// GetByUserID returns (nil, nil) when the user has no settings
	GetByUserID(ctx context.Context, userID string) (*PomodoroSettings, error)
	GetPomodoroSettingsByUserID(ctx context.Context, userID string) (*PomodoroSettings, error)
	Update(ctx context.Context, userID string, update SettingsUpdate) (*PomodoroSettings, error)
}

// PasswordService defines password operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService defines token operations
type TokenService interface {
	GenerateAccessToken(user *User) (string, error)
	GenerateRefreshToken(user *User) (string, error)
	ValidateToken(token string) (*TokenClaims, error)
}

// PolicyService defines authorization policy operations
type PolicyService interface {
	AddPolicy(role, resource, action string) error
	RemovePolicy(role, resource, action string) error
	CheckPermission(role, resource, action string) (bool, error)
	GetPolicies() ([][]string, error)
	SeedDefaults() error
}

// CasbinEnforcer interface defines the methods we need from Casbin enforcer
type CasbinEnforcer interface {
	AddPolicy(params ...interface{}) (bool, error)
	RemovePolicy(params ...interface{}) (bool, error)
	Enforce(rvals ...interface{}) (bool, error)
	GetPolicy() ([][]string, error)
	SavePolicy() error
}

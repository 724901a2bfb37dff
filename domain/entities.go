package domain

import "time"

// Default Pomodoro settings stored for every new account
const (
	DefaultWorkInterval   = 50
	DefaultBreakInterval  = 10
	DefaultIntervalsCount = 7
)

// DefaultRole is assigned to self-registered users
const DefaultRole = "user"

// AdminRole is assigned at registration to emails listed in the admin_emails setting
const AdminRole = "admin"

// User represents a user in the system
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name,omitempty"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AuthCredentials carries the email and plaintext password of a register or login call
type AuthCredentials struct {
	Email    string
	Password string
	Name     string
}

// AuthResult represents authentication outcome
type AuthResult struct {
	User         *User
	AccessToken  string
	RefreshToken string
}

// PomodoroSettings is the per-user timer configuration. Intervals are minutes.
type PomodoroSettings struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	WorkInterval   int       `json:"work_interval"`
	BreakInterval  int       `json:"break_interval"`
	IntervalsCount int       `json:"intervals_count"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewDefaultSettings returns unsaved settings for userID with the default intervals
func NewDefaultSettings(userID string) *PomodoroSettings {
	return &PomodoroSettings{
		UserID:         userID,
		WorkInterval:   DefaultWorkInterval,
		BreakInterval:  DefaultBreakInterval,
		IntervalsCount: DefaultIntervalsCount,
	}
}

// SettingsUpdate is a partial settings change. Nil fields are left untouched.
type SettingsUpdate struct {
	WorkInterval   *int `json:"work_interval,omitempty" validate:"omitempty,gt=0"`
	BreakInterval  *int `json:"break_interval,omitempty" validate:"omitempty,gt=0"`
	IntervalsCount *int `json:"intervals_count,omitempty" validate:"omitempty,gt=0"`
}

// IsEmpty reports whether the update carries no fields
func (u SettingsUpdate) IsEmpty() bool {
	return u.WorkInterval == nil && u.BreakInterval == nil && u.IntervalsCount == nil
}

// ApplyTo copies the supplied fields onto s
func (u SettingsUpdate) ApplyTo(s *PomodoroSettings) {
	if u.WorkInterval != nil {
		s.WorkInterval = *u.WorkInterval
	}
	if u.BreakInterval != nil {
		s.BreakInterval = *u.BreakInterval
	}
	if u.IntervalsCount != nil {
		s.IntervalsCount = *u.IntervalsCount
	}
}

// TokenType distinguishes access tokens from refresh tokens
type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

// TokenClaims represents JWT token claims
type TokenClaims struct {
	ID        string    `json:"jti"`
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"`
	Type      TokenType `json:"typ"`
	IssuedAt  int64     `json:"iat"`
	ExpiresAt int64     `json:"exp"`
}

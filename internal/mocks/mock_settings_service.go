package mocks

import (
	"context"

	"github.com/you/pomodorosvc/domain"
)

// MockSettingsService implements domain.SettingsService interface for testing
type MockSettingsService struct {
	CreateFunc      func(ctx context.Context, userID string) (*domain.PomodoroSettings, error)
	GetByUserIDFunc func(ctx context.Context, userID string) (*domain.PomodoroSettings, error)
	UpdateFunc      func(ctx context.Context, userID string, update domain.SettingsUpdate) (*domain.PomodoroSettings, error)

	CreateCalls []string
}

// NewMockSettingsService creates a new MockSettingsService with default behaviors
func NewMockSettingsService() *MockSettingsService {
	return &MockSettingsService{}
}

// Create stores default settings for a user
func (m *MockSettingsService) Create(ctx context.Context, userID string) (*domain.PomodoroSettings, error) {
	m.CreateCalls = append(m.CreateCalls, userID)
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, userID)
	}
	s := domain.NewDefaultSettings(userID)
	s.ID = "settings-456"
	return s, nil
}

// GetByUserID returns the settings of a user
func (m *MockSettingsService) GetByUserID(ctx context.Context, userID string) (*domain.PomodoroSettings, error) {
	if m.GetByUserIDFunc != nil {
		return m.GetByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

// GetPomodoroSettingsByUserID is an alias of GetByUserID
func (m *MockSettingsService) GetPomodoroSettingsByUserID(ctx context.Context, userID string) (*domain.PomodoroSettings, error) {
	return m.GetByUserID(ctx, userID)
}

// Update applies a partial update to the settings of a user
func (m *MockSettingsService) Update(ctx context.Context, userID string, update domain.SettingsUpdate) (*domain.PomodoroSettings, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, userID, update)
	}
	return nil, domain.ErrSettingsNotFound
}

// Compile-time interface compliance verification
var _ domain.SettingsService = (*MockSettingsService)(nil)

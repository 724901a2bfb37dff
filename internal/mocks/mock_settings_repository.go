package mocks

import (
	"context"

	"github.com/you/pomodorosvc/domain"
)

// SettingsUpdateCall records the arguments of one Update call
type SettingsUpdateCall struct {
	ID     string
	Update domain.SettingsUpdate
}

// MockSettingsRepository implements domain.SettingsRepository interface for testing
type MockSettingsRepository struct {
	FindFirstByUserIDFunc func(ctx context.Context, userID string) (*domain.PomodoroSettings, error)
	CreateFunc            func(ctx context.Context, settings *domain.PomodoroSettings) error
	UpdateFunc            func(ctx context.Context, id string, update domain.SettingsUpdate) (*domain.PomodoroSettings, error)

	FindFirstByUserIDCalls []string
	CreateCalls            []domain.PomodoroSettings
	UpdateCalls            []SettingsUpdateCall
}

// NewMockSettingsRepository creates a new MockSettingsRepository with default behaviors
func NewMockSettingsRepository() *MockSettingsRepository {
	return &MockSettingsRepository{}
}

// FindFirstByUserID finds the settings of a user
func (m *MockSettingsRepository) FindFirstByUserID(ctx context.Context, userID string) (*domain.PomodoroSettings, error) {
	m.FindFirstByUserIDCalls = append(m.FindFirstByUserIDCalls, userID)
	if m.FindFirstByUserIDFunc != nil {
		return m.FindFirstByUserIDFunc(ctx, userID)
	}
	// Default behavior: absent
	return nil, nil
}

// Create stores new settings
func (m *MockSettingsRepository) Create(ctx context.Context, settings *domain.PomodoroSettings) error {
	m.CreateCalls = append(m.CreateCalls, *settings)
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, settings)
	}
	// Default behavior: assign an ID
	settings.ID = "settings-456"
	return nil
}

// Update applies a partial update to the settings with the given ID
func (m *MockSettingsRepository) Update(ctx context.Context, id string, update domain.SettingsUpdate) (*domain.PomodoroSettings, error) {
	m.UpdateCalls = append(m.UpdateCalls, SettingsUpdateCall{ID: id, Update: update})
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, update)
	}
	// Default behavior: not found
	return nil, domain.ErrSettingsNotFound
}

// Compile-time interface compliance verification
var _ domain.SettingsRepository = (*MockSettingsRepository)(nil)

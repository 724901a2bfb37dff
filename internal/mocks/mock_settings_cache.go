package mocks

import (
	"context"
	"strconv"

	"github.com/you/pomodorosvc/domain"
)

// MockSettingsCache implements domain.SettingsCache with in-memory maps
type MockSettingsCache struct {
	LookupFunc     func(ctx context.Context, userID string) (*domain.PomodoroSettings, string, error)
	FillFunc       func(ctx context.Context, settings *domain.PomodoroSettings, ticket string) (bool, error)
	InvalidateFunc func(ctx context.Context, userID string) error

	Entries     map[string]domain.PomodoroSettings
	Generations map[string]int
}

// NewMockSettingsCache creates an empty MockSettingsCache
func NewMockSettingsCache() *MockSettingsCache {
	return &MockSettingsCache{
		Entries:     map[string]domain.PomodoroSettings{},
		Generations: map[string]int{},
	}
}

// Lookup returns a cached entry, or nil and a fill ticket
func (m *MockSettingsCache) Lookup(ctx context.Context, userID string) (*domain.PomodoroSettings, string, error) {
	if m.LookupFunc != nil {
		return m.LookupFunc(ctx, userID)
	}
	ticket := strconv.Itoa(m.Generations[userID])
	if s, ok := m.Entries[userID]; ok {
		return &s, ticket, nil
	}
	return nil, ticket, nil
}

// Fill stores an entry unless the ticket is stale
func (m *MockSettingsCache) Fill(ctx context.Context, settings *domain.PomodoroSettings, ticket string) (bool, error) {
	if m.FillFunc != nil {
		return m.FillFunc(ctx, settings, ticket)
	}
	if ticket != strconv.Itoa(m.Generations[settings.UserID]) {
		return false, nil
	}
	m.Entries[settings.UserID] = *settings
	return true, nil
}

// Invalidate removes an entry and voids outstanding tickets
func (m *MockSettingsCache) Invalidate(ctx context.Context, userID string) error {
	if m.InvalidateFunc != nil {
		return m.InvalidateFunc(ctx, userID)
	}
	m.Generations[userID]++
	delete(m.Entries, userID)
	return nil
}

// Compile-time interface compliance verification
var _ domain.SettingsCache = (*MockSettingsCache)(nil)

package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/you/pomodorosvc/domain"
	"github.com/you/pomodorosvc/internal/infrastructure/repositories"
	"github.com/you/pomodorosvc/internal/mocks"
)

func TestSettingsServiceImpl_Create(t *testing.T) {
	tests := []struct {
		name          string
		userID        string
		setupMocks    func(*settingsMocks)
		expectedError error
	}{
		{
			name:   "creates default settings",
			userID: "user-123",
		},
		{
			name:   "duplicate rejected by datastore",
			userID: "user-123",
			setupMocks: func(m *settingsMocks) {
				m.repo.CreateFunc = func(ctx context.Context, settings *domain.PomodoroSettings) error {
					return domain.ErrSettingsAlreadyExist
				}
			},
			expectedError: domain.ErrSettingsAlreadyExist,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settingsService, m := createSettingsServiceForTest(t)
			if tt.setupMocks != nil {
				tt.setupMocks(m)
			}

			settings, err := settingsService.Create(createTestContext(t), tt.userID)

			if len(m.repo.FindFirstByUserIDCalls) != 0 {
				t.Errorf("expected no existence check, got %v", m.repo.FindFirstByUserIDCalls)
			}
			if len(m.repo.CreateCalls) != 1 {
				t.Fatalf("expected Create to be called once, got %d", len(m.repo.CreateCalls))
			}
			inserted := m.repo.CreateCalls[0]
			if inserted.UserID != tt.userID ||
				inserted.WorkInterval != domain.DefaultWorkInterval ||
				inserted.BreakInterval != domain.DefaultBreakInterval ||
				inserted.IntervalsCount != domain.DefaultIntervalsCount {
				t.Errorf("expected default settings for %s, got %+v", tt.userID, inserted)
			}

			if len(m.cache.Entries) != 0 || len(m.cache.Generations) != 0 {
				t.Errorf("expected create to leave the cache alone, got %v %v", m.cache.Entries, m.cache.Generations)
			}

			if tt.expectedError != nil {
				assertError(t, err, tt.expectedError)
				return
			}
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if settings.ID != "settings-456" {
				t.Errorf("expected stored ID %q, got %q", "settings-456", settings.ID)
			}
			if settings.WorkInterval != 50 || settings.BreakInterval != 10 || settings.IntervalsCount != 7 {
				t.Errorf("expected 50/10/7, got %d/%d/%d", settings.WorkInterval, settings.BreakInterval, settings.IntervalsCount)
			}
		})
	}
}

func TestSettingsServiceImpl_GetByUserID(t *testing.T) {
	tests := []struct {
		name         string
		userID       string
		setupMocks   func(*settingsMocks)
		expectNil    bool
		expectRepo   bool
		expectCached bool
	}{
		{
			name:      "absent settings are not an error",
			userID:    "non-existent-user",
			expectNil: true, expectRepo: true,
		},
		{
			name:   "loads from repository and fills cache",
			userID: "user-123",
			setupMocks: func(m *settingsMocks) {
				m.repo.FindFirstByUserIDFunc = func(ctx context.Context, userID string) (*domain.PomodoroSettings, error) {
					return createStoredSettings(t, userID), nil
				}
			},
			expectRepo: true, expectCached: true,
		},
		{
			name:   "served from cache",
			userID: "user-123",
			setupMocks: func(m *settingsMocks) {
				m.cache.Entries["user-123"] = *createStoredSettings(t, "user-123")
			},
			expectCached: true,
		},
		{
			name:   "cache read failure falls back to repository",
			userID: "user-123",
			setupMocks: func(m *settingsMocks) {
				m.cache.LookupFunc = func(ctx context.Context, userID string) (*domain.PomodoroSettings, string, error) {
					return nil, "0", errors.New("redis down")
				}
				m.repo.FindFirstByUserIDFunc = func(ctx context.Context, userID string) (*domain.PomodoroSettings, error) {
					return createStoredSettings(t, userID), nil
				}
			},
			expectRepo: true, expectCached: true,
		},
		{
			name:   "cache write failure still returns settings",
			userID: "user-123",
			setupMocks: func(m *settingsMocks) {
				m.cache.FillFunc = func(ctx context.Context, settings *domain.PomodoroSettings, ticket string) (bool, error) {
					return false, errors.New("redis down")
				}
				m.repo.FindFirstByUserIDFunc = func(ctx context.Context, userID string) (*domain.PomodoroSettings, error) {
					return createStoredSettings(t, userID), nil
				}
			},
			expectRepo: true,
		},
		{
			name:   "row read before a concurrent update is not cached",
			userID: "user-123",
			setupMocks: func(m *settingsMocks) {
				m.repo.FindFirstByUserIDFunc = func(ctx context.Context, userID string) (*domain.PomodoroSettings, error) {
					stored := createStoredSettings(t, userID)
					// an update lands between this read and the cache fill
					if err := m.cache.Invalidate(ctx, userID); err != nil {
						t.Fatalf("invalidate failed: %v", err)
					}
					return stored, nil
				}
			},
			expectRepo: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settingsService, m := createSettingsServiceForTest(t)
			if tt.setupMocks != nil {
				tt.setupMocks(m)
			}

			settings, err := settingsService.GetByUserID(createTestContext(t), tt.userID)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if tt.expectNil {
				if settings != nil {
					t.Errorf("expected nil settings, got %+v", settings)
				}
			} else if settings == nil || settings.UserID != tt.userID {
				t.Errorf("expected settings for %s, got %+v", tt.userID, settings)
			}

			if tt.expectRepo != (len(m.repo.FindFirstByUserIDCalls) == 1) {
				t.Errorf("expected repository lookup=%v, got calls %v", tt.expectRepo, m.repo.FindFirstByUserIDCalls)
			}
			if _, ok := m.cache.Entries[tt.userID]; ok != tt.expectCached {
				t.Errorf("expected cached=%v, got %v", tt.expectCached, ok)
			}
		})
	}
}

func TestSettingsServiceImpl_GetByUserID_RepositoryError(t *testing.T) {
	settingsService, m := createSettingsServiceForTest(t)
	m.repo.FindFirstByUserIDFunc = func(ctx context.Context, userID string) (*domain.PomodoroSettings, error) {
		return nil, errors.New("connection reset")
	}

	settings, err := settingsService.GetByUserID(createTestContext(t), "user-123")
	assertError(t, err, errors.New("failed to find settings: connection reset"))
	if settings != nil {
		t.Errorf("expected nil settings, got %+v", settings)
	}
}

func TestSettingsServiceImpl_GetPomodoroSettingsByUserID(t *testing.T) {
	settingsService, m := createSettingsServiceForTest(t)
	m.repo.FindFirstByUserIDFunc = func(ctx context.Context, userID string) (*domain.PomodoroSettings, error) {
		return createStoredSettings(t, userID), nil
	}
	ctx := createTestContext(t)

	viaAlias, err := settingsService.GetPomodoroSettingsByUserID(ctx, "user-123")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	direct, err := settingsService.GetByUserID(ctx, "user-123")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if *viaAlias != *direct {
		t.Errorf("expected alias to return %+v, got %+v", direct, viaAlias)
	}
	if len(m.repo.FindFirstByUserIDCalls) != 1 {
		t.Errorf("expected the second read to be served from cache, got %v", m.repo.FindFirstByUserIDCalls)
	}
}

func TestSettingsServiceImpl_Update(t *testing.T) {
	tests := []struct {
		name          string
		userID        string
		update        domain.SettingsUpdate
		setupMocks    func(*settingsMocks)
		expectedError error
		validate      func(t *testing.T, m *settingsMocks, settings *domain.PomodoroSettings)
	}{
		{
			name:   "merges supplied fields and writes by record ID",
			userID: "user-123",
			update: domain.SettingsUpdate{WorkInterval: intPtr(25)},
			setupMocks: func(m *settingsMocks) {
				m.cache.Entries["user-123"] = *createStoredSettings(t, "user-123")
				m.repo.FindFirstByUserIDFunc = func(ctx context.Context, userID string) (*domain.PomodoroSettings, error) {
					return createStoredSettings(t, userID), nil
				}
				m.repo.UpdateFunc = func(ctx context.Context, id string, update domain.SettingsUpdate) (*domain.PomodoroSettings, error) {
					stored := createStoredSettings(t, "user-123")
					update.ApplyTo(stored)
					return stored, nil
				}
			},
			validate: func(t *testing.T, m *settingsMocks, settings *domain.PomodoroSettings) {
				if len(m.repo.UpdateCalls) != 1 {
					t.Fatalf("expected Update to be called once, got %d", len(m.repo.UpdateCalls))
				}
				call := m.repo.UpdateCalls[0]
				if call.ID != "settings-456" {
					t.Errorf("expected update keyed by %q, got %q", "settings-456", call.ID)
				}
				if call.Update.BreakInterval != nil || call.Update.IntervalsCount != nil {
					t.Errorf("expected only work interval to be written, got %+v", call.Update)
				}
				if settings.WorkInterval != 25 || settings.BreakInterval != 10 || settings.IntervalsCount != 7 {
					t.Errorf("expected 25/10/7, got %d/%d/%d", settings.WorkInterval, settings.BreakInterval, settings.IntervalsCount)
				}
				if _, ok := m.cache.Entries["user-123"]; ok {
					t.Error("expected update to drop the cached entry")
				}
				if m.cache.Generations["user-123"] != 1 {
					t.Errorf("expected one invalidation, got %d", m.cache.Generations["user-123"])
				}
				if got := m.audit.EventTypes(); len(got) != 1 || got[0] != domain.SettingsUpdatedEvent {
					t.Errorf("expected a single %s audit event, got %v", domain.SettingsUpdatedEvent, got)
				}
			},
		},
		{
			name:   "cache invalidation failure does not fail update",
			userID: "user-123",
			update: domain.SettingsUpdate{BreakInterval: intPtr(5)},
			setupMocks: func(m *settingsMocks) {
				m.repo.FindFirstByUserIDFunc = func(ctx context.Context, userID string) (*domain.PomodoroSettings, error) {
					return createStoredSettings(t, userID), nil
				}
				m.repo.UpdateFunc = func(ctx context.Context, id string, update domain.SettingsUpdate) (*domain.PomodoroSettings, error) {
					stored := createStoredSettings(t, "user-123")
					update.ApplyTo(stored)
					return stored, nil
				}
				m.cache.InvalidateFunc = func(ctx context.Context, userID string) error {
					return errors.New("redis down")
				}
			},
			validate: func(t *testing.T, m *settingsMocks, settings *domain.PomodoroSettings) {
				if settings == nil || settings.BreakInterval != 5 {
					t.Errorf("expected updated settings, got %+v", settings)
				}
			},
		},
		{
			name:          "missing settings",
			userID:        "non-existent-user",
			update:        domain.SettingsUpdate{WorkInterval: intPtr(25)},
			expectedError: domain.ErrSettingsNotFound,
			validate: func(t *testing.T, m *settingsMocks, settings *domain.PomodoroSettings) {
				if len(m.repo.UpdateCalls) != 0 {
					t.Errorf("expected Update not to be called, got %d calls", len(m.repo.UpdateCalls))
				}
			},
		},
		{
			name:          "non-positive interval rejected",
			userID:        "user-123",
			update:        domain.SettingsUpdate{BreakInterval: intPtr(0)},
			expectedError: domain.ErrInvalidSettings,
			validate: func(t *testing.T, m *settingsMocks, settings *domain.PomodoroSettings) {
				if len(m.repo.FindFirstByUserIDCalls) != 0 {
					t.Errorf("expected no lookup for invalid input, got %v", m.repo.FindFirstByUserIDCalls)
				}
			},
		},
		{
			name:   "record vanished between read and write",
			userID: "user-123",
			update: domain.SettingsUpdate{IntervalsCount: intPtr(4)},
			setupMocks: func(m *settingsMocks) {
				m.repo.FindFirstByUserIDFunc = func(ctx context.Context, userID string) (*domain.PomodoroSettings, error) {
					return createStoredSettings(t, userID), nil
				}
			},
			expectedError: domain.ErrSettingsNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settingsService, m := createSettingsServiceForTest(t)
			if tt.setupMocks != nil {
				tt.setupMocks(m)
			}

			settings, err := settingsService.Update(createTestContext(t), tt.userID, tt.update)

			if tt.expectedError != nil {
				assertError(t, err, tt.expectedError)
				if settings != nil {
					t.Errorf("expected nil settings on error, got %+v", settings)
				}
			} else if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if tt.validate != nil {
				tt.validate(t, m, settings)
			}
		})
	}
}

func TestSettingsServiceImpl_ReadInterleavedWithUpdate(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	repo := mocks.NewMockSettingsRepository()
	settingsService := NewSettingsService(repo, repositories.NewSettingsCache(client, 10*time.Minute), mocks.NewMockAuditLogger(), zerolog.Nop())
	ctx := createTestContext(t)

	current := createStoredSettings(t, "user-123")
	interleaved := false
	repo.FindFirstByUserIDFunc = func(ctx context.Context, userID string) (*domain.PomodoroSettings, error) {
		snapshot := *current
		if !interleaved {
			interleaved = true
			if _, err := settingsService.Update(ctx, userID, domain.SettingsUpdate{WorkInterval: intPtr(25)}); err != nil {
				t.Fatalf("update failed: %v", err)
			}
		}
		return &snapshot, nil
	}
	repo.UpdateFunc = func(ctx context.Context, id string, update domain.SettingsUpdate) (*domain.PomodoroSettings, error) {
		update.ApplyTo(current)
		updated := *current
		return &updated, nil
	}

	// the first read returns the row it loaded before the update
	first, err := settingsService.GetByUserID(ctx, "user-123")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if first.WorkInterval != 50 {
		t.Errorf("expected the pre-update row, got %d", first.WorkInterval)
	}

	for i := 0; i < 2; i++ {
		got, err := settingsService.GetByUserID(ctx, "user-123")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got.WorkInterval != 25 {
			t.Errorf("read %d: expected updated work interval 25, got %d", i+2, got.WorkInterval)
		}
	}
	if len(repo.FindFirstByUserIDCalls) != 3 {
		t.Errorf("expected the last read to be served from cache, got repository calls %v", repo.FindFirstByUserIDCalls)
	}
}

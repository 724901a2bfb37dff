package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you/pomodorosvc/domain"
)

func TestSettingsRepositoryImpl_Create(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSettingsRepository(db)
	ctx := context.Background()

	settings := domain.NewDefaultSettings("user-123")
	require.NoError(t, repo.Create(ctx, settings))

	assert.NotEmpty(t, settings.ID)
	assert.Equal(t, "user-123", settings.UserID)
	assert.Equal(t, 50, settings.WorkInterval)
	assert.Equal(t, 10, settings.BreakInterval)
	assert.Equal(t, 7, settings.IntervalsCount)
	assert.False(t, settings.CreatedAt.IsZero())

	// user_id is unique
	err := repo.Create(ctx, domain.NewDefaultSettings("user-123"))
	assert.ErrorIs(t, err, domain.ErrSettingsAlreadyExist)

	var count int64
	require.NoError(t, db.Model(&DBPomodoroSettings{}).Where("user_id = ?", "user-123").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSettingsRepositoryImpl_FindFirstByUserID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSettingsRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, domain.NewDefaultSettings("user-123")))

	found, err := repo.FindFirstByUserID(ctx, "user-123")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "user-123", found.UserID)

	missing, err := repo.FindFirstByUserID(ctx, "non-existent-user")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSettingsRepositoryImpl_Update(t *testing.T) {
	tests := []struct {
		name          string
		update        domain.SettingsUpdate
		useUnknownID  bool
		expected      [3]int
		expectedError error
	}{
		{
			name:     "all fields",
			update:   domain.SettingsUpdate{WorkInterval: intPtr(45), BreakInterval: intPtr(15), IntervalsCount: intPtr(8)},
			expected: [3]int{45, 15, 8},
		},
		{
			name:     "partial update keeps other fields",
			update:   domain.SettingsUpdate{BreakInterval: intPtr(5)},
			expected: [3]int{50, 5, 7},
		},
		{
			name:     "empty update returns current record",
			update:   domain.SettingsUpdate{},
			expected: [3]int{50, 10, 7},
		},
		{
			name:          "unknown id",
			update:        domain.SettingsUpdate{WorkInterval: intPtr(45)},
			useUnknownID:  true,
			expectedError: domain.ErrSettingsNotFound,
		},
		{
			name:          "unknown id with empty update",
			update:        domain.SettingsUpdate{},
			useUnknownID:  true,
			expectedError: domain.ErrSettingsNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := setupTestDB(t)
			repo := NewSettingsRepository(db)
			ctx := context.Background()

			existing := domain.NewDefaultSettings("user-123")
			require.NoError(t, repo.Create(ctx, existing))
			other := domain.NewDefaultSettings("user-456")
			require.NoError(t, repo.Create(ctx, other))

			id := existing.ID
			if tt.useUnknownID {
				id = "settings-missing"
			}

			updated, err := repo.Update(ctx, id, tt.update)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, updated)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, existing.ID, updated.ID)
			assert.Equal(t, "user-123", updated.UserID)
			assert.Equal(t, tt.expected, [3]int{updated.WorkInterval, updated.BreakInterval, updated.IntervalsCount})

			stored, err := repo.FindFirstByUserID(ctx, "user-123")
			require.NoError(t, err)
			assert.Equal(t, tt.expected, [3]int{stored.WorkInterval, stored.BreakInterval, stored.IntervalsCount})

			untouched, err := repo.FindFirstByUserID(ctx, "user-456")
			require.NoError(t, err)
			assert.Equal(t, [3]int{50, 10, 7}, [3]int{untouched.WorkInterval, untouched.BreakInterval, untouched.IntervalsCount})
		})
	}
}

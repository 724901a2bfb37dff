package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/you/pomodorosvc/domain"
)

// SettingsRepositoryImpl implements domain.SettingsRepository using GORM
type SettingsRepositoryImpl struct {
	db *gorm.DB
}

// DBPomodoroSettings is the database model for domain.PomodoroSettings
type DBPomodoroSettings struct {
	ID             string `gorm:"primaryKey;size:36"`
	UserID         string `gorm:"uniqueIndex;size:36;not null"`
	WorkInterval   int    `gorm:"not null"`
	BreakInterval  int    `gorm:"not null"`
	IntervalsCount int    `gorm:"not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (DBPomodoroSettings) TableName() string {
	return "user_pomodoro_settings"
}

// BeforeCreate assigns a UUID primary key
func (s *DBPomodoroSettings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *gorm.DB) domain.SettingsRepository {
	return &SettingsRepositoryImpl{db: db}
}

// FindFirstByUserID implements domain.SettingsRepository.
// It returns (nil, nil) when the user has no settings row.
func (r *SettingsRepositoryImpl) FindFirstByUserID(ctx context.Context, userID string) (*domain.PomodoroSettings, error) {
	return r.first(ctx, "user_id = ?", userID)
}

// Create implements domain.SettingsRepository. ID and timestamps are written back to settings.
func (r *SettingsRepositoryImpl) Create(ctx context.Context, settings *domain.PomodoroSettings) error {
	row := &DBPomodoroSettings{
		ID:             settings.ID,
		UserID:         settings.UserID,
		WorkInterval:   settings.WorkInterval,
		BreakInterval:  settings.BreakInterval,
		IntervalsCount: settings.IntervalsCount,
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrSettingsAlreadyExist
		}
		return err
	}
	*settings = *toDomainSettings(row)
	return nil
}

// Update implements domain.SettingsRepository. Only the fields present in update are written.
func (r *SettingsRepositoryImpl) Update(ctx context.Context, id string, update domain.SettingsUpdate) (*domain.PomodoroSettings, error) {
	var settings *domain.PomodoroSettings
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row DBPomodoroSettings
		if err := tx.Where("id = ?", id).First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrSettingsNotFound
			}
			return err
		}

		if !update.IsEmpty() {
			if err := tx.Model(&row).Updates(updateColumns(update)).Error; err != nil {
				return err
			}
		}

		settings = toDomainSettings(&row)
		update.ApplyTo(settings)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return settings, nil
}

func updateColumns(update domain.SettingsUpdate) map[string]interface{} {
	columns := map[string]interface{}{}
	if update.WorkInterval != nil {
		columns["work_interval"] = *update.WorkInterval
	}
	if update.BreakInterval != nil {
		columns["break_interval"] = *update.BreakInterval
	}
	if update.IntervalsCount != nil {
		columns["intervals_count"] = *update.IntervalsCount
	}
	return columns
}

func (r *SettingsRepositoryImpl) first(ctx context.Context, query string, arg string) (*domain.PomodoroSettings, error) {
	var row DBPomodoroSettings
	err := r.db.WithContext(ctx).Where(query, arg).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return toDomainSettings(&row), nil
}

func toDomainSettings(row *DBPomodoroSettings) *domain.PomodoroSettings {
	return &domain.PomodoroSettings{
		ID:             row.ID,
		UserID:         row.UserID,
		WorkInterval:   row.WorkInterval,
		BreakInterval:  row.BreakInterval,
		IntervalsCount: row.IntervalsCount,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
}

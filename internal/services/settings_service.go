package services

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/you/pomodorosvc/domain"
)

// SettingsServiceImpl implements domain.SettingsService.
// Reads go through the cache and writes invalidate it; cache failures are logged and otherwise ignored.
type SettingsServiceImpl struct {
	repo     domain.SettingsRepository
	cache    domain.SettingsCache
	audit    domain.AuditLogger
	validate *validator.Validate
	log      zerolog.Logger
}

// NewSettingsService creates a new settings service
func NewSettingsService(repo domain.SettingsRepository, cache domain.SettingsCache, audit domain.AuditLogger, log zerolog.Logger) domain.SettingsService {
	return &SettingsServiceImpl{
		repo:     repo,
		cache:    cache,
		audit:    audit,
		validate: validator.New(),
		log:      log.With().Str("component", "settings").Logger(),
	}
}

// Create implements domain.SettingsService. It always stores the default intervals.
func (s *SettingsServiceImpl) Create(ctx context.Context, userID string) (*domain.PomodoroSettings, error) {
	settings := domain.NewDefaultSettings(userID)
	if err := s.repo.Create(ctx, settings); err != nil {
		return nil, fmt.Errorf("failed to create settings: %w", err)
	}

	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.SettingsCreatedEvent, userID).
		WithMetadata("settings_id", settings.ID))
	return settings, nil
}

// GetByUserID implements domain.SettingsService
func (s *SettingsServiceImpl) GetByUserID(ctx context.Context, userID string) (*domain.PomodoroSettings, error) {
	cached, ticket, err := s.cache.Lookup(ctx, userID)
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("settings cache read failed")
	}
	if cached != nil {
		return cached, nil
	}

	settings, err := s.repo.FindFirstByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find settings: %w", err)
	}
	if settings == nil {
		return nil, nil
	}

	if _, err := s.cache.Fill(ctx, settings, ticket); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("settings cache write failed")
	}
	return settings, nil
}

// GetPomodoroSettingsByUserID implements domain.SettingsService
func (s *SettingsServiceImpl) GetPomodoroSettingsByUserID(ctx context.Context, userID string) (*domain.PomodoroSettings, error) {
	return s.GetByUserID(ctx, userID)
}

// Update implements domain.SettingsService. The record is written by its ID, not by userID.
func (s *SettingsServiceImpl) Update(ctx context.Context, userID string, update domain.SettingsUpdate) (*domain.PomodoroSettings, error) {
	if err := s.validate.Struct(update); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidSettings, err)
	}

	existing, err := s.repo.FindFirstByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find settings: %w", err)
	}
	if existing == nil {
		return nil, domain.ErrSettingsNotFound
	}

	updated, err := s.repo.Update(ctx, existing.ID, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}

	if err := s.cache.Invalidate(ctx, userID); err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("settings cache invalidation failed")
	}
	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.SettingsUpdatedEvent, userID).
		WithMetadata("settings_id", updated.ID))
	return updated, nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SAP-F-2025/philosophy-quiz/internal/cache"
	"github.com/SAP-F-2025/philosophy-quiz/internal/models"
	"github.com/SAP-F-2025/philosophy-quiz/internal/validator"
)

const (
	themeCachePrefix = "theme:"
	themeTTL         = 365 * 24 * time.Hour
)

// ThemeService loads and saves a client's display preferences. Clients that
// never saved anything get the default theme.
type ThemeService interface {
	Load(ctx context.Context, clientID string) (models.ThemeSettings, error)
	Save(ctx context.Context, clientID string, settings models.ThemeSettings) (models.ThemeSettings, error)
}

type themeService struct {
	store     cache.CacheService
	validator *validator.Validator
	logger    *ServiceLogger
}

func NewThemeService(store cache.CacheService, v *validator.Validator, logger *ServiceLogger) ThemeService {
	return &themeService{
		store:     store,
		validator: v,
		logger:    logger,
	}
}

func (s *themeService) Load(ctx context.Context, clientID string) (models.ThemeSettings, error) {
	var settings models.ThemeSettings
	err := s.store.Get(ctx, themeCachePrefix+clientID, &settings)
	if errors.Is(err, cache.ErrCacheMiss) {
		return models.DefaultThemeSettings(), nil
	}
	if err != nil {
		return models.DefaultThemeSettings(), fmt.Errorf("failed to load theme: %w", err)
	}
	return settings, nil
}

func (s *themeService) Save(ctx context.Context, clientID string, settings models.ThemeSettings) (saved models.ThemeSettings, err error) {
	start := time.Now()
	defer func() {
		s.logger.LogOperation(ctx, "save_theme", clientID, "theme", time.Since(start), err)
	}()

	if err := s.validator.Validate(&settings); err != nil {
		return models.ThemeSettings{}, err
	}
	if err := s.store.Set(ctx, themeCachePrefix+clientID, settings, themeTTL); err != nil {
		return models.ThemeSettings{}, fmt.Errorf("failed to save theme: %w", err)
	}
	return settings, nil
}

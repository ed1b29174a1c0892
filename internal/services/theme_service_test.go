package services

import (
	"context"
	"testing"

	"github.com/SAP-F-2025/philosophy-quiz/internal/cache"
	"github.com/SAP-F-2025/philosophy-quiz/internal/models"
	"github.com/SAP-F-2025/philosophy-quiz/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThemeService_LoadDefault(t *testing.T) {
	service := NewThemeService(cache.NewMemoryCache(), validator.New(), testServiceLogger())

	settings, err := service.Load(context.Background(), "client-1")
	require.NoError(t, err)
	assert.Equal(t, models.DefaultThemeSettings(), settings)
}

func TestThemeService_SaveAndLoad(t *testing.T) {
	service := NewThemeService(cache.NewMemoryCache(), validator.New(), testServiceLogger())
	ctx := context.Background()

	want := models.ThemeSettings{Dark: true, AccentColor: models.AccentEmerald}
	saved, err := service.Save(ctx, "client-1", want)
	require.NoError(t, err)
	assert.Equal(t, want, saved)

	got, err := service.Load(ctx, "client-1")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	other, err := service.Load(ctx, "client-2")
	require.NoError(t, err)
	assert.Equal(t, models.DefaultThemeSettings(), other)
}

func TestThemeService_RejectsUnknownAccent(t *testing.T) {
	service := NewThemeService(cache.NewMemoryCache(), validator.New(), testServiceLogger())

	_, err := service.Save(context.Background(), "client-1", models.ThemeSettings{AccentColor: "1 2 3"})
	require.Error(t, err)
	assert.True(t, IsValidation(err))

	var ve ValidationErrors
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "accent_color", ve[0].Rule)
}

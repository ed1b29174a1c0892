package config

import (
	"io"
	"log/slog"
	"testing"

	"github.com/SAP-F-2025/philosophy-quiz/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("CONTENT_SOURCE", "")
	t.Setenv("EVENTS_ENABLED", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "file", cfg.ContentSource)
	assert.True(t, cfg.Events.Enabled)
	assert.Equal(t, "gochannel", cfg.Events.Publisher)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("CONTENT_SOURCE", "postgres")
	t.Setenv("EVENTS_ENABLED", "false")
	t.Setenv("ENVIRONMENT", "production")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.ContentSource)
	assert.False(t, cfg.Events.Enabled)
	assert.True(t, cfg.IsProduction())
}

func TestCreateEventPublisher(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name string
		cfg  EventConfig
		want interface{}
	}{
		{"disabled", EventConfig{Enabled: false, Publisher: "kafka"}, &events.MockEventPublisher{}},
		{"gochannel", EventConfig{Enabled: true, Publisher: "gochannel", Topic: "t"}, &events.WatermillEventPublisher{}},
		{"unknown falls back to mock", EventConfig{Enabled: true, Publisher: "nats"}, &events.MockEventPublisher{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			publisher, err := tc.cfg.CreateEventPublisher(logger)
			require.NoError(t, err)
			defer publisher.Close()
			assert.IsType(t, tc.want, publisher)
		})
	}

	brokers := EventConfig{KafkaBrokers: "a:9092,b:9092"}
	assert.Equal(t, []string{"a:9092", "b:9092"}, brokers.GetKafkaBrokers())
}

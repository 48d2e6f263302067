package common

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("loads defaults when no env vars set", func(t *testing.T) {
		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, 15.0, cfg.Extract.DescriptionWindow)
		assert.Equal(t, 1.5, cfg.Extract.WordGap)
		assert.Equal(t, 1.0, cfg.Extract.LineJitter)
		assert.Equal(t, "Cod Sap", cfg.Catalog.KeyColumn)
		assert.Equal(t, "Price", cfg.Catalog.PriceColumn)
		assert.Equal(t, "Conferencia", cfg.Conference.Sheet)
		assert.Equal(t, 2, cfg.Conference.HeaderOffset)
		assert.True(t, cfg.Conference.RecomputeTotal)
		assert.Equal(t, ":8080", cfg.Server.Addr)
		assert.Equal(t, "Analise", cfg.Export.Sheet)
	})

	t.Run("applies environment overrides", func(t *testing.T) {
		t.Setenv("APS_LOG_LEVEL", "debug")
		t.Setenv("APS_EXTRACT_DESCRIPTION_WINDOW", "20")
		t.Setenv("APS_CONFERENCE_HEADER_OFFSET", "4")
		t.Setenv("APS_CONFERENCE_RECOMPUTE_TOTAL", "false")
		t.Setenv("APS_SERVER_ADDR", ":9090")
		t.Setenv("APS_EXTRACT_LINE_JITTER", "0.5")

		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, slog.LevelDebug, cfg.Log.SlogLevel())
		assert.Equal(t, 20.0, cfg.Extract.DescriptionWindow)
		assert.Equal(t, 4, cfg.Conference.HeaderOffset)
		assert.False(t, cfg.Conference.RecomputeTotal)
		assert.Equal(t, ":9090", cfg.Server.Addr)
		assert.Equal(t, 0.5, cfg.Extract.LineJitter)
	})

	t.Run("rejects invalid values", func(t *testing.T) {
		t.Setenv("APS_EXTRACT_DESCRIPTION_WINDOW", "0")
		t.Setenv("APS_SERVER_ENVIRONMENT", "staging")

		_, err := LoadConfig()
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidInput))
		assert.Contains(t, err.Error(), "extract.description_window")
		assert.Contains(t, err.Error(), "server.environment")
	})
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, "Valor Unit", cfg.Conference.UnitColumn)
}

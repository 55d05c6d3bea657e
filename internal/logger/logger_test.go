package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupJSON(t *testing.T) {
	var buf bytes.Buffer
	Logger{Level: "debug", Format: "json"}.setup(&buf)
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	log.Debug().Str("projection", "mercator").Msg("Grid ready")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "mercator", entry["projection"])
	assert.Equal(t, "Grid ready", entry["message"])
}

func TestSetupLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	Logger{Level: "warn", Format: "json"}.setup(&buf)
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	log.Info().Msg("hidden")
	assert.Zero(t, buf.Len())

	log.Warn().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestSetupConsole(t *testing.T) {
	var buf bytes.Buffer
	Logger{Level: "info", Format: "console", NoColor: true}.setup(&buf)

	log.Info().Int("cells", 7).Msg("Converted")
	assert.Contains(t, buf.String(), "Converted")
	assert.Contains(t, buf.String(), "cells=7")
}

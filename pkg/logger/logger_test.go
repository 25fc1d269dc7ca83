package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/taller-api/pkg/logger"
)

func TestLogger_JSONConComponente(t *testing.T) {
	var buf bytes.Buffer
	l := logger.NewWithWriter(logger.Config{Env: "production", Level: "info"}, &buf)

	wl := l.Component("webhooks")
	wl.Info().Str("event", "order.created").Msg("entrega")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "webhooks", line["component"])
	assert.Equal(t, "order.created", line["event"])
	assert.Equal(t, "info", line["level"])
	assert.Contains(t, line, "time")
}

func TestLogger_FiltraPorNivel(t *testing.T) {
	var buf bytes.Buffer
	l := logger.NewWithWriter(logger.Config{Env: "production", Level: "WARN"}, &buf)

	l.Info().Msg("no sale")
	assert.Zero(t, buf.Len())

	l.Warn().Msg("sí sale")
	assert.NotZero(t, buf.Len())
}

func TestLogger_NivelDesconocidoUsaInfo(t *testing.T) {
	var buf bytes.Buffer
	l := logger.NewWithWriter(logger.Config{Env: "production", Level: "verbose"}, &buf)

	l.Debug().Msg("no sale")
	assert.Zero(t, buf.Len())
	l.Info().Msg("sale")
	assert.NotZero(t, buf.Len())
}

package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/AgriConnect-api/pkg/logger"
)

func TestNew_ProduccionEscribeJSONConComponente(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Level: "info", Out: &buf})

	sub := l.Component("register")
	sub.Info().Str("account_id", "a1").Msg("cuenta registrada")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "register", entry["component"])
	assert.Equal(t, "a1", entry["account_id"])
	assert.Equal(t, "info", entry["level"])
	assert.Contains(t, entry, "time")
}

func TestNew_NivelFiltra(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Level: "warn", Out: &buf})

	l.Info().Msg("oculto")
	assert.Zero(t, buf.Len())

	l.Warn().Msg("visible")
	assert.NotZero(t, buf.Len())
}

// Un nivel inválido cae a info.
func TestNew_NivelInvalido(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Level: "verboso", Out: &buf})

	l.Debug().Msg("oculto")
	assert.Zero(t, buf.Len())
	l.Info().Msg("visible")
	assert.NotZero(t, buf.Len())
}

func TestNop_NoEscribe(t *testing.T) {
	l := logger.Nop()
	l.Error().Msg("nada")
	zl := l.Zerolog()
	assert.Equal(t, "disabled", zl.GetLevel().String())
}

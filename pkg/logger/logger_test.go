package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/hisaab-kitaab/pkg/logger"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, logger.ParseLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, logger.ParseLevel(" warn "))
	assert.Equal(t, zerolog.InfoLevel, logger.ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, logger.ParseLevel("verbose"))
}

func TestNew_ProduccionEscribeJSON(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "info", Output: &buf})

	log.Debug().Msg("descartado")
	log.Info().Str("invoice_id", "inv-1").Msg("factura guardada")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "factura guardada", entry["message"])
	assert.Equal(t, "inv-1", entry["invoice_id"])
	assert.Equal(t, "info", entry["level"])
}

package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/jhoicas/Facturas-api/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "info", Output: &buf})

	log.WithComponent("stock").Info().Str("item_id", "i-1").Msg("descontado")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "stock", line["component"])
	assert.Equal(t, "i-1", line["item_id"])
	assert.Equal(t, "info", line["level"])
}

func TestNivel(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "warn", Output: &buf})

	log.Info().Msg("oculto")
	assert.Zero(t, buf.Len())

	log.Warn().Msg("visible")
	assert.Contains(t, buf.String(), "visible")
}

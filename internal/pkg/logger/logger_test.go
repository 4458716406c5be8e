package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_WritesOneJSONLinePerEntry(t *testing.T) {
	var buf bytes.Buffer
	log := NewLoggerWithWriter("debug", &buf)

	log.Info("consulta concluída", map[string]interface{}{"query": "chair", "total": 5})
	log.Error("falha no upstream", errors.New("PrestaShop 503: down"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var info LogEntry
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &info))
	assert.Equal(t, "INFO", info.Level)
	assert.Equal(t, "consulta concluída", info.Message)
	assert.Equal(t, "chair", info.Fields["query"])

	var failure LogEntry
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &failure))
	assert.Equal(t, "ERROR", failure.Level)
	assert.Equal(t, "PrestaShop 503: down", failure.Error)
}

func TestLogger_FiltersBelowConfiguredLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewLoggerWithWriter("warn", &buf)

	log.Debug("debug", nil)
	log.Info("info", nil)
	assert.Empty(t, buf.String())

	log.Warn("warn", nil)
	assert.Contains(t, buf.String(), `"level":"WARN"`)
}

func TestLogger_UnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := NewLoggerWithWriter("verbose", &buf)

	log.Debug("escondido", nil)
	log.Info("visível", nil)

	assert.NotContains(t, buf.String(), "escondido")
	assert.Contains(t, buf.String(), "visível")
}

func TestLogger_FatalExits(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWithWriter("info", &buf).(*SimpleLogger)
	code := -1
	l.exit = func(c int) { code = c }

	l.Fatal("não foi possível iniciar", errors.New("bind: address already in use"))

	assert.Equal(t, 1, code)
	assert.Contains(t, buf.String(), `"level":"FATAL"`)
}

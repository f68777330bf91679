package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solo-ai/solo/internal/model"
)

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	log, flush, err := New(model.LogConfig{Level: "info"}, false, &buf)
	require.NoError(t, err)

	log.Debugw("hidden")
	log.Infow("dispatched", "action", "summarise")
	flush()

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "dispatched")
	assert.Contains(t, buf.String(), "summarise")
}

func TestNew_VerboseEnablesDebug(t *testing.T) {
	var buf bytes.Buffer
	log, flush, err := New(model.LogConfig{Level: "warn"}, true, &buf)
	require.NoError(t, err)

	log.Debugw("visible")
	flush()
	assert.Contains(t, buf.String(), "visible")
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "solo.log")
	log, flush, err := New(model.LogConfig{File: path}, false, nil)
	require.NoError(t, err)

	log.Infow("to file", "invocation", "abc")
	flush()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"invocation":"abc"`)
}

func TestNew_Nop(t *testing.T) {
	log, flush, err := New(model.LogConfig{}, false, nil)
	require.NoError(t, err)
	log.Infow("dropped")
	flush()
}

func TestNew_BadLevel(t *testing.T) {
	_, _, err := New(model.LogConfig{Level: "loud"}, false, nil)
	assert.Error(t, err)
}

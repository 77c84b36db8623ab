package control_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/momentics/hioload-nio/control"
	"github.com/momentics/hioload-nio/payload"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := control.DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "127.0.0.1:9999", cfg.Server.Addr)
	assert.Equal(t, "127.0.0.1:9999", cfg.Client.Addr)
	assert.Equal(t, payload.ClientVocabulary, cfg.Client.Vocabulary)
	assert.Equal(t, payload.ServerVocabulary, cfg.Server.Vocabulary)
	assert.Equal(t, 1024, cfg.Reactor.ReadBufferSize)
	assert.True(t, cfg.Client.ExitOnClose)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoadConfigOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nio.yaml")
	data := []byte(`
server:
  addr: 127.0.0.1:10001
client:
  vocabulary: [ping, bye]
log:
  level: debug
  format: json
`)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := control.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:10001", cfg.Server.Addr)
	assert.Equal(t, []string{"ping", "bye"}, cfg.Client.Vocabulary)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Untouched sections keep their defaults.
	assert.Equal(t, control.DefaultAddr, cfg.Client.Addr)
	assert.Equal(t, payload.ServerVocabulary, cfg.Server.Vocabulary)
	assert.Equal(t, 128, cfg.Reactor.MaxEvents)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := control.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("reactor:\n  read_buffer_size: 0\n"), 0o600))
	_, err = control.LoadConfig(path)
	assert.ErrorContains(t, err, "read_buffer_size")

	require.NoError(t, os.WriteFile(path, []byte("server: [oops"), 0o600))
	_, err = control.LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigEmptyPath(t *testing.T) {
	cfg, err := control.LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, control.DefaultConfig(), cfg)
}

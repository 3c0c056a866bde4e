package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mrhapile/hvac-diagnoser/pkg/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hvacdiag.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 0.75, cfg.Engine.IsentropicEfficiency)
	assert.Equal(t, 4, cfg.Engine.BatchConcurrency)
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	t.Setenv(EnvConfigPath, "")
	t.Setenv(EnvAddr, "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	t.Setenv(EnvAddr, "")
	path := writeConfig(t, `
server:
  addr: 127.0.0.1:9090
  read_timeout: 30s
engine:
  isentropic_efficiency: 0.7
logging:
  level: debug
  json: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Addr)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 0.7, cfg.CycleOptions().IsentropicEfficiency)
	assert.Equal(t, 4, cfg.Engine.BatchConcurrency)

	lc, err := cfg.Logger()
	require.NoError(t, err)
	assert.Equal(t, logging.LevelDebug, lc.Level)
	assert.True(t, lc.JSON)
	assert.Equal(t, "hvacdiag", lc.Service)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	path := writeConfig(t, "server:\n  addr: :7000\n")
	t.Setenv(EnvConfigPath, path)
	t.Setenv(EnvAddr, ":9999")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Server.Addr)
}

func TestLoad_Rejects(t *testing.T) {
	t.Setenv(EnvAddr, "")
	tests := []struct {
		name string
		body string
	}{
		{"efficiency above one", "engine:\n  isentropic_efficiency: 1.2\n"},
		{"zero efficiency", "engine:\n  isentropic_efficiency: 0\n"},
		{"batch concurrency too high", "engine:\n  batch_concurrency: 500\n"},
		{"unknown log level", "logging:\n  level: chatty\n"},
		{"empty addr", "server:\n  addr: \"\"\n"},
		{"not yaml", "server: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestSnapshot_Defaults(t *testing.T) {
	snap, err := Default().Snapshot()
	require.NoError(t, err)
	assert.Equal(t, 9, snap.Signatures.Len())
	assert.Equal(t, 0.75, snap.Cycle.IsentropicEfficiency)
}

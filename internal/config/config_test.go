package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, TransportStdio, cfg.Transport)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, 30*time.Second, cfg.UpstreamTimeout())
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverlaysFileOnDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
transport: sse
port: 9100
upstream:
  baseURL: https://upstream.test/v1
  timeoutSeconds: 10
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, TransportSSE, cfg.Transport)
	assert.Equal(t, 9100, cfg.Port)
	assert.Equal(t, "https://upstream.test/v1", cfg.Upstream.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.UpstreamTimeout())
	// Unset fields keep their defaults.
	assert.Equal(t, DefaultHost, cfg.Host)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "unknown transport", content: "transport: carrier-pigeon"},
		{name: "bad port", content: "port: -1"},
		{name: "zero timeout", content: "upstream:\n  timeoutSeconds: 0"},
		{name: "empty base url", content: "upstream:\n  baseURL: \"\""},
		{name: "broken yaml", content: "transport: [unclosed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

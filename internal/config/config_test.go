package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ValidConfig(t *testing.T) {
	t.Parallel()

	content := `
player:
  name: "Ana"

transport: ws

redis:
  addr: "redis:6379"
  password: "secret"
  db: 1

relay:
  url: "ws://relay.example.com:1780"

catchup:
  attempts: 3
  wait: 1
`
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	err := os.WriteFile(configPath, []byte(content), 0o600)
	require.NoError(t, err)

	cfg, err := Load(configPath)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "Ana", cfg.Player.Name)
	assert.Equal(t, "ws", cfg.Transport)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, "secret", cfg.Redis.Password)
	assert.Equal(t, 1, cfg.Redis.DB)
	assert.Equal(t, "ws://relay.example.com:1780", cfg.Relay.URL)
	assert.Equal(t, 3, cfg.Catchup.Attempts)
	assert.Equal(t, time.Second, cfg.Catchup.WaitDuration())
}

func TestLoad_AppliesDefaults(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	err := os.WriteFile(configPath, []byte("player:\n  name: Bob\n"), 0o600)
	require.NoError(t, err)

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "redis", cfg.Transport)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "ws://localhost:1780", cfg.Relay.URL)
	assert.Equal(t, 5, cfg.Catchup.Attempts)
	assert.Equal(t, 2*time.Second, cfg.Catchup.WaitDuration())
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	assert.Equal(t, "redis", cfg.Transport)
	assert.Equal(t, 5, cfg.Catchup.Attempts)
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 4880, cfg.Server.Port)
	assert.Empty(t, cfg.Redis.Addr, "redis is opt-in")
	assert.Equal(t, 30*time.Second, cfg.Game.TurnTimeoutDuration())
	assert.Equal(t, 600*time.Millisecond, cfg.Game.AIPacingDuration())
	assert.Equal(t, 5*time.Second, cfg.Game.AIChainBudgetDuration())
	assert.Equal(t, 30*time.Minute, cfg.Game.RoomIdleDuration())
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
server:
  host: 127.0.0.1
  port: 9000
redis:
  addr: localhost:6379
  db: 2
game:
  turn_timeout: 15
  ai_pacing: 250
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, 15*time.Second, cfg.Game.TurnTimeoutDuration())
	assert.Equal(t, 250*time.Millisecond, cfg.Game.AIPacingDuration())

	// Unset values fall back to the defaults.
	assert.Equal(t, 5*time.Second, cfg.Game.AIChainBudgetDuration())
	assert.Equal(t, 30*time.Minute, cfg.Game.RoomIdleDuration())
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_MalformedYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not a map"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

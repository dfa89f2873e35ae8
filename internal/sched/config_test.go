package sched

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg := Load("")
	assert.Equal(t, 10, cfg.FeederCount)
	assert.Equal(t, time.Second, cfg.FeederInterval())
	assert.Equal(t, "@every 2s", cfg.DrainSchedule)
	assert.Equal(t, 0, cfg.MaxQueueDepth)
	assert.Equal(t, 1, cfg.RetryAttempts)

	// The reference seeds: High 3+2 and Low 5+7.
	require.Len(t, cfg.Seeds, 2)
	assert.Equal(t, SeedTask{A: 3, B: 2, Priority: High}, cfg.Seeds[0])
	assert.Equal(t, SeedTask{A: 5, B: 7, Priority: Low}, cfg.Seeds[1])

	cfg = Load("does/not/exist.yml")
	assert.Equal(t, 10, cfg.FeederCount)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
feeder_count: 3
feeder_interval_ms: 50
handler_delay_ms: 5
drain_schedule: "@every 1s"
max_queue_depth: 16
retry_attempts: 4
seeds:
  - a: 1
    b: 2
    priority: medium
`)
	cfg := Load(path)
	assert.Equal(t, 3, cfg.FeederCount)
	assert.Equal(t, 50*time.Millisecond, cfg.FeederInterval())
	assert.Equal(t, 5*time.Millisecond, cfg.HandlerDelay())
	assert.Equal(t, "@every 1s", cfg.DrainSchedule)
	assert.Equal(t, 16, cfg.MaxQueueDepth)
	assert.Equal(t, 4, cfg.Retry().Attempts)

	require.Len(t, cfg.Seeds, 1)
	assert.Equal(t, SeedTask{A: 1, B: 2, Priority: Medium}, cfg.Seeds[0])
}

func TestLoadClampsInsaneValues(t *testing.T) {
	path := writeConfig(t, `
feeder_count: -1
feeder_interval_ms: 0
max_queue_depth: -5
retry_attempts: 0
`)
	cfg := Load(path)
	assert.Equal(t, 0, cfg.FeederCount)
	assert.Equal(t, 1000, cfg.FeederIntervalMS)
	assert.Equal(t, 0, cfg.MaxQueueDepth)
	assert.Equal(t, 1, cfg.RetryAttempts)
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, int32(8178), cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Equal(t, 2, cfg.Global.ShutdownTimeoutInSeconds)
	assert.Equal(t, DefaultDatabasePath, cfg.Database.Path)

	assert.True(t, cfg.Lookup.Enabled)
	assert.True(t, cfg.Tasks.Enabled)
	assert.Equal(t, 2, cfg.Tasks.Workers)
	assert.Equal(t, 15*time.Minute, cfg.Tasks.ReleaseAfter)
	assert.Equal(t, time.Hour, cfg.Tasks.CleanupInterval)

	assert.True(t, cfg.Integrity.Enabled)
	assert.Equal(t, DefaultIntegritySchedule, cfg.Integrity.Schedule)
}

func TestNewConfig_EnvironmentOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_PATH", "/tmp/custom.db")
	t.Setenv("LOOKUP_ENABLED", "false")
	t.Setenv("TASK_WORKERS", "5")

	cfg := NewConfig()

	assert.Equal(t, int32(9090), cfg.HTTP.Port)
	assert.Equal(t, "/tmp/custom.db", cfg.Database.Path)
	assert.False(t, cfg.Lookup.Enabled)
	assert.Equal(t, 5, cfg.Tasks.Workers)
}

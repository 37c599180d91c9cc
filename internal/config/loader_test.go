package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_LoadWithOverrides(t *testing.T) {
	t.Setenv("INFOCO_AI_MODEL", "from-env")
	t.Setenv("INFOCO_DISPLAY_RECENT_TASKS", "8")

	model := "from-flag"
	storage := StorageMemory
	timeout := 5 * time.Second
	verbose := true

	cfg, err := NewLoader().LoadWithOverrides(&ConfigOverrides{
		AIModel: &model,
		Storage: &storage,
		Timeout: &timeout,
		Verbose: &verbose,
	})
	require.NoError(t, err)

	assert.Equal(t, "from-flag", cfg.AI.Model)
	assert.Equal(t, 8, cfg.Display.RecentTasksLimit)
	assert.Equal(t, StorageMemory, cfg.Storage.Driver)
	assert.Equal(t, 5*time.Second, cfg.Application.Timeout)
	assert.True(t, cfg.Application.Verbose)
}

func TestLoader_FlagRepairsEnvironment(t *testing.T) {
	t.Setenv("INFOCO_AI_MAX_ATTEMPTS", "0")

	_, err := NewLoader().Load()
	require.Error(t, err)

	attempts := 2
	cfg, err := NewLoader().LoadWithOverrides(&ConfigOverrides{AIMaxAttempts: &attempts})
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.AI.MaxAttempts)
}

func TestLoader_InvalidOverride(t *testing.T) {
	level := "loud"
	_, err := NewLoader().LoadWithOverrides(&ConfigOverrides{LogLevel: &level})

	var configErr *ConfigError
	require.ErrorAs(t, err, &configErr)
	assert.Equal(t, "application.log_level", configErr.Field)
}

package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/central-university-dev/go-bed-caller/internal/config"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := config.LoadConfig()
	require.NotNil(t, cfg)

	assert.Equal(t, "bed_caller.json", cfg.StateFile)
	assert.Equal(t, time.Second, cfg.TickInterval)
	assert.Equal(t, 300*time.Second, cfg.RetryDelay)
	assert.Equal(t, 3600*time.Second, cfg.CancelWindow)
	assert.Equal(t, 8082, cfg.CallWebhookPort)
	assert.Equal(t, 9094, cfg.MetricsPort)
	assert.Equal(t, 25, cfg.SendRateLimit)
	assert.Equal(t, []int{408, 429, 500, 502, 503, 504}, cfg.RetryableStatusCodes)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("TICK_INTERVAL", "2s")
	t.Setenv("STATE_FILE", "/tmp/alt_state.json")

	cfg := config.LoadConfig()
	require.NotNil(t, cfg)

	assert.Equal(t, 2*time.Second, cfg.TickInterval)
	assert.Equal(t, "/tmp/alt_state.json", cfg.StateFile)
}

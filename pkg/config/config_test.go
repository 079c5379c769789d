package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.Log.Pretty)
	assert.Equal(t, "gpt-4o", cfg.LLM.Model)
	assert.Equal(t, 5, cfg.Agent.MaxIterations)
	assert.Equal(t, 1000, cfg.Campaigns.Capacity)
	assert.Equal(t, time.Second, cfg.Campaigns.StreamInterval)
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("CAMPAIGNER_SERVER_PORT", "9090")
	t.Setenv("CAMPAIGNER_AGENT_MAX_ITERATIONS", "8")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 8, cfg.Agent.MaxIterations)
	assert.Equal(t, "sk-test", cfg.LLM.APIKey)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "campaigner.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: debug\ncampaigns:\n  stream_interval: 250ms\n"), 0o600))

	cfg, err := Load(New(), path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 250*time.Millisecond, cfg.Campaigns.StreamInterval)
}

func TestLoadRejectsInvalid(t *testing.T) {
	v := New()
	v.Set("campaigns.capacity", 0)

	_, err := Load(v, "")
	assert.ErrorContains(t, err, "campaigns.capacity")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

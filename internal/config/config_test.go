package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Queue.Type)
	assert.Equal(t, "paddle_scraper", cfg.Database.DBName)
	assert.Equal(t, 3, cfg.Scraper.ConcurrentLimit)
	assert.True(t, cfg.Images.Enabled)
	require.NoError(t, cfg.Validate())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("QUEUE_TYPE", "redis")
	t.Setenv("SCRAPER_RATE_LIMIT_MIN", "1s")
	t.Setenv("SCRAPER_RATE_LIMIT_MAX", "3s")
	t.Setenv("SCRAPER_USER_AGENTS", "agent-a,agent-b")
	t.Setenv("IMAGES_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "redis", cfg.Queue.Type)
	assert.Equal(t, time.Second, cfg.Scraper.RateLimitMin)
	assert.Equal(t, 3*time.Second, cfg.Scraper.RateLimitMax)
	assert.Equal(t, []string{"agent-a", "agent-b"}, cfg.Scraper.UserAgents)
	assert.False(t, cfg.Images.Enabled)
	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "concurrent limit too low",
			mutate:  func(c *Config) { c.Scraper.ConcurrentLimit = 0 },
			wantErr: "SCRAPER_CONCURRENT_LIMIT",
		},
		{
			name: "rate limit bounds inverted",
			mutate: func(c *Config) {
				c.Scraper.RateLimitMin = 10 * time.Second
				c.Scraper.RateLimitMax = time.Second
			},
			wantErr: "SCRAPER_RATE_LIMIT_MIN",
		},
		{
			name:    "unknown queue type",
			mutate:  func(c *Config) { c.Queue.Type = "kafka" },
			wantErr: "QUEUE_TYPE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load()
			require.NoError(t, err)
			tt.mutate(cfg)

			err = cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

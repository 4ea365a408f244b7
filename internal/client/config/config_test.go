package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:4000", c.ServerBaseURL)
	assert.Equal(t, 30*time.Second, c.RequestTimeout)
	assert.Equal(t, StoreSQLite, c.StoreDriver)
	assert.Equal(t, "paydesk.db", c.StoreDSN)
	assert.Equal(t, "127.0.0.1:6379", c.RedisAddr)
	assert.Equal(t, "info", c.LogLevel)
	assert.NoError(t, c.Validate())
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "http://127.0.0.1:4000", cfg.ServerBaseURL)
	assert.Equal(t, StoreSQLite, cfg.StoreDriver)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "defaults ok", mutate: func(c *Config) {}},
		{name: "https ok", mutate: func(c *Config) { c.ServerBaseURL = "https://pay.example.com/api" }},
		{name: "memory needs nothing", mutate: func(c *Config) { c.StoreDriver = StoreMemory; c.StoreDSN = "" }},
		{name: "bad scheme", mutate: func(c *Config) { c.ServerBaseURL = "ftp://x" }, wantErr: "scheme"},
		{name: "no host", mutate: func(c *Config) { c.ServerBaseURL = "http://" }, wantErr: "missing host"},
		{name: "unknown driver", mutate: func(c *Config) { c.StoreDriver = "etcd" }, wantErr: "unknown store driver"},
		{name: "sqlite without dsn", mutate: func(c *Config) { c.StoreDSN = "" }, wantErr: "store dsn"},
		{name: "redis without addr", mutate: func(c *Config) { c.StoreDriver = StoreRedis; c.RedisAddr = "" }, wantErr: "redis address"},
		{name: "negative timeout", mutate: func(c *Config) { c.RequestTimeout = -time.Second }, wantErr: "timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Config
			c.LoadDefaults()
			tt.mutate(&c)

			err := c.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadConfig_SubSecondJSONTimeoutSurvivesFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeTempJSON(t, "", "", map[string]any{"request_timeout": "500ms"})

	os.Args = []string{"testbin", "-c", path}
	cfg := LoadConfig()
	assert.Equal(t, 500*time.Millisecond, cfg.RequestTimeout)
	require.NoError(t, cfg.Validate())

	os.Args = []string{"testbin", "-c", path, "-t", "3"}
	cfg = LoadConfig()
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout, "an explicit -t overrides the file")
}

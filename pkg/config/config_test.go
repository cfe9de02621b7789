package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viktori/matteray/pkg/cache"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
[log]
level = "debug"

[cache]
backend = "redis"
ttl = "90m"

[cache.redis]
addr = "cache:6379"
db = 2

[server]
addr = "127.0.0.1:9000"
read_timeout = "5s"

[pipeline]
concurrency = 8
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, log.DebugLevel, cfg.LogLevel())
	assert.Equal(t, cache.BackendRedis, cfg.Cache.Backend)
	assert.Equal(t, Duration(90*time.Minute), cfg.Cache.TTL)
	assert.Equal(t, "cache:6379", cfg.Cache.Redis.Addr)
	assert.Equal(t, 2, cfg.Cache.Redis.DB)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, Duration(5*time.Second), cfg.Server.ReadTimeout)
	assert.Equal(t, Default().Server.WriteTimeout, cfg.Server.WriteTimeout)
	assert.Equal(t, 8, cfg.Pipeline.Concurrency)

	opts := cfg.CacheOptions()
	assert.Equal(t, 90*time.Minute, opts.TTL)
	assert.Equal(t, "cache:6379", opts.Redis.Addr)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown key", "[cache]\nbackedn = \"file\"\n"},
		{"bad backend", "[cache]\nbackend = \"memcached\"\n"},
		{"bad duration", "[cache]\nttl = \"soon\"\n"},
		{"negative ttl", "[cache]\nttl = \"-1h\"\n"},
		{"bad level", "[log]\nlevel = \"loud\"\n"},
		{"zero concurrency", "[pipeline]\nconcurrency = 0\n"},
		{"syntax", "[cache\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("MATTERAY_CACHE_BACKEND", "none")
	t.Setenv("MATTERAY_SERVER_ADDR", ":7000")
	t.Setenv("MATTERAY_CONCURRENCY", "2")

	cfg, err := Load(writeConfig(t, "[cache]\nbackend = \"file\"\n"))
	require.NoError(t, err)
	assert.Equal(t, cache.BackendNone, cfg.Cache.Backend)
	assert.Equal(t, ":7000", cfg.Server.Addr)
	assert.Equal(t, 2, cfg.Pipeline.Concurrency)
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	path, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/xdg", "matteray", "config.toml"), path)
}

func TestDuration_Text(t *testing.T) {
	var d Duration
	require.NoError(t, d.UnmarshalText([]byte("1h30m")))
	assert.Equal(t, Duration(90*time.Minute), d)

	text, err := d.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "1h30m0s", string(text))
}

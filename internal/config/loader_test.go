package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME at a temp dir so the user's real config is never read.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(envConfigPath, "")
	return home
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".quest", "quest.db"), cfg.DB.Path)
	assert.Equal(t, "127.0.0.1:5000", cfg.Server.Addr)
	assert.Equal(t, []string{"chrome-extension://*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, LockBackendLocal, cfg.Lock.Backend)
	assert.Equal(t, 30*time.Second, cfg.Lock.TTL)
	assert.Equal(t, slog.LevelInfo, cfg.Log.SlogLevel())
	assert.False(t, cfg.Log.UseCases)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	isolate(t)
	path := writeConfig(t, `
db:
  path: /tmp/research.db
server:
  addr: ":8080"
  allowed_origins: ["chrome-extension://abc", "http://localhost:*"]
lock:
  backend: redis
  redis_url: redis://localhost:6379/0
  ttl: 5s
log:
  level: debug
  use_cases: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/research.db", cfg.DB.Path)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, []string{"chrome-extension://abc", "http://localhost:*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, LockBackendRedis, cfg.Lock.Backend)
	assert.Equal(t, 5*time.Second, cfg.Lock.TTL)
	assert.Equal(t, slog.LevelDebug, cfg.Log.SlogLevel())
	assert.True(t, cfg.Log.UseCases)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	isolate(t)
	path := writeConfig(t, "server:\n  addr: \":8080\"\n")
	t.Setenv("QUEST_SERVER_ADDR", ":9090")
	t.Setenv("QUEST_DB_PATH", "/tmp/env.db")
	t.Setenv("QUEST_SERVER_ALLOWED_ORIGINS", "chrome-extension://a, chrome-extension://b")
	t.Setenv("QUEST_LOG_USE_CASES", "true")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "/tmp/env.db", cfg.DB.Path)
	assert.Equal(t, []string{"chrome-extension://a", "chrome-extension://b"}, cfg.Server.AllowedOrigins)
	assert.True(t, cfg.Log.UseCases)
}

func TestLoad_ConfigPathFromEnv(t *testing.T) {
	isolate(t)
	path := writeConfig(t, "db:\n  path: /tmp/from-env-file.db\n")
	t.Setenv(envConfigPath, path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/from-env-file.db", cfg.DB.Path)
}

func TestLoad_DefaultFileInHome(t *testing.T) {
	home := isolate(t)
	dir := filepath.Join(home, ".config", "quest")
	require.NoError(t, os.MkdirAll(dir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("db:\n  path: ~/notes.db\n"), 0o600))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "notes.db"), cfg.DB.Path)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown lock backend", "lock:\n  backend: etcd\n"},
		{"redis without url", "lock:\n  backend: redis\n"},
		{"bad log level", "log:\n  level: loud\n"},
		{"non-positive ttl", "lock:\n  ttl: 0s\n"},
		{"malformed yaml", "server: [unclosed\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			isolate(t)
			_, err := Load(writeConfig(t, tc.body))
			assert.Error(t, err)
		})
	}
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	isolate(t)
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestEnvKeyValue(t *testing.T) {
	k, v := envKeyValue("QUEST_LOCK_REDIS_URL", "redis://x")
	assert.Equal(t, "lock.redis_url", k)
	assert.Equal(t, "redis://x", v)

	k, _ = envKeyValue(envConfigPath, "/x")
	assert.Empty(t, k)

	k, _ = envKeyValue("QUEST_VERBOSE", "1")
	assert.Empty(t, k)
}

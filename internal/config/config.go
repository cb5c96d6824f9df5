// Package config loads quest configuration from defaults, an optional YAML
// file and QUEST_* environment variables, in increasing precedence.
package config

import (
	"fmt"
	"log/slog"
	"time"
)

const (
	LockBackendLocal = "local"
	LockBackendRedis = "redis"
)

type Config struct {
	DB     DBConfig     `koanf:"db"`
	Server ServerConfig `koanf:"server"`
	Lock   LockConfig   `koanf:"lock"`
	Log    LogConfig    `koanf:"log"`
}

type DBConfig struct {
	// Path is the SQLite file. ":memory:" is accepted for throwaway runs.
	Path string `koanf:"path"`
}

type ServerConfig struct {
	Addr string `koanf:"addr"`
	// AllowedOrigins are CORS origin patterns; a trailing * matches any suffix.
	AllowedOrigins []string `koanf:"allowed_origins"`
}

// LockConfig selects how concurrent note reconciliation on one question is
// serialized. "local" is enough for a single process; "redis" is needed when
// several processes share the database.
type LockConfig struct {
	Backend  string        `koanf:"backend"`
	RedisURL string        `koanf:"redis_url"`
	TTL      time.Duration `koanf:"ttl"`
}

type LogConfig struct {
	Level    string `koanf:"level"`
	UseCases bool   `koanf:"use_cases"`
}

// SlogLevel parses Level, defaulting to info.
func (c LogConfig) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Level)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

func (c *Config) Validate() error {
	if c.DB.Path == "" {
		return fmt.Errorf("db.path is required")
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	switch c.Lock.Backend {
	case LockBackendLocal:
	case LockBackendRedis:
		if c.Lock.RedisURL == "" {
			return fmt.Errorf("lock.redis_url is required when lock.backend is %q", LockBackendRedis)
		}
	default:
		return fmt.Errorf("lock.backend must be %q or %q, got %q", LockBackendLocal, LockBackendRedis, c.Lock.Backend)
	}
	if c.Lock.TTL <= 0 {
		return fmt.Errorf("lock.ttl must be positive")
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix     = "QUEST_"
	envConfigPath = "QUEST_CONFIG"
)

// defaults is loaded first so every key has a value before the file and
// environment layers are applied. db.path is filled in by Load because it
// depends on the home directory.
var defaults = []byte(`
server:
  addr: "127.0.0.1:5000"
  allowed_origins:
    - "chrome-extension://*"
lock:
  backend: local
  ttl: 30s
log:
  level: info
  use_cases: false
`)

// Load builds the configuration. configPath overrides QUEST_CONFIG, which
// overrides ~/.config/quest/config.yaml. A missing file is only an error when
// the path was given explicitly.
//
// Environment variables map on the first underscore after the prefix:
//
//	QUEST_DB_PATH                -> db.path
//	QUEST_SERVER_ALLOWED_ORIGINS -> server.allowed_origins (comma separated)
//	QUEST_LOCK_REDIS_URL         -> lock.redis_url
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(rawbytes.Provider(defaults), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	explicit := configPath != ""
	if !explicit {
		configPath = os.Getenv(envConfigPath)
		explicit = configPath != ""
	}
	if !explicit {
		p, err := DefaultConfigPath()
		if err != nil {
			return nil, err
		}
		configPath = p
	}

	content, err := os.ReadFile(expandHome(configPath))
	switch {
	case err == nil:
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", configPath, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("reading config file %s: %w", configPath, err)
	}

	if err := k.Load(env.ProviderWithValue(envPrefix, ".", envKeyValue), nil); err != nil {
		return nil, fmt.Errorf("loading environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if cfg.DB.Path == "" {
		p, err := DefaultDBPath()
		if err != nil {
			return nil, err
		}
		cfg.DB.Path = p
	}
	cfg.DB.Path = expandHome(cfg.DB.Path)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// envKeyValue maps QUEST_SECTION_FIELD_NAME to section.field_name. Returning
// an empty key drops the variable.
func envKeyValue(key, value string) (string, any) {
	if key == envConfigPath {
		return "", nil
	}
	lower := strings.ToLower(strings.TrimPrefix(key, envPrefix))
	parts := strings.SplitN(lower, "_", 2)
	if len(parts) != 2 {
		return "", nil
	}
	k := parts[0] + "." + parts[1]

	if k == "server.allowed_origins" {
		var origins []string
		for _, o := range strings.Split(value, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		return k, origins
	}
	return k, value
}

// DefaultConfigPath is ~/.config/quest/config.yaml.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "quest", "config.yaml"), nil
}

// DefaultDBPath is ~/.quest/quest.db.
func DefaultDBPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".quest", "quest.db"), nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

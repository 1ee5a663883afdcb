// Package config loads CLI configuration from an optional TOML file with
// environment-variable overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

const (
	// Store kinds accepted by the CLI.
	StoreSQLite = "sqlite"
	StoreDisk   = "disk"
	StoreNone   = "none"

	DefaultStore     = StoreSQLite
	DefaultUserAgent = "meshload/1.0"

	configFileName   = ".meshload.toml"
	configPathEnvKey = "MESHLOAD_CONFIG"
)

// Config defines runtime configuration for meshload.
type Config struct {
	// URL is the fixed remote address of the model asset.
	URL string `toml:"url" env:"MESHLOAD_URL"`

	// Store selects the cache backend: sqlite, disk, or none.
	Store string `toml:"store" env:"MESHLOAD_STORE"`

	// CachePath is the database file (sqlite) or directory (disk) the
	// cache lives in. Empty means a per-user default under the OS cache
	// directory.
	CachePath string `toml:"cache_path" env:"MESHLOAD_CACHE_PATH"`

	// Compress enables zstd framing for the disk store.
	Compress bool `toml:"compress" env:"MESHLOAD_COMPRESS"`

	// UserAgent is sent on every fetch.
	UserAgent string `toml:"user_agent" env:"MESHLOAD_USER_AGENT"`
}

// Default returns default configuration values.
func Default() Config {
	return Config{
		Store:     DefaultStore,
		UserAgent: DefaultUserAgent,
	}
}

// Load builds the effective configuration: defaults, then the TOML file
// (MESHLOAD_CONFIG or ~/.meshload.toml) when present, then environment
// overrides.
func Load() (Config, error) {
	cfg := Default()

	path := os.Getenv(configPathEnvKey)
	explicit := path != ""
	if !explicit {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, configFileName)
		}
	}
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			if explicit || !errors.Is(err, fs.ErrNotExist) {
				return Config{}, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field values that have a closed set of options.
func (c Config) Validate() error {
	switch c.Store {
	case StoreSQLite, StoreDisk, StoreNone:
		return nil
	default:
		return fmt.Errorf("unknown store kind %q (want sqlite, disk, or none)", c.Store)
	}
}

// ResolveCachePath returns the effective cache location, creating parent
// directories for the per-user default.
func (c Config) ResolveCachePath() (string, error) {
	if c.CachePath != "" {
		return c.CachePath, nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("resolve cache dir: %w", err)
	}
	dir := filepath.Join(base, "meshload")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("create cache dir: %w", err)
	}
	if c.Store == StoreSQLite {
		return filepath.Join(dir, "model.db"), nil
	}
	return dir, nil
}

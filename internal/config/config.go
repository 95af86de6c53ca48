package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	defaultBufferingMessage = "Buffering..."
	defaultRetryMax         = 3
	defaultTimeoutSeconds   = 30
)

type Config struct {
	Sources  []string `koanf:"sources"`   // media URIs, one window each
	Band     string   `koanf:"band"`      // "auto", "multi", or "single"
	LogLevel string   `koanf:"log_level"` // zerolog level name
	LogFile  string   `koanf:"log_file"`  // empty means xdg state dir
	CacheDir string   `koanf:"cache_dir"` // where remote sources are downloaded
	Icons    string   `koanf:"icons"`     // "nerd", "unicode", or "none"

	// Desktop toast while buffering (default: true)
	Notifications    *bool  `koanf:"notifications"`
	BufferingMessage string `koanf:"buffering_message"`

	HTTP HTTPConfig `koanf:"http"`
}

// HTTPConfig controls fetching of remote sources.
type HTTPConfig struct {
	RetryMax       *int `koanf:"retry_max"`       // default: 3, 0 disables retries
	TimeoutSeconds int  `koanf:"timeout_seconds"` // response header wait, default: 30
}

func Load() (*Config, error) {
	return LoadFrom(getConfigPaths()...)
}

// LoadFrom loads the given files in order; later files override earlier ones.
// Missing files are skipped.
func LoadFrom(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	for i, src := range cfg.Sources {
		cfg.Sources[i] = expandPath(src)
	}
	if cfg.LogFile != "" {
		cfg.LogFile = expandPath(cfg.LogFile)
	}
	if cfg.CacheDir != "" {
		cfg.CacheDir = expandPath(cfg.CacheDir)
	}
	cfg.Band = strings.ToLower(strings.TrimSpace(cfg.Band))

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/tideplay/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "tideplay", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// NotificationsEnabled reports whether buffering toasts are on.
func (c *Config) NotificationsEnabled() bool {
	return c.Notifications == nil || *c.Notifications
}

func (c *Config) GetBufferingMessage() string {
	if c.BufferingMessage == "" {
		return defaultBufferingMessage
	}
	return c.BufferingMessage
}

// GetCacheDir returns the download directory for remote sources.
func (c *Config) GetCacheDir() string {
	if c.CacheDir == "" {
		return os.TempDir()
	}
	return c.CacheDir
}

// Retries returns the retry count for remote fetches.
func (h HTTPConfig) Retries() int {
	if h.RetryMax == nil || *h.RetryMax < 0 {
		return defaultRetryMax
	}
	return *h.RetryMax
}

// HeaderTimeout returns how long to wait for a server to start answering.
// Downloads themselves are not bounded.
func (h HTTPConfig) HeaderTimeout() time.Duration {
	if h.TimeoutSeconds <= 0 {
		return defaultTimeoutSeconds * time.Second
	}
	return time.Duration(h.TimeoutSeconds) * time.Second
}

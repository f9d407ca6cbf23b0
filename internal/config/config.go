// Package config loads rumo's YAML configuration: where answers are kept,
// how logs are written, and how the finished document is exported and shown.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all rumo configuration.
type Config struct {
	// Persistence backend for the interview profile
	Store StoreConfig `yaml:"store"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`

	// Document export and clipboard
	Export ExportConfig `yaml:"export"`

	// Terminal presentation
	UI UIConfig `yaml:"ui"`
}

// StoreConfig selects and configures the profile store.
type StoreConfig struct {
	Backend      string      `yaml:"backend"`       // file, sqlite, redis, memory
	Path         string      `yaml:"path"`          // file and sqlite backends; empty = default under Dir()
	SQLiteDriver string      `yaml:"sqlite_driver"` // sqlite (pure Go), sqlite3 (cgo)
	Redis        RedisConfig `yaml:"redis"`
}

// RedisConfig configures the redis backend.
type RedisConfig struct {
	Addr        string `yaml:"addr"`
	Password    string `yaml:"password"`
	DB          int    `yaml:"db"`
	Key         string `yaml:"key"`
	DialTimeout string `yaml:"dial_timeout"`
}

// ExportConfig configures `rumo export` and `rumo copy`.
type ExportConfig struct {
	Format    string `yaml:"format"`    // md, json, yaml, toml, mangle
	Clipboard bool   `yaml:"clipboard"` // false disables clipboard writes entirely
}

// Store backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// SQLite drivers, as registered with database/sql.
const (
	DriverModernc = "sqlite"
	DriverMattn   = "sqlite3"
)

// ValidBackends lists the supported store backends.
var ValidBackends = []string{BackendFile, BackendSQLite, BackendRedis, BackendMemory}

// ValidDrivers lists the supported SQLite drivers.
var ValidDrivers = []string{DriverModernc, DriverMattn}

// ValidExportFormats lists the export formats `rumo export` understands.
var ValidExportFormats = []string{"md", "json", "yaml", "toml", "mangle"}

// Dir returns rumo's home directory, ~/.rumo. It falls back to a
// relative .rumo when the home directory cannot be determined.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".rumo"
	}
	return filepath.Join(home, ".rumo")
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Backend:      BackendFile,
			SQLiteDriver: DriverModernc,
			Redis: RedisConfig{
				Addr:        "localhost:6379",
				Key:         "rumo:profile",
				DialTimeout: "3s",
			},
		},

		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			File:   filepath.Join(Dir(), "rumo.log"),
		},

		Export: ExportConfig{
			Format:    "md",
			Clipboard: true,
		},

		UI: *DefaultUIConfig(),
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides apply either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if backend := os.Getenv("RUMO_STORE"); backend != "" {
		c.Store.Backend = strings.ToLower(backend)
	}
	if path := os.Getenv("RUMO_STORE_PATH"); path != "" {
		c.Store.Path = path
	}
	if driver := os.Getenv("RUMO_SQLITE_DRIVER"); driver != "" {
		c.Store.SQLiteDriver = driver
	}
	if addr := os.Getenv("RUMO_REDIS_ADDR"); addr != "" {
		c.Store.Redis.Addr = addr
	}

	if level := os.Getenv("RUMO_LOG_LEVEL"); level != "" {
		c.Logging.Level = strings.ToLower(level)
	}
	// RUMO_LOG_FILE may be set to the empty string to disable file logging,
	// so presence matters, not value.
	if file, ok := os.LookupEnv("RUMO_LOG_FILE"); ok {
		c.Logging.File = file
	}
}

// StorePath returns the configured store path, or the backend default.
func (c *Config) StorePath() string {
	if c.Store.Path != "" {
		return c.Store.Path
	}
	switch c.Store.Backend {
	case BackendSQLite:
		return filepath.Join(Dir(), "profile.db")
	default:
		return filepath.Join(Dir(), "profile.json")
	}
}

// GetRedisDialTimeout returns the redis dial timeout as a duration.
func (c *Config) GetRedisDialTimeout() time.Duration {
	d, err := time.ParseDuration(c.Store.Redis.DialTimeout)
	if err != nil {
		return 3 * time.Second
	}
	return d
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if !contains(ValidBackends, c.Store.Backend) {
		return fmt.Errorf("invalid store backend: %s (valid: %v)", c.Store.Backend, ValidBackends)
	}
	if c.Store.Backend == BackendSQLite && !contains(ValidDrivers, c.Store.SQLiteDriver) {
		return fmt.Errorf("invalid sqlite driver: %s (valid: %v)", c.Store.SQLiteDriver, ValidDrivers)
	}
	if c.Store.Backend == BackendRedis && c.Store.Redis.Addr == "" {
		return fmt.Errorf("redis backend requires store.redis.addr")
	}

	if err := c.Logging.Validate(); err != nil {
		return err
	}

	if !contains(ValidExportFormats, c.Export.Format) {
		return fmt.Errorf("invalid export format: %s (valid: %v)", c.Export.Format, ValidExportFormats)
	}

	if c.UI.WordWrap < 0 {
		return fmt.Errorf("ui.word_wrap must not be negative, got %d", c.UI.WordWrap)
	}

	return nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

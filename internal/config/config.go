package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Defaults applied before the config file and environment are read.
const (
	DefaultAPIBaseURL        = "http://localhost:3000/api"
	DefaultTimeoutSeconds    = 15
	DefaultRequestsPerSecond = 10
	DefaultOutputFormat      = "table"
	DefaultPageSize          = 10
	DefaultLogLevel          = "info"
	DefaultLogFormat         = "json"
	DefaultCacheTTLSeconds   = 60
	configFileName           = "config.yaml"
	configFilePerm           = 0o600
)

// Environment variables read by New.
const (
	EnvHome     = "QUIZADMIN_HOME"
	EnvConfig   = "QUIZADMIN_CONFIG"
	EnvAPIURL   = "QUIZADMIN_API_URL"
	EnvAPIToken = "QUIZADMIN_API_TOKEN"
	EnvPageSize = "QUIZADMIN_PAGE_SIZE"
)

// Validation errors.
var (
	ErrUnknownKey      = errors.New("unknown config key")
	ErrInvalidValue    = errors.New("invalid config value")
	ErrEmptyBaseURL    = errors.New("api.base_url cannot be empty")
	ErrInvalidFormat   = errors.New("output.default_format must be table, json or ndjson")
	ErrInvalidPageSize = errors.New("output.page_size must be >= 1")
)

// Config is the quizadmin configuration file.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
	Cache   CacheConfig   `yaml:"cache"`

	path string
}

// APIConfig points the console at the quiz platform's REST API.
type APIConfig struct {
	BaseURL           string  `yaml:"base_url"`
	Token             string  `yaml:"token,omitempty"`
	TimeoutSeconds    int     `yaml:"timeout_seconds"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
}

// OutputConfig controls list rendering.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format"`
	PageSize      int    `yaml:"page_size"`
}

// LoggingConfig controls zerolog output. An empty File logs to stderr.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file,omitempty"`
}

// CacheConfig controls the on-disk cache of fetched lists.
type CacheConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Directory  string `yaml:"directory,omitempty"`
	TTLSeconds int    `yaml:"ttl_seconds"`
}

// Default returns a Config with built-in defaults only.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:           DefaultAPIBaseURL,
			TimeoutSeconds:    DefaultTimeoutSeconds,
			RequestsPerSecond: DefaultRequestsPerSecond,
		},
		Output: OutputConfig{
			DefaultFormat: DefaultOutputFormat,
			PageSize:      DefaultPageSize,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Cache: CacheConfig{
			Enabled:    false,
			TTLSeconds: DefaultCacheTTLSeconds,
		},
	}
}

// New returns the effective configuration: defaults, then the config file (if
// present), then environment overrides. A missing or unreadable file is not an
// error; New always returns a usable Config.
func New() *Config {
	path, err := GetConfigPath()
	if err != nil {
		cfg := Default()
		cfg.applyEnv()
		return cfg
	}

	cfg, loadErr := Load(path)
	if loadErr != nil {
		cfg = Default()
		cfg.path = path
	}
	cfg.applyEnv()
	return cfg
}

// Load reads the config file at path on top of the defaults.
// A file that does not exist yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	cfg.path = path

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err := ShallowMergeYAML(cfg, path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile is Load followed by environment overrides. Unlike New it
// reports a file that cannot be parsed.
func LoadFile(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}
	cfg.applyEnv()
	return cfg, nil
}

// Path returns the file this config was loaded from or will be saved to.
func (c *Config) Path() string {
	return c.path
}

// SetPath changes where Save writes.
func (c *Config) SetPath(path string) {
	c.path = path
}

// Save writes the config as YAML, creating the parent directory.
func (c *Config) Save() error {
	if c.path == "" {
		return errors.New("config path not set")
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(c.path, data, configFilePerm); err != nil {
		return fmt.Errorf("writing config %s: %w", c.path, err)
	}
	return nil
}

// Validate checks values that would otherwise fail later at request time.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.API.BaseURL) == "" {
		return ErrEmptyBaseURL
	}
	switch c.Output.DefaultFormat {
	case "table", "json", "ndjson":
	default:
		return fmt.Errorf("%w: got %q", ErrInvalidFormat, c.Output.DefaultFormat)
	}
	if c.Output.PageSize < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidPageSize, c.Output.PageSize)
	}
	if c.API.TimeoutSeconds < 0 {
		return fmt.Errorf("%w: api.timeout_seconds must be >= 0", ErrInvalidValue)
	}
	if c.API.RequestsPerSecond < 0 {
		return fmt.Errorf("%w: api.requests_per_second must be >= 0", ErrInvalidValue)
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvAPIURL); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv(EnvAPIToken); v != "" {
		c.API.Token = v
	}
	if v := os.Getenv(EnvPageSize); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Output.PageSize = n
		}
	}
}

// Keys lists the dotted keys accepted by Get and Set, in display order.
func Keys() []string {
	return []string{
		"api.base_url", "api.token", "api.timeout_seconds", "api.requests_per_second",
		"output.default_format", "output.page_size",
		"logging.level", "logging.format", "logging.file",
		"cache.enabled", "cache.directory", "cache.ttl_seconds",
	}
}

// Get returns the value of a dotted key as text.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "api.base_url":
		return c.API.BaseURL, nil
	case "api.token":
		return c.API.Token, nil
	case "api.timeout_seconds":
		return strconv.Itoa(c.API.TimeoutSeconds), nil
	case "api.requests_per_second":
		return strconv.FormatFloat(c.API.RequestsPerSecond, 'f', -1, 64), nil
	case "output.default_format":
		return c.Output.DefaultFormat, nil
	case "output.page_size":
		return strconv.Itoa(c.Output.PageSize), nil
	case "logging.level":
		return c.Logging.Level, nil
	case "logging.format":
		return c.Logging.Format, nil
	case "logging.file":
		return c.Logging.File, nil
	case "cache.enabled":
		return strconv.FormatBool(c.Cache.Enabled), nil
	case "cache.directory":
		return c.Cache.Directory, nil
	case "cache.ttl_seconds":
		return strconv.Itoa(c.Cache.TTLSeconds), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

// Set assigns a dotted key from text.
//
//nolint:gocyclo // One case per key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "api.base_url":
		c.API.BaseURL = value
	case "api.token":
		c.API.Token = value
	case "api.timeout_seconds":
		return setInt(&c.API.TimeoutSeconds, key, value)
	case "api.requests_per_second":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidValue, key, value)
		}
		c.API.RequestsPerSecond = f
	case "output.default_format":
		c.Output.DefaultFormat = value
	case "output.page_size":
		return setInt(&c.Output.PageSize, key, value)
	case "logging.level":
		c.Logging.Level = value
	case "logging.format":
		c.Logging.Format = value
	case "logging.file":
		c.Logging.File = value
	case "cache.enabled":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidValue, key, value)
		}
		c.Cache.Enabled = b
	case "cache.directory":
		c.Cache.Directory = value
	case "cache.ttl_seconds":
		return setInt(&c.Cache.TTLSeconds, key, value)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return nil
}

func setInt(dst *int, key, value string) error {
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("%w: %s=%q", ErrInvalidValue, key, value)
	}
	*dst = n
	return nil
}

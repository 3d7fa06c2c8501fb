package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"

	"reposcout/internal/domain"
	"reposcout/internal/logging"
)

// EnvPrefix prefixes every environment override, e.g. REPOSCOUT_API_TOKEN
const EnvPrefix = "REPOSCOUT"

const appDir = "reposcout"

// Config represents the application configuration
type Config struct {
	Version int             `toml:"version" ignored:"true"`
	API     APISettings     `toml:"api"`
	Suggest SuggestSettings `toml:"suggest"`
	UI      UISettings      `toml:"ui"`
	History HistorySettings `toml:"history"`
	Log     LogSettings     `toml:"log"`
}

// APISettings configure the GitHub client
type APISettings struct {
	URL               string `toml:"url" split_words:"true"`
	Token             string `toml:"token,omitempty" split_words:"true"`
	TimeoutSeconds    int    `toml:"timeout_seconds" split_words:"true"`
	RequestsPerMinute int    `toml:"requests_per_minute" split_words:"true"`
	Burst             int    `toml:"burst" split_words:"true"`
	CacheSize         int    `toml:"cache_size" split_words:"true"`
	CacheTTLSeconds   int    `toml:"cache_ttl_seconds" split_words:"true"`
}

// SuggestSettings configure autosuggest
type SuggestSettings struct {
	DebounceMS int `toml:"debounce_ms" split_words:"true"`
	MinLength  int `toml:"min_length" split_words:"true"`
	Limit      int `toml:"limit" split_words:"true"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	DefaultPerPage int   `toml:"default_per_page" split_words:"true"`
	PerPageOptions []int `toml:"per_page_options" split_words:"true"`
}

// HistorySettings configure the search history database
type HistorySettings struct {
	Enabled bool   `toml:"enabled" split_words:"true"`
	Path    string `toml:"path" split_words:"true"`
}

// LogSettings configure the log file
type LogSettings struct {
	Level      string `toml:"level" split_words:"true"`
	File       string `toml:"file" split_words:"true"`
	MaxSizeMB  int    `toml:"max_size_mb" split_words:"true"`
	MaxBackups int    `toml:"max_backups" split_words:"true"`
	MaxAgeDays int    `toml:"max_age_days" split_words:"true"`
}

// Timeout returns the API request timeout
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// CacheTTL returns how long suggestion answers are reused
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.API.CacheTTLSeconds) * time.Second
}

// SuggestDebounce returns the autosuggest quiet period
func (c *Config) SuggestDebounce() time.Duration {
	return time.Duration(c.Suggest.DebounceMS) * time.Millisecond
}

// Validate rejects settings the application cannot run with
func (c *Config) Validate() error {
	var errs []error
	if c.API.URL == "" {
		errs = append(errs, errors.New("api.url must not be empty"))
	}
	if c.API.TimeoutSeconds <= 0 {
		errs = append(errs, fmt.Errorf("api.timeout_seconds must be positive, got %d", c.API.TimeoutSeconds))
	}
	if c.API.RequestsPerMinute < 0 {
		errs = append(errs, fmt.Errorf("api.requests_per_minute must not be negative, got %d", c.API.RequestsPerMinute))
	}
	if c.API.CacheSize < 0 {
		errs = append(errs, fmt.Errorf("api.cache_size must not be negative, got %d", c.API.CacheSize))
	}
	if c.API.CacheSize > 0 && c.API.CacheTTLSeconds <= 0 {
		errs = append(errs, fmt.Errorf("api.cache_ttl_seconds must be positive, got %d", c.API.CacheTTLSeconds))
	}
	if c.Suggest.DebounceMS < 0 {
		errs = append(errs, fmt.Errorf("suggest.debounce_ms must not be negative, got %d", c.Suggest.DebounceMS))
	}
	if c.Suggest.MinLength < 0 {
		errs = append(errs, fmt.Errorf("suggest.min_length must not be negative, got %d", c.Suggest.MinLength))
	}
	if len(c.UI.PerPageOptions) == 0 {
		errs = append(errs, errors.New("ui.per_page_options must not be empty"))
	}
	for _, n := range c.UI.PerPageOptions {
		if n < 1 || n > domain.MaxPerPage {
			errs = append(errs, fmt.Errorf("ui.per_page_options: %d is outside 1..%d", n, domain.MaxPerPage))
		}
	}
	if c.UI.DefaultPerPage < 1 || c.UI.DefaultPerPage > domain.MaxPerPage {
		errs = append(errs, fmt.Errorf("ui.default_per_page: %d is outside 1..%d", c.UI.DefaultPerPage, domain.MaxPerPage))
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if c.History.Enabled && c.History.Path == "" {
		errs = append(errs, errors.New("history.path must be set when history is enabled"))
	}
	return errors.Join(errs...)
}

// ApplyEnv overrides settings from REPOSCOUT_* variables. A token from the
// plain GITHUB_TOKEN variable is used when none is configured.
func ApplyEnv(cfg *Config) error {
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return fmt.Errorf("failed to read environment: %w", err)
	}
	if cfg.API.Token == "" {
		cfg.API.Token = os.Getenv("GITHUB_TOKEN")
	}
	return nil
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

type configService struct {
	filePath string
}

// NewConfigService creates a config service for path, or for the default
// location when path is empty
func NewConfigService(path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{filePath: path}
}

// DefaultPath returns the config file location under the user config dir
func DefaultPath() string {
	return filepath.Join(userDir(os.UserConfigDir), "config.toml")
}

func userDir(base func() (string, error)) string {
	dir, err := base()
	if err != nil {
		dir, err = os.UserHomeDir()
		if err != nil {
			dir = "."
		}
		dir = filepath.Join(dir, ".config")
	}
	return filepath.Join(dir, appDir)
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration file, falling back to defaults when it
// does not exist
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return cs.LoadFromPath(cs.filePath)
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path. Keys missing from
// the file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	cache := userDir(os.UserCacheDir)
	return &Config{
		Version: 1,
		API: APISettings{
			URL:               "https://api.github.com",
			TimeoutSeconds:    15,
			RequestsPerMinute: 30,
			Burst:             5,
			CacheSize:         128,
			CacheTTLSeconds:   60,
		},
		Suggest: SuggestSettings{
			DebounceMS: 700,
			MinLength:  3,
			Limit:      8,
		},
		UI: UISettings{
			DefaultPerPage: domain.DefaultPerPage,
			PerPageOptions: []int{10, 30, 50, 100},
		},
		History: HistorySettings{
			Enabled: true,
			Path:    filepath.Join(userDir(os.UserConfigDir), "history.db"),
		},
		Log: LogSettings{
			Level:      "info",
			File:       filepath.Join(cache, "reposcout.log"),
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

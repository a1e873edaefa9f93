package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"pdfsearch/internal/eventbus"
)

const (
	// DefaultEndpoint is the search API started by cmd/pdfsearch-api
	DefaultEndpoint = "http://localhost:8080"

	// DefaultMinQueryLength is the shortest query that triggers a request
	DefaultMinQueryLength = 2

	// DefaultRequestTimeout matches the upstream timeout of the search API
	DefaultRequestTimeout = 10 * time.Second
)

// Config represents the application configuration
type Config struct {
	Version        int           `toml:"version"`
	Endpoint       string        `toml:"endpoint"`
	MinQueryLength int           `toml:"min_query_length"`
	RequestTimeout Duration      `toml:"request_timeout"`
	LogFile        string        `toml:"log_file"`
	Cache          CacheSettings `toml:"cache"`
	UISettings     UISettings    `toml:"ui"`
}

// CacheSettings controls the client-side response cache
type CacheSettings struct {
	Enabled bool     `toml:"enabled"`
	Size    int      `toml:"size"`
	TTL     Duration `toml:"ttl"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	ShowURLs         bool `toml:"show_urls"`
	ShowSnippets     bool `toml:"show_snippets"`
	HighlightMatches bool `toml:"highlight_matches"`
}

// Duration is a time.Duration that reads and writes as a string like "10s"
type Duration time.Duration

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	*d = Duration(parsed)
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

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// DefaultPath returns the config file location under the user's config directory
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "pdfsearch", "config.toml")
}

// NewConfigService creates a config service reading from path (DefaultPath when empty)
func NewConfigService(path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{filePath: path}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(path string, bus eventbus.EventBus) ConfigService {
	cs := NewConfigService(path).(*configService)
	cs.bus = bus
	return cs
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from file, falling back to defaults when it does not exist
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, os.ErrNotExist) {
		cfg = DefaultConfig()
	} else if err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{
			Path:     cs.filePath,
			Endpoint: cfg.Endpoint,
		})
	}

	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}

	return nil
}

// LoadFromPath loads configuration from a specific path.
// Missing keys keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate rejects values the client cannot run with
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("invalid config: endpoint is empty")
	}
	if c.MinQueryLength < 1 {
		return fmt.Errorf("invalid config: min_query_length must be at least 1, got %d", c.MinQueryLength)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("invalid config: request_timeout must be positive")
	}
	if c.Cache.Enabled && c.Cache.Size < 1 {
		return fmt.Errorf("invalid config: cache.size must be at least 1 when the cache is enabled")
	}
	return nil
}

// Timeout returns the request timeout as a time.Duration
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.RequestTimeout)
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:        1,
		Endpoint:       DefaultEndpoint,
		MinQueryLength: DefaultMinQueryLength,
		RequestTimeout: Duration(DefaultRequestTimeout),
		Cache: CacheSettings{
			Enabled: true,
			Size:    128,
			TTL:     Duration(time.Minute),
		},
		UISettings: UISettings{
			ShowURLs:         true,
			ShowSnippets:     true,
			HighlightMatches: true,
		},
	}
}

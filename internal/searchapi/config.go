package searchapi

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is read from the environment, mirroring the variables the deployed lambda used
type Config struct {
	ESHost           string        `env:"ES_HOST" env-required:"true" env-description:"Elasticsearch base URL, e.g. http://localhost:9200"`
	Index            string        `env:"INDEX" env-default:"pdfs" env-description:"Index holding the extracted PDF text"`
	CloudFrontDomain string        `env:"CLOUDFRONT_DOMAIN" env-description:"Domain serving the PDFs; urls are omitted when empty"`
	Port             int           `env:"PORT" env-default:"8080" env-description:"HTTP listen port"`
	PageSize         int           `env:"PAGE_SIZE" env-default:"10" env-description:"Results per page"`
	RedisAddr        string        `env:"REDIS_ADDR" env-description:"Redis address for the response cache; disabled when empty"`
	CacheTTL         time.Duration `env:"CACHE_TTL" env-default:"5m" env-description:"Lifetime of cached responses"`
	UpstreamTimeout  time.Duration `env:"UPSTREAM_TIMEOUT" env-default:"10s" env-description:"Timeout for each Elasticsearch call"`
}

// LoadConfig reads Config from environment variables
func LoadConfig() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing configuration from environment variables: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks values cleanenv cannot
func (c Config) Validate() error {
	if c.PageSize < 1 || c.PageSize > MaxResultWindow {
		return fmt.Errorf("PAGE_SIZE must be between 1 and %d, got %d", MaxResultWindow, c.PageSize)
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.Port)
	}
	return nil
}

// Addr is the listen address for the HTTP server
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Usage prints the supported environment variables
func Usage() string {
	var cfg Config
	text, err := cleanenv.GetDescription(&cfg, nil)
	if err != nil {
		return err.Error()
	}
	return text
}

package platform

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix namespaces the environment variables read by LoadConfig (SFIO_LOG_LEVEL, ...).
const EnvPrefix = "sfio"

// Config is the process-level configuration taken from the environment.
type Config struct {
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	JSONUTF8 bool   `envconfig:"JSON_UTF8" default:"false"`
	RichEnv  bool   `envconfig:"RICH_ENV" default:"true"`
	Strict   bool   `envconfig:"STRICT" default:"false"`
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// Options translates the configuration into accessor options.
func (c *Config) Options() []Option {
	return []Option{
		WithRichEnv(c.RichEnv),
		WithStrict(c.Strict),
	}
}

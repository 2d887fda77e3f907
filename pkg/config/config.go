package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the exporter settings read from environment variables.
type Config struct {
	Endpoint       string        `env:"SUBGRAPH_URL" envDefault:"https://api.studio.thegraph.com/query/73855/openblocklabs/v0.0.7"`
	PageSize       int           `env:"PAGE_SIZE" envDefault:"1000"`
	OutputPath     string        `env:"OUTPUT_PATH" envDefault:"output/output.csv"`
	HTTPTimeout    time.Duration `env:"HTTP_TIMEOUT" envDefault:"60s"` // 0 keeps the transport default
	PushgatewayURL string        `env:"PUSHGATEWAY_URL"`
	Verbose        bool          `env:"VERBOSE" envDefault:"false"`
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// Validate checks the settings a run cannot start without.
func (c *Config) Validate() error {
	var errs []error
	if c.Endpoint == "" {
		errs = append(errs, errors.New("subgraph endpoint is required"))
	} else if u, err := url.Parse(c.Endpoint); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("invalid subgraph endpoint %q", c.Endpoint))
	}
	if c.PageSize <= 0 {
		errs = append(errs, fmt.Errorf("page size must be positive, got %d", c.PageSize))
	}
	if c.OutputPath == "" {
		errs = append(errs, errors.New("output path is required"))
	}
	if c.HTTPTimeout < 0 {
		errs = append(errs, fmt.Errorf("http timeout must not be negative, got %s", c.HTTPTimeout))
	}
	return errors.Join(errs...)
}

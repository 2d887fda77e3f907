package main

import (
	"github.com/urfave/cli/v2"

	"github.com/KyberNetwork/supplied-snapshot-exporter/pkg/config"
)

// Config is the environment configuration plus the per run options
type Config struct {
	config.Config

	BlockNumber   *uint64
	FromTimestamp uint64
	Strict        bool
}

// buildConfig builds a Config from CLI context flags
func buildConfig(c *cli.Context, base config.Config) (*Config, error) {
	cfg := &Config{Config: base}
	cfg.Endpoint = c.String("endpoint")
	cfg.PageSize = c.Int("page-size")
	cfg.OutputPath = c.String("output")
	cfg.HTTPTimeout = c.Duration("timeout")
	cfg.PushgatewayURL = c.String("pushgateway-url")
	cfg.Verbose = c.Bool("verbose")
	cfg.FromTimestamp = c.Uint64("from-timestamp")
	cfg.Strict = c.Bool("strict")
	if c.IsSet("block-number") {
		blockNumber := c.Uint64("block-number")
		cfg.BlockNumber = &blockNumber
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

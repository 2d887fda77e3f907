package main

import (
	"github.com/urfave/cli/v2"

	"github.com/KyberNetwork/supplied-snapshot-exporter/pkg/config"
)

// flags returns the command line flags, defaulting to the environment configuration
func flags(base config.Config) []cli.Flag {
	return []cli.Flag{
		&cli.Uint64Flag{
			Name:    "block-number",
			Aliases: []string{"block_number", "b"},
			Usage:   "The block number to retrieve snapshots for (optional)",
		},
		&cli.Uint64Flag{
			Name:  "from-timestamp",
			Usage: "Only retrieve snapshots with a timestamp greater or equal to this unix time",
		},
		&cli.StringFlag{
			Name:    "endpoint",
			Aliases: []string{"e"},
			Usage:   "The subgraph GraphQL endpoint",
			Value:   base.Endpoint,
		},
		&cli.IntFlag{
			Name:  "page-size",
			Usage: "Number of snapshots requested per page",
			Value: base.PageSize,
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Path of the csv file to write",
			Value:   base.OutputPath,
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "Timeout of each subgraph request, 0 to disable",
			Value: base.HTTPTimeout,
		},
		&cli.StringFlag{
			Name:  "pushgateway-url",
			Usage: "Prometheus Pushgateway to push run metrics to (optional)",
			Value: base.PushgatewayURL,
		},
		&cli.BoolFlag{
			Name:  "strict",
			Usage: "Exit with an error when a page fails and the export is partial",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "Enable verbose logging",
			Value:   base.Verbose,
		},
	}
}

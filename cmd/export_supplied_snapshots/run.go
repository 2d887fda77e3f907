package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/KyberNetwork/supplied-snapshot-exporter/pkg/config"
	"github.com/KyberNetwork/supplied-snapshot-exporter/pkg/export"
	"github.com/KyberNetwork/supplied-snapshot-exporter/pkg/metrics"
	"github.com/KyberNetwork/supplied-snapshot-exporter/pkg/subgraph"
	"github.com/KyberNetwork/supplied-snapshot-exporter/pkg/utils"
)

const metricsJob = "export_supplied_snapshots"

func run(c *cli.Context, base config.Config) error {
	cfg, err := buildConfig(c, base)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := utils.NewSugaredLogger(cfg.Verbose)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck // flushes buffer, if any

	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg)
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	client := subgraph.NewClient(cfg.Endpoint, &http.Client{Timeout: cfg.HTTPTimeout})
	fetcher := subgraph.NewFetcher(client,
		subgraph.WithPageSize(cfg.PageSize),
		subgraph.WithStartTimestamp(cfg.FromTimestamp),
		subgraph.WithLogger(logger),
		subgraph.WithMetrics(m),
	)

	exportErr := exportSnapshots(c.Context, cfg, fetcher, m, logger)

	if cfg.PushgatewayURL != "" {
		if err := metrics.Push(c.Context, cfg.PushgatewayURL, metricsJob, reg); err != nil {
			logger.Warnw("could not push metrics", "url", cfg.PushgatewayURL, "error", err)
		}
	}
	return exportErr
}

// exportSnapshots fetches every snapshot and writes them to the configured csv file.
// A truncated feed is still exported; it only fails the run in strict mode.
func exportSnapshots(
	ctx context.Context,
	cfg *Config,
	fetcher subgraph.SnapshotFetcher,
	m *metrics.Metrics,
	logger *zap.SugaredLogger,
) error {
	if cfg.BlockNumber != nil {
		logger = logger.With("blockNumber", *cfg.BlockNumber)
	}
	logger.Infow("retrieving snapshots for users", "endpoint", cfg.Endpoint)

	res, err := fetcher.Fetch(ctx, cfg.BlockNumber)
	if err != nil {
		return fmt.Errorf("could not fetch snapshots: %w", err)
	}
	if !res.Complete() {
		logger.Warnw("snapshot feed was truncated, exporting partial data",
			"error", res.Err,
			"fetched", len(res.Snapshots),
			"nextTimestamp", res.Watermark,
		)
	}

	records := export.ToRecords(res.Snapshots, time.Local)
	if n := export.CountNonAddressRows(records); n > 0 {
		logger.Warnw("rows with ids that are not addresses", "count", n)
	}

	n, err := export.WriteCSV(cfg.OutputPath, records)
	if err != nil {
		return err
	}
	m.AddExportedRows(n)
	logger.Infow("exported snapshots", "rows", n, "path", cfg.OutputPath)

	if cfg.Strict && !res.Complete() {
		return fmt.Errorf("export is partial after %d requests: %w", res.Requests, res.Err)
	}
	return nil
}

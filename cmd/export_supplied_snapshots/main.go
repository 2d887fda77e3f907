package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/KyberNetwork/supplied-snapshot-exporter/pkg/config"
)

func newApp(base config.Config) *cli.App {
	return &cli.App{
		Name:  "export_supplied_snapshots",
		Usage: "Retrieve net supplied snapshots for users from the subgraph and export them to csv",
		Flags: flags(base),
		Action: func(c *cli.Context) error {
			return run(c, base)
		},
	}
}

func main() {
	base, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp(base).RunContext(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		stop()
		os.Exit(1)
	}
}

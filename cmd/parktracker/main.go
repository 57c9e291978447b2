// Package main is the entry point for the parktracker CLI.
// Its sole responsibility is running the command tree; config, logger,
// store and services are wired by the root command once flags are parsed.
// No business logic belongs here.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkordes/park-tracker/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := cli.Execute(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

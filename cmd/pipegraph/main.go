// Package main provides the pipegraph command-line interface.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"
)

func main() {
	cmd := &cli.Command{
		Name:                  "pipegraph",
		Usage:                 "Inspect, validate and serve processing pipeline graphs",
		EnableShellCompletion: true,
		Commands: []*cli.Command{
			NewValidateCommand(),
			NewConvertCommand(),
			NewLayoutCommand(),
			NewNodesCommand(),
			NewServeCommand(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/spectrakit/pipegraph/pkg/cmd"
	"github.com/spectrakit/pipegraph/pkg/registry"
)

// Flags shared by every command that needs a node type registry.
func registryFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "catalog",
			Usage:   "Path to an offline node catalog JSON file",
			Sources: cli.EnvVars("PIPEGRAPH_CATALOG"),
		},
		&cli.StringFlag{
			Name:    "discovery-url",
			Usage:   "Base URL of the node discovery service",
			Sources: cli.EnvVars("PIPEGRAPH_DISCOVERY_URL"),
		},
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "Log level (debug, info, warn, error)",
			Value:   "info",
			Sources: cli.EnvVars("LOG_LEVEL"),
		},
	}
}

// newRegistry builds the node type registry from the command flags,
// falling back to the persisted settings for the node source.
func newRegistry(ctx context.Context, logger *slog.Logger, command *cli.Command) (*registry.Registry, error) {
	catalogPath := command.String("catalog")
	discoveryURL := command.String("discovery-url")

	if store, err := cmd.OpenSettings(); err == nil {
		catalogPath, discoveryURL = cmd.ResolveNodeSource(store, catalogPath, discoveryURL)
	}

	return cmd.NewRegistry(ctx, logger, catalogPath, discoveryURL)
}

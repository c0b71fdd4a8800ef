// Package cmd provides common initialization functions for
// command-line applications.
package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spectrakit/pipegraph/pkg/discovery"
	"github.com/spectrakit/pipegraph/pkg/registry"
)

// NewRegistry builds a node type registry from either an offline
// catalog file or a live discovery endpoint. The catalog file wins when
// both are given.
func NewRegistry(ctx context.Context, logger *slog.Logger, catalogPath, discoveryURL string) (*registry.Registry, error) {
	reg := registry.NewRegistry(logger)

	switch {
	case catalogPath != "":
		nodes, err := discovery.LoadCatalogFile(catalogPath)
		if err != nil {
			return nil, err
		}

		reg.RegisterAll(nodes)
	case discoveryURL != "":
		client := discovery.NewClient(discoveryURL, logger)

		nodes, err := client.FetchNodes(ctx)
		if err != nil {
			return nil, err
		}

		reg.RegisterAll(nodes)
	default:
		return nil, fmt.Errorf("%w: need a catalog file or a discovery URL", ErrNoNodeSource)
	}

	logger.Info("Node registry ready", "types", reg.Len())

	return reg, nil
}

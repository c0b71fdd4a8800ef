package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/spectrakit/pipegraph/pkg/cmd"
	"github.com/spectrakit/pipegraph/pkg/graph"
	"github.com/spectrakit/pipegraph/pkg/log"
	"github.com/spectrakit/pipegraph/pkg/serializer"
)

func NewValidateCommand() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Aliases:   []string{"v"},
		Usage:     "Load a pipeline file and report every problem found",
		ArgsUsage: "<pipeline file>",
		Flags:     registryFlags(),
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))
			logger := log.WithModule("validate")

			path := command.Args().First()
			if path == "" {
				return cli.Exit("pipeline file argument is required", 1)
			}

			reg, err := newRegistry(ctx, logger, command)
			if err != nil {
				return err
			}

			g := graph.New()
			reg.BindToGraph(g)

			s := serializer.New(reg, logger)

			meta, err := s.LoadFile(path, g)
			if err != nil {
				return fmt.Errorf("pipeline is structurally invalid: %w", err)
			}

			if store, err := cmd.OpenSettings(); err == nil {
				if err := store.RememberPipeline(path); err != nil {
					logger.Debug("Failed to update recent pipelines", "error", err)
				}
			}

			name := meta.Name
			if name == "" {
				name = "(unnamed)"
			}

			fmt.Printf("Pipeline: %s\n", name)
			fmt.Printf("Nodes: %d, connections: %d\n", g.NodeCount(), len(g.Connections()))

			warnings := s.Warnings()
			if len(warnings) == 0 {
				fmt.Println("No problems found.")

				return nil
			}

			for _, warning := range warnings {
				fmt.Println("Warning: " + warning)
			}

			return cli.Exit(fmt.Sprintf("%d warning(s)", len(warnings)), 2)
		},
	}
}

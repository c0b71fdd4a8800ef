package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/spectrakit/pipegraph/pkg/graph"
	"github.com/spectrakit/pipegraph/pkg/layout"
	"github.com/spectrakit/pipegraph/pkg/log"
	"github.com/spectrakit/pipegraph/pkg/serializer"
)

func NewLayoutCommand() *cli.Command {
	return &cli.Command{
		Name:      "layout",
		Usage:     "Compute the auto-layout columns for a pipeline file",
		ArgsUsage: "<pipeline file>",
		Flags:     registryFlags(),
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))
			logger := log.WithModule("layout")

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
			if _, err := s.LoadFile(path, g); err != nil {
				return err
			}

			for idx, column := range layout.Columns(g) {
				fmt.Printf("Column %d: %s\n", idx, strings.Join(column, ", "))
			}

			return nil
		},
	}
}

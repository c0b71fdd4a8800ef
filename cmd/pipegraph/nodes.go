package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/urfave/cli/v3"

	"github.com/spectrakit/pipegraph/pkg/log"
	"github.com/spectrakit/pipegraph/pkg/models"
	"github.com/spectrakit/pipegraph/pkg/registry"
)

func NewNodesCommand() *cli.Command {
	flags := append(registryFlags(),
		&cli.StringFlag{
			Name:  "source",
			Usage: "Only list node types from this source (builtin or plugin)",
		},
		&cli.StringFlag{
			Name:  "plugin",
			Usage: "Only list node types from this plugin",
		},
	)

	return &cli.Command{
		Name:    "nodes",
		Aliases: []string{"n"},
		Usage:   "List the available node types grouped by category",
		Flags:   flags,
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))
			logger := log.WithModule("nodes")

			reg, err := newRegistry(ctx, logger, command)
			if err != nil {
				return err
			}

			switch {
			case command.String("plugin") != "":
				printTypes(reg.ByPlugin(command.String("plugin")))
			case command.String("source") != "":
				printTypes(reg.BySource(models.NodeSource(command.String("source"))))
			default:
				printByCategory(reg)
			}

			return nil
		},
	}
}

func printTypes(types []*registry.NodeType) {
	for _, t := range types {
		fmt.Printf("  %s (%s)\n", t.DisplayName, t.ID)
	}
}

func printByCategory(reg *registry.Registry) {
	grouped := reg.ByCategory()

	labels := make([]string, 0, len(grouped))
	for label := range grouped {
		labels = append(labels, label)
	}

	sort.Strings(labels)

	for _, label := range labels {
		fmt.Println(label + ":")
		printTypes(grouped[label])
	}
}

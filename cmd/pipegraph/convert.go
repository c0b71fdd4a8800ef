package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/spectrakit/pipegraph/pkg/log"
	"github.com/spectrakit/pipegraph/pkg/models"
)

// NewConvertCommand converts pipeline documents between YAML and JSON
// without needing a node registry: conversion is purely structural.
func NewConvertCommand() *cli.Command {
	return &cli.Command{
		Name:      "convert",
		Usage:     "Convert a pipeline file between YAML and JSON",
		ArgsUsage: "<input file> <output file>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))

			input := command.Args().Get(0)
			output := command.Args().Get(1)

			if input == "" || output == "" {
				return cli.Exit("input and output file arguments are required", 1)
			}

			data, err := os.ReadFile(input)
			if err != nil {
				return fmt.Errorf("failed to read pipeline file: %w", err)
			}

			var doc *models.PipelineDocument

			if strings.EqualFold(filepath.Ext(input), ".json") {
				doc, err = models.ParseDocumentJSON(data)
			} else {
				doc, err = models.ParseDocumentYAML(data)
			}

			if err != nil {
				return err
			}

			var encoded []byte

			if strings.EqualFold(filepath.Ext(output), ".json") {
				encoded, err = doc.EncodeJSON()
			} else {
				encoded, err = doc.EncodeYAML()
			}

			if err != nil {
				return err
			}

			if err := os.WriteFile(output, encoded, 0o644); err != nil {
				return fmt.Errorf("failed to write pipeline file: %w", err)
			}

			fmt.Printf("Wrote %s\n", output)

			return nil
		},
	}
}

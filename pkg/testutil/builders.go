// Package testutil provides test data builders and utilities for testing.
package testutil

import (
	"github.com/spectrakit/pipegraph/pkg/models"
)

// CreateTestDescription creates a test NodeDescription with default values
// that can be overridden.
func CreateTestDescription(overrides ...func(*models.NodeDescription)) models.NodeDescription {
	desc := models.NodeDescription{
		ClassName: "BandSelector",
		FullPath:  "nodes.band.BandSelector",
		Source:    models.NodeSourceBuiltin,
		InputSpecs: []models.PortSpecEntry{
			{Name: "cube", DType: "float32", Shape: []any{-1, -1, -1}},
		},
		OutputSpecs: []models.PortSpecEntry{
			{Name: "cube", DType: "float32", Shape: []any{-1, -1, -1}},
		},
	}

	for _, override := range overrides {
		override(&desc)
	}

	return desc
}

// WithClass sets the class name and full path together, keeping them consistent.
func WithClass(className, fullPath string) func(*models.NodeDescription) {
	return func(d *models.NodeDescription) {
		d.ClassName = className
		d.FullPath = fullPath
	}
}

// WithPlugin marks the description as plugin-sourced.
func WithPlugin(pluginName string) func(*models.NodeDescription) {
	return func(d *models.NodeDescription) {
		d.Source = models.NodeSourcePlugin
		d.PluginName = pluginName
	}
}

// WithInputs replaces the input port specs.
func WithInputs(specs ...models.PortSpecEntry) func(*models.NodeDescription) {
	return func(d *models.NodeDescription) {
		d.InputSpecs = specs
	}
}

// WithOutputs replaces the output port specs.
func WithOutputs(specs ...models.PortSpecEntry) func(*models.NodeDescription) {
	return func(d *models.NodeDescription) {
		d.OutputSpecs = specs
	}
}

// WithHParams sets the hyperparameter defaults.
func WithHParams(params map[string]any) func(*models.NodeDescription) {
	return func(d *models.NodeDescription) {
		d.HParams = params
	}
}

// WithParamsSchema attaches a JSON schema for parameter validation.
func WithParamsSchema(schema map[string]any) func(*models.NodeDescription) {
	return func(d *models.NodeDescription) {
		d.ParamsSchema = schema
	}
}

// Package web provides the HTTP serving surface for the pipeline graph
// engine: node catalog queries and pipeline validation/layout.
package web

import (
	"github.com/spectrakit/pipegraph/pkg/models"
	"github.com/spectrakit/pipegraph/pkg/registry"
)

// NodeTypeResponse is the JSON view of one registered node type.
type NodeTypeResponse struct {
	TypeID        string                     `json:"type_id"`
	DisplayName   string                     `json:"display_name"`
	Category      string                     `json:"category"`
	Source        models.NodeSource          `json:"source"`
	PluginName    string                     `json:"plugin_name,omitempty"`
	Inputs        map[string]models.PortSpec `json:"inputs"`
	Outputs       map[string]models.PortSpec `json:"outputs"`
	DefaultParams map[string]any             `json:"default_params,omitempty"`
}

// NewNodeTypeResponse converts a registry descriptor.
func NewNodeTypeResponse(t *registry.NodeType) NodeTypeResponse {
	inputs := make(map[string]models.PortSpec, len(t.Inputs))
	for _, port := range t.Inputs {
		inputs[port.Name] = port.Spec
	}

	outputs := make(map[string]models.PortSpec, len(t.Outputs))
	for _, port := range t.Outputs {
		outputs[port.Name] = port.Spec
	}

	return NodeTypeResponse{
		TypeID:        t.ID,
		DisplayName:   t.DisplayName,
		Category:      t.Category,
		Source:        t.Source,
		PluginName:    t.PluginName,
		Inputs:        inputs,
		Outputs:       outputs,
		DefaultParams: t.DefaultParams,
	}
}

// ValidatePipelineResponse reports the outcome of loading a document.
// Valid means the load produced no warnings; warnings alone never turn
// a response into an error status.
type ValidatePipelineResponse struct {
	Valid       bool            `json:"valid"`
	Nodes       int             `json:"nodes"`
	Connections int             `json:"connections"`
	Warnings    []string        `json:"warnings"`
	Metadata    models.Metadata `json:"metadata"`
}

// NodePosition is one node's computed layout position.
type NodePosition struct {
	Name   string  `json:"name"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Column int     `json:"column"`
}

// LayoutPipelineResponse carries the auto-layout result.
type LayoutPipelineResponse struct {
	Positions []NodePosition `json:"positions"`
	Warnings  []string       `json:"warnings"`
}

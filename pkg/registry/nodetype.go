package registry

import (
	"github.com/spectrakit/pipegraph/pkg/graph"
	"github.com/spectrakit/pipegraph/pkg/models"
)

// NamedSpec pairs a port name with its spec, preserving the order the
// discovery source declared the ports in.
type NamedSpec struct {
	Name string
	Spec models.PortSpec
}

// NodeType is the registry's record for one distinct node type. It is
// immutable after creation and doubles as the instantiable type the
// graph spawns instances from: one generic descriptor per type id, no
// per-type code generation.
type NodeType struct {
	ID            string
	DisplayName   string
	Category      string
	Source        models.NodeSource
	PluginName    string
	Inputs        []NamedSpec
	Outputs       []NamedSpec
	DefaultParams map[string]any
	ParamsSchema  map[string]any
	Placeholder   bool
}

// TypeID implements graph.NodeType. Placeholder types register under a
// distinct id so they never shadow a real type.
func (t *NodeType) TypeID() string {
	if t.Placeholder {
		return "placeholder." + t.ID
	}

	return t.ID
}

// Spawn implements graph.NodeType, building a fresh node instance bound
// to this descriptor, params seeded from the defaults.
func (t *NodeType) Spawn() *graph.Node {
	node := graph.NewNode(t.DisplayName, t.ID)
	node.DisplayName = t.DisplayName
	node.Category = t.Category
	node.Source = t.Source
	node.PluginName = t.PluginName
	node.Placeholder = t.Placeholder

	for key, value := range t.DefaultParams {
		node.Params[key] = value
	}

	for _, port := range t.Inputs {
		node.AddInput(port.Name, port.Spec)
	}

	for _, port := range t.Outputs {
		node.AddOutput(port.Name, port.Spec)
	}

	return node
}

// InputSpec returns the spec for a named input port.
func (t *NodeType) InputSpec(name string) (models.PortSpec, bool) {
	for _, port := range t.Inputs {
		if port.Name == name {
			return port.Spec, true
		}
	}

	return models.PortSpec{}, false
}

// OutputSpec returns the spec for a named output port.
func (t *NodeType) OutputSpec(name string) (models.PortSpec, bool) {
	for _, port := range t.Outputs {
		if port.Name == name {
			return port.Spec, true
		}
	}

	return models.PortSpec{}, false
}

// Package graph holds the mutable in-memory pipeline graph: typed node
// instances, directed edges between ports, and the node-type
// registration surface the registry binds into.
package graph

import (
	"sort"

	"github.com/spectrakit/pipegraph/pkg/models"
)

// NodeType is an instantiable node type. The registry synthesizes one
// per discovered node description and registers it with a Graph so the
// graph can create instances.
type NodeType interface {
	TypeID() string
	Spawn() *Node
}

// Node is a placed, named node instance in a graph.
type Node struct {
	name        string
	TypeID      string
	DisplayName string
	Category    string
	Source      models.NodeSource
	PluginName  string
	Placeholder bool
	Params      map[string]any

	stages      map[string]struct{}
	inputOrder  []string
	outputOrder []string
	inputs      map[string]models.PortSpec
	outputs     map[string]models.PortSpec

	x, y float64
}

// NewNode creates an unattached node instance.
func NewNode(name, typeID string) *Node {
	return &Node{
		name:    name,
		TypeID:  typeID,
		Params:  map[string]any{},
		stages:  map[string]struct{}{models.DefaultExecutionStage: {}},
		inputs:  map[string]models.PortSpec{},
		outputs: map[string]models.PortSpec{},
	}
}

// Name returns the instance name, unique within a graph by convention.
func (n *Node) Name() string {
	return n.name
}

// SetName renames the instance.
func (n *Node) SetName(name string) {
	n.name = name
}

// AddInput declares an input port bound to spec. Re-declaring a port
// name replaces its spec without changing port order.
func (n *Node) AddInput(name string, spec models.PortSpec) {
	if _, exists := n.inputs[name]; !exists {
		n.inputOrder = append(n.inputOrder, name)
	}

	n.inputs[name] = spec
}

// AddOutput declares an output port bound to spec.
func (n *Node) AddOutput(name string, spec models.PortSpec) {
	if _, exists := n.outputs[name]; !exists {
		n.outputOrder = append(n.outputOrder, name)
	}

	n.outputs[name] = spec
}

// InputSpec returns the spec for a named input port.
func (n *Node) InputSpec(name string) (models.PortSpec, bool) {
	spec, ok := n.inputs[name]

	return spec, ok
}

// OutputSpec returns the spec for a named output port.
func (n *Node) OutputSpec(name string) (models.PortSpec, bool) {
	spec, ok := n.outputs[name]

	return spec, ok
}

// InputNames returns input port names in declaration order.
func (n *Node) InputNames() []string {
	return append([]string(nil), n.inputOrder...)
}

// OutputNames returns output port names in declaration order.
func (n *Node) OutputNames() []string {
	return append([]string(nil), n.outputOrder...)
}

// SetStages replaces the execution stage set. An empty list resets to
// the default stage.
func (n *Node) SetStages(stages []string) {
	n.stages = make(map[string]struct{}, len(stages))
	for _, stage := range stages {
		n.stages[stage] = struct{}{}
	}

	if len(n.stages) == 0 {
		n.stages[models.DefaultExecutionStage] = struct{}{}
	}
}

// Stages returns the execution stages, sorted.
func (n *Node) Stages() []string {
	stages := make([]string, 0, len(n.stages))
	for stage := range n.stages {
		stages = append(stages, stage)
	}

	sort.Strings(stages)

	return stages
}

// DefaultStagesOnly reports whether the stage set is exactly the
// default one, in which case documents omit it.
func (n *Node) DefaultStagesOnly() bool {
	if len(n.stages) != 1 {
		return false
	}

	_, ok := n.stages[models.DefaultExecutionStage]

	return ok
}

// SetPos moves the node to a visual position.
func (n *Node) SetPos(x, y float64) {
	n.x, n.y = x, y
}

// Pos returns the node's visual position.
func (n *Node) Pos() (float64, float64) {
	return n.x, n.y
}

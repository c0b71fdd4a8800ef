package graph

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

// Edge is a directed connection from an output port to an input port.
// Both port specs satisfied the compatibility check when the edge was
// created; edges are not re-validated afterwards.
type Edge struct {
	ID         string
	Source     *Node
	SourcePort string
	Target     *Node
	TargetPort string
}

// Graph owns node instances and edges for one editing session. It is
// not safe for concurrent use; callers embedding it in a concurrent
// host must serialize access externally.
type Graph struct {
	types map[string]NodeType
	nodes []*Node
	edges []*Edge
}

// New creates an empty graph with no registered node types.
func New() *Graph {
	return &Graph{types: make(map[string]NodeType)}
}

// RegisterType makes a node type instantiable on this graph. A
// duplicate type id is rejected.
func (g *Graph) RegisterType(t NodeType) error {
	id := t.TypeID()
	if _, exists := g.types[id]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateNodeType, id)
	}

	g.types[id] = t

	return nil
}

// HasType reports whether a type id is registered.
func (g *Graph) HasType(typeID string) bool {
	_, ok := g.types[typeID]

	return ok
}

// CreateNode instantiates a registered node type and adds it to the
// graph under a unique default name.
func (g *Graph) CreateNode(typeID string) (*Node, error) {
	t, ok := g.types[typeID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNodeType, typeID)
	}

	node := t.Spawn()
	node.SetName(g.uniqueName(node.Name()))
	g.nodes = append(g.nodes, node)

	return node, nil
}

// AddNode attaches an externally built node instance.
func (g *Graph) AddNode(node *Node) {
	node.SetName(g.uniqueName(node.Name()))
	g.nodes = append(g.nodes, node)
}

// RenameNode renames an attached node, deduplicating against every
// other instance name so the graph-wide uniqueness invariant holds.
// Returns the name actually assigned.
func (g *Graph) RenameNode(node *Node, name string) string {
	if node.Name() == name {
		return name
	}

	node.SetName(g.uniqueNameFor(node, name))

	return node.Name()
}

// NodeByName finds a node by instance name.
func (g *Graph) NodeByName(name string) *Node {
	for _, node := range g.nodes {
		if node.Name() == name {
			return node
		}
	}

	return nil
}

// AllNodes returns nodes in insertion order.
func (g *Graph) AllNodes() []*Node {
	return append([]*Node(nil), g.nodes...)
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// Connect creates an edge after checking direction and port
// compatibility. The source port must be an output on source, the
// target port an input on target.
func (g *Graph) Connect(source *Node, sourcePort string, target *Node, targetPort string) (*Edge, error) {
	ok, reason := ValidateConnection(source, sourcePort, target, targetPort)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrIncompatibleConnection, reason)
	}

	edge := &Edge{
		ID:         uuid.New().String(),
		Source:     source,
		SourcePort: sourcePort,
		Target:     target,
		TargetPort: targetPort,
	}
	g.edges = append(g.edges, edge)

	return edge, nil
}

// Connections returns edges in creation order.
func (g *Graph) Connections() []*Edge {
	return append([]*Edge(nil), g.edges...)
}

// ConnectionsFrom returns edges leaving a node, in creation order.
func (g *Graph) ConnectionsFrom(node *Node) []*Edge {
	var out []*Edge

	for _, edge := range g.edges {
		if edge.Source == node {
			out = append(out, edge)
		}
	}

	return out
}

// ConnectionsTo returns edges entering a node, in creation order.
func (g *Graph) ConnectionsTo(node *Node) []*Edge {
	var out []*Edge

	for _, edge := range g.edges {
		if edge.Target == node {
			out = append(out, edge)
		}
	}

	return out
}

// Disconnect removes an edge by id.
func (g *Graph) Disconnect(edgeID string) bool {
	for i, edge := range g.edges {
		if edge.ID == edgeID {
			g.edges = append(g.edges[:i], g.edges[i+1:]...)

			return true
		}
	}

	return false
}

// RemoveNode deletes a node and every edge touching it.
func (g *Graph) RemoveNode(name string) bool {
	node := g.NodeByName(name)
	if node == nil {
		return false
	}

	kept := g.edges[:0]

	for _, edge := range g.edges {
		if edge.Source != node && edge.Target != node {
			kept = append(kept, edge)
		}
	}

	g.edges = kept

	for i, n := range g.nodes {
		if n == node {
			g.nodes = append(g.nodes[:i], g.nodes[i+1:]...)

			break
		}
	}

	return true
}

// ClearSession drops all nodes and edges but keeps registered types,
// so a new document can be loaded into the same graph.
func (g *Graph) ClearSession() {
	g.nodes = nil
	g.edges = nil
}

// Clear drops everything including registered types.
func (g *Graph) Clear() {
	g.ClearSession()
	g.types = make(map[string]NodeType)
}

func (g *Graph) uniqueName(base string) string {
	return g.uniqueNameFor(nil, base)
}

// uniqueNameFor finds a free name, ignoring self so a node can be
// renamed without colliding with its own current name.
func (g *Graph) uniqueNameFor(self *Node, base string) string {
	if base == "" {
		base = "node"
	}

	taken := func(candidate string) bool {
		other := g.NodeByName(candidate)

		return other != nil && other != self
	}

	if !taken(base) {
		return base
	}

	for i := 2; ; i++ {
		candidate := base + " " + strconv.Itoa(i)
		if !taken(candidate) {
			return candidate
		}
	}
}

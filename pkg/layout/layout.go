// Package layout assigns visual positions to graph nodes from their
// connection-induced dependency order: a left-to-right column per
// topological layer, cycle-tolerant so every node always gets placed.
package layout

import "github.com/spectrakit/pipegraph/pkg/graph"

// Options controls column and row spacing.
type Options struct {
	XSpacing float64
	YSpacing float64
}

// DefaultOptions returns the standard editor spacing.
func DefaultOptions() Options {
	return Options{XSpacing: 300, YSpacing: 150}
}

// Columns computes the layout layering: each inner slice is one column
// of instance names, left to right. The computation is a Kahn-style
// topological sort over node dependencies that tolerates cycles: when
// no unplaced node is ready, all remaining nodes become one column,
// trading layering correctness for total placement.
//
// Ready-set order follows graph insertion order, so the result is
// deterministic for a given graph.
func Columns(g *graph.Graph) [][]string {
	nodes := g.AllNodes()
	if len(nodes) == 0 {
		return nil
	}

	dependencies := make(map[string]map[string]struct{}, len(nodes))
	for _, node := range nodes {
		dependencies[node.Name()] = make(map[string]struct{})
	}

	for _, edge := range g.Connections() {
		dependencies[edge.Target.Name()][edge.Source.Name()] = struct{}{}
	}

	var columns [][]string

	placed := make(map[string]struct{}, len(nodes))

	for len(placed) < len(nodes) {
		var ready []string

		for _, node := range nodes {
			name := node.Name()
			if _, done := placed[name]; done {
				continue
			}

			if subset(dependencies[name], placed) {
				ready = append(ready, name)
			}
		}

		if len(ready) == 0 {
			// Cycle among the remaining nodes: place them all.
			for _, node := range nodes {
				if _, done := placed[node.Name()]; !done {
					ready = append(ready, node.Name())
				}
			}
		}

		columns = append(columns, ready)

		for _, name := range ready {
			placed[name] = struct{}{}
		}
	}

	return columns
}

// Apply positions every node on its computed column, stacking nodes
// top to bottom within a column. An empty graph is a no-op.
func Apply(g *graph.Graph, opts Options) {
	for colIdx, column := range Columns(g) {
		for rowIdx, name := range column {
			node := g.NodeByName(name)
			if node == nil {
				continue
			}

			node.SetPos(float64(colIdx)*opts.XSpacing, float64(rowIdx)*opts.YSpacing)
		}
	}
}

func subset(set, of map[string]struct{}) bool {
	for key := range set {
		if _, ok := of[key]; !ok {
			return false
		}
	}

	return true
}

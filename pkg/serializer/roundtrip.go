package serializer

import (
	"fmt"

	"github.com/spectrakit/pipegraph/pkg/graph"
	"github.com/spectrakit/pipegraph/pkg/models"
)

type connectionPair struct {
	source string
	target string
}

// ValidateRoundTrip re-saves a graph that was loaded from original and
// diffs the two documents: node sets by instance name and class,
// connection sets as unordered pairs. The round trip is valid iff the
// difference list is empty.
func (s *Serializer) ValidateRoundTrip(original *models.PipelineDocument, g *graph.Graph) (bool, []string) {
	var differences []string

	saved := s.ToDocument(g, original.Metadata)

	originalNodes := make(map[string]models.NodeEntry, len(original.Nodes))
	for _, entry := range original.Nodes {
		originalNodes[entry.Name] = entry
	}

	savedNodes := make(map[string]models.NodeEntry, len(saved.Nodes))
	for _, entry := range saved.Nodes {
		savedNodes[entry.Name] = entry
	}

	for _, entry := range original.Nodes {
		savedEntry, ok := savedNodes[entry.Name]
		if !ok {
			differences = append(differences, "Missing node: "+entry.Name)

			continue
		}

		if entry.ClassName != savedEntry.ClassName {
			differences = append(differences, fmt.Sprintf(
				"Node class mismatch for %s: %s vs %s",
				entry.Name, entry.ClassName, savedEntry.ClassName))
		}
	}

	for _, entry := range saved.Nodes {
		if _, ok := originalNodes[entry.Name]; !ok {
			differences = append(differences, "Extra node: "+entry.Name)
		}
	}

	originalConns := connectionSet(original.Connections)
	savedConns := connectionSet(saved.Connections)

	for _, conn := range original.Connections {
		pair := connectionPair{conn.Source, conn.Target}
		if _, ok := savedConns[pair]; !ok {
			differences = append(differences, fmt.Sprintf(
				"Missing connection: (%s, %s)", conn.Source, conn.Target))
		}
	}

	for _, conn := range saved.Connections {
		pair := connectionPair{conn.Source, conn.Target}
		if _, ok := originalConns[pair]; !ok {
			differences = append(differences, fmt.Sprintf(
				"Extra connection: (%s, %s)", conn.Source, conn.Target))
		}
	}

	return len(differences) == 0, differences
}

func connectionSet(conns []models.ConnectionEntry) map[connectionPair]struct{} {
	set := make(map[connectionPair]struct{}, len(conns))
	for _, conn := range conns {
		set[connectionPair{conn.Source, conn.Target}] = struct{}{}
	}

	return set
}

package serializer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spectrakit/pipegraph/pkg/graph"
	"github.com/spectrakit/pipegraph/pkg/models"
)

// ToDocument walks the graph and assembles the declarative document.
//
// Node entries follow graph iteration order; connection entries are
// reconstructed from each node's output fan-out. When the assembled
// document fails validation the save degrades to a minimally-structured
// document from the same raw data instead of losing the save.
func (s *Serializer) ToDocument(g *graph.Graph, meta models.Metadata) *models.PipelineDocument {
	nodes := make([]models.NodeEntry, 0, g.NodeCount())

	for _, node := range g.AllNodes() {
		entry := models.NodeEntry{
			ClassName: node.TypeID,
			Name:      node.Name(),
		}

		if len(node.Params) > 0 {
			entry.Params = node.Params
		}

		if !node.DefaultStagesOnly() {
			entry.ExecutionStages = node.Stages()
		}

		nodes = append(nodes, entry)
	}

	var connections []models.ConnectionEntry

	for _, node := range g.AllNodes() {
		for _, port := range node.OutputNames() {
			for _, edge := range g.ConnectionsFrom(node) {
				if edge.SourcePort != port {
					continue
				}

				connections = append(connections, models.ConnectionEntry{
					Source: models.MakePortRef(node.Name(), models.DirectionOutputs, port),
					Target: models.MakePortRef(edge.Target.Name(), models.DirectionInputs, edge.TargetPort),
				})
			}
		}
	}

	doc := &models.PipelineDocument{
		Metadata:    meta,
		Nodes:       nodes,
		Connections: connections,
	}

	if err := doc.ValidateComplete(); err != nil {
		// Degrade to a best-effort unvalidated document rather than
		// failing the save outright.
		s.logger.Error("Failed to assemble validated pipeline document", "error", err)

		if doc.Metadata.Name == "" {
			doc.Metadata.Name = "Untitled Pipeline"
		}
	}

	return doc
}

// ToYAML renders the graph as a YAML pipeline document.
func (s *Serializer) ToYAML(g *graph.Graph, meta models.Metadata) ([]byte, error) {
	return s.ToDocument(g, meta).EncodeYAML()
}

// ToJSON renders the graph as a JSON pipeline document.
func (s *Serializer) ToJSON(g *graph.Graph, meta models.Metadata) ([]byte, error) {
	return s.ToDocument(g, meta).EncodeJSON()
}

// SaveFile writes the graph to a pipeline file, choosing the codec from
// the file extension. Parent directories are created as needed.
func (s *Serializer) SaveFile(g *graph.Graph, path string, meta models.Metadata) error {
	var (
		data []byte
		err  error
	)

	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err = s.ToJSON(g, meta)
	} else {
		data, err = s.ToYAML(g, meta)
	}

	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create pipeline directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write pipeline file: %w", err)
	}

	s.logger.Info("Saved pipeline", "path", path, "nodes", g.NodeCount())

	return nil
}

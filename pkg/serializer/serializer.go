// Package serializer converts between the declarative pipeline
// document and live graph state, in both directions, accumulating
// warnings for everything that can be recovered from instead of
// failing the whole conversion.
package serializer

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spectrakit/pipegraph/pkg/graph"
	"github.com/spectrakit/pipegraph/pkg/layout"
	"github.com/spectrakit/pipegraph/pkg/models"
	"github.com/spectrakit/pipegraph/pkg/registry"
)

// Default grid cell used before auto-layout kicks in.
const (
	gridCellWidth  = 250.0
	gridCellHeight = 150.0
)

// Auto-layout replaces the grid defaults once a document holds more
// than this many nodes.
const autoLayoutThreshold = 2

// Serializer drives one graph at a time. Diagnostics are reset at the
// start of each load and mutated only by the calling goroutine.
type Serializer struct {
	registry *registry.Registry
	logger   *slog.Logger

	warnings          []string
	missingTypes      map[string]struct{}
	failedNodes       []string
	failedConnections int
	paramWarnings     []string
}

// New creates a serializer backed by a node type registry.
func New(reg *registry.Registry, logger *slog.Logger) *Serializer {
	return &Serializer{
		registry:     reg,
		logger:       logger,
		missingTypes: make(map[string]struct{}),
	}
}

// Warnings returns the diagnostics accumulated by the last load.
func (s *Serializer) Warnings() []string {
	return append([]string(nil), s.warnings...)
}

// LoadFile loads a pipeline file into a graph, choosing the codec from
// the file extension (.json is JSON, everything else YAML).
func (s *Serializer) LoadFile(path string, g *graph.Graph) (models.Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Metadata{}, fmt.Errorf("failed to read pipeline file: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return s.LoadJSON(data, g)
	}

	return s.LoadYAML(data, g)
}

// LoadYAML loads a YAML pipeline document into a graph.
func (s *Serializer) LoadYAML(data []byte, g *graph.Graph) (models.Metadata, error) {
	doc, err := models.ParseDocumentYAML(data)
	if err != nil {
		return models.Metadata{}, err
	}

	return s.LoadDocument(doc, g)
}

// LoadJSON loads a JSON pipeline document into a graph.
func (s *Serializer) LoadJSON(data []byte, g *graph.Graph) (models.Metadata, error) {
	doc, err := models.ParseDocumentJSON(data)
	if err != nil {
		return models.Metadata{}, err
	}

	return s.LoadDocument(doc, g)
}

// LoadDocument populates a graph from a structurally valid document.
//
// A structurally invalid document is the only error path, and it leaves
// the graph untouched. Unknown node types load as placeholders,
// unresolved connections are skipped; both are reported through
// Warnings alongside the successful result, so a partial load is always
// distinguishable from a failed one.
func (s *Serializer) LoadDocument(doc *models.PipelineDocument, g *graph.Graph) (models.Metadata, error) {
	s.resetDiagnostics()

	if err := doc.Validate(); err != nil {
		return models.Metadata{}, err
	}

	g.ClearSession()

	nodeMap := make(map[string]*graph.Node, len(doc.Nodes))

	for i, entry := range doc.Nodes {
		node := s.createNode(entry, g)
		if node == nil {
			continue
		}

		nodeMap[node.Name()] = node
		node.SetPos(float64(i%4)*gridCellWidth, float64(i/4)*gridCellHeight)
	}

	for _, conn := range doc.Connections {
		if !s.createConnection(conn, nodeMap, g) {
			s.failedConnections++
		}
	}

	if len(nodeMap) > autoLayoutThreshold {
		layout.Apply(g, layout.DefaultOptions())
	}

	s.composeWarnings()

	s.logger.Info("Loaded pipeline",
		"nodes", len(nodeMap),
		"connections", len(doc.Connections),
		"warnings", len(s.warnings))

	return doc.Metadata, nil
}

func (s *Serializer) resetDiagnostics() {
	s.warnings = nil
	s.missingTypes = make(map[string]struct{})
	s.failedNodes = nil
	s.failedConnections = 0
	s.paramWarnings = nil
}

func (s *Serializer) createNode(entry models.NodeEntry, g *graph.Graph) *graph.Node {
	nodeType, known := s.registry.Get(entry.ClassName)
	if !known {
		s.logger.Warn("Unknown node class", "class_name", entry.ClassName)

		if entry.ClassName != "" {
			s.missingTypes[entry.ClassName] = struct{}{}
		}

		nodeType = s.registry.PlaceholderType(entry.ClassName)
	}

	if !g.HasType(nodeType.TypeID()) {
		if err := g.RegisterType(nodeType); err != nil {
			// Graphs may reject re-registration across loads.
			s.logger.Debug("Node type registration skipped",
				"type_id", nodeType.TypeID(), "error", err)
		}
	}

	node, err := g.CreateNode(nodeType.TypeID())
	if err != nil {
		s.logger.Error("Failed to create node",
			"class_name", entry.ClassName, "error", err)

		label := entry.Name
		if label == "" {
			label = entry.ClassName
		}

		if label == "" {
			label = "Unknown"
		}

		s.failedNodes = append(s.failedNodes, label)

		return nil
	}

	// The graph deduplicates, so a duplicate document name stays
	// addressable instead of shadowing the earlier node.
	g.RenameNode(node, entry.Name)

	// Placeholders accept no further configuration.
	if nodeType.Placeholder {
		return node
	}

	for key, value := range entry.Params {
		node.Params[key] = value
	}

	if len(entry.ExecutionStages) > 0 {
		node.SetStages(entry.ExecutionStages)
	}

	if findings, err := s.registry.ValidateParams(entry.ClassName, node.Params); err == nil {
		for _, finding := range findings {
			s.paramWarnings = append(s.paramWarnings,
				fmt.Sprintf("Params for %s do not match schema: %s", node.Name(), finding))
		}
	}

	return node
}

func (s *Serializer) createConnection(conn models.ConnectionEntry, nodeMap map[string]*graph.Node, g *graph.Graph) bool {
	sourceRef, ok := models.ParsePortRef(conn.Source)
	if !ok {
		s.logger.Warn("Failed to parse connection source", "source", conn.Source)

		return false
	}

	targetRef, ok := models.ParsePortRef(conn.Target)
	if !ok {
		s.logger.Warn("Failed to parse connection target", "target", conn.Target)

		return false
	}

	if sourceRef.Direction != models.DirectionOutputs || targetRef.Direction != models.DirectionInputs {
		s.logger.Warn("Invalid connection direction",
			"source", conn.Source, "target", conn.Target)

		return false
	}

	sourceNode := nodeMap[sourceRef.Node]
	if sourceNode == nil {
		s.logger.Warn("Source node not found", "node", sourceRef.Node)

		return false
	}

	targetNode := nodeMap[targetRef.Node]
	if targetNode == nil {
		s.logger.Warn("Target node not found", "node", targetRef.Node)

		return false
	}

	if _, err := g.Connect(sourceNode, sourceRef.Port, targetNode, targetRef.Port); err != nil {
		s.logger.Warn("Failed to create connection",
			"source", conn.Source, "target", conn.Target, "error", err)

		return false
	}

	return true
}

func (s *Serializer) composeWarnings() {
	if len(s.missingTypes) > 0 {
		missing := make([]string, 0, len(s.missingTypes))
		for typeID := range s.missingTypes {
			missing = append(missing, typeID)
		}

		sort.Strings(missing)

		s.warnings = append(s.warnings,
			"Missing node classes (placeholders created): "+strings.Join(missing, ", "))
	}

	if len(s.failedNodes) > 0 {
		s.warnings = append(s.warnings,
			"Failed to create nodes: "+strings.Join(s.failedNodes, ", "))
	}

	if s.failedConnections > 0 {
		s.warnings = append(s.warnings,
			fmt.Sprintf("%d connection(s) could not be created.", s.failedConnections))
	}

	s.warnings = append(s.warnings, s.paramWarnings...)
}

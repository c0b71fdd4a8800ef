package web

import (
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/spectrakit/pipegraph/pkg/graph"
	"github.com/spectrakit/pipegraph/pkg/layout"
	"github.com/spectrakit/pipegraph/pkg/models"
	"github.com/spectrakit/pipegraph/pkg/otelhelper"
	"github.com/spectrakit/pipegraph/pkg/registry"
	"github.com/spectrakit/pipegraph/pkg/serializer"
)

// APIHandlers serves the node catalog and pipeline validation surface.
// Each request loads into its own graph; the registry is the only
// shared state and is read-only here.
type APIHandlers struct {
	logger   *slog.Logger
	registry *registry.Registry
	tracer   trace.Tracer
}

// NewAPIHandlers wires the handler set.
func NewAPIHandlers(logger *slog.Logger, reg *registry.Registry, tracer trace.Tracer) *APIHandlers {
	return &APIHandlers{
		logger:   logger,
		registry: reg,
		tracer:   tracer,
	}
}

// ListNodeTypes returns registered node types, optionally filtered by
// source or plugin.
func (h *APIHandlers) ListNodeTypes(c fiber.Ctx) error {
	var types []*registry.NodeType

	switch {
	case c.Query("plugin") != "":
		types = h.registry.ByPlugin(c.Query("plugin"))
	case c.Query("source") != "":
		source := models.NodeSource(c.Query("source"))
		if source != models.NodeSourceBuiltin && source != models.NodeSourcePlugin {
			return badRequest(c, "source must be 'builtin' or 'plugin'")
		}

		types = h.registry.BySource(source)
	default:
		types = h.registry.All()
	}

	responses := make([]NodeTypeResponse, 0, len(types))
	for _, t := range types {
		responses = append(responses, NewNodeTypeResponse(t))
	}

	return c.JSON(fiber.Map{
		"nodes": responses,
		"count": len(responses),
	})
}

// ListNodeCategories returns node types grouped by category label.
func (h *APIHandlers) ListNodeCategories(c fiber.Ctx) error {
	grouped := make(map[string][]NodeTypeResponse)

	for label, types := range h.registry.ByCategory() {
		responses := make([]NodeTypeResponse, 0, len(types))
		for _, t := range types {
			responses = append(responses, NewNodeTypeResponse(t))
		}

		grouped[label] = responses
	}

	return c.JSON(fiber.Map{"categories": grouped})
}

// GetNodeType returns a single node type by its full path.
func (h *APIHandlers) GetNodeType(c fiber.Ctx) error {
	typeID := c.Params("typeId")

	t, ok := h.registry.Get(typeID)
	if !ok {
		return notFound(c, "node type '"+typeID+"' is not registered")
	}

	return c.JSON(NewNodeTypeResponse(t))
}

// ValidatePipeline loads the request body into a fresh graph and
// reports node/connection counts plus every load warning. Only a
// structurally invalid document produces an error status.
func (h *APIHandlers) ValidatePipeline(c fiber.Ctx) error {
	_, span := otelhelper.StartSpan(c.Context(), h.tracer, "pipeline.validate")
	defer span.End()

	g, meta, s, err := h.loadBody(c)
	if err != nil {
		otelhelper.SetError(span, err)

		return badRequest(c, err.Error())
	}

	warnings := s.Warnings()
	otelhelper.SetWarnings(span, warnings)
	span.SetAttributes(
		attribute.Int(otelhelper.NodeCountKey, g.NodeCount()),
		attribute.Int(otelhelper.ConnectionCountKey, len(g.Connections())),
	)

	return c.JSON(ValidatePipelineResponse{
		Valid:       len(warnings) == 0,
		Nodes:       g.NodeCount(),
		Connections: len(g.Connections()),
		Warnings:    append([]string{}, warnings...),
		Metadata:    meta,
	})
}

// LayoutPipeline loads the request body and returns the auto-layout
// position of every node.
func (h *APIHandlers) LayoutPipeline(c fiber.Ctx) error {
	_, span := otelhelper.StartSpan(c.Context(), h.tracer, "pipeline.layout")
	defer span.End()

	g, _, s, err := h.loadBody(c)
	if err != nil {
		otelhelper.SetError(span, err)

		return badRequest(c, err.Error())
	}

	columns := layout.Columns(g)
	layout.Apply(g, layout.DefaultOptions())

	columnOf := make(map[string]int)
	for idx, column := range columns {
		for _, name := range column {
			columnOf[name] = idx
		}
	}

	positions := make([]NodePosition, 0, g.NodeCount())

	for _, node := range g.AllNodes() {
		x, y := node.Pos()
		positions = append(positions, NodePosition{
			Name:   node.Name(),
			X:      x,
			Y:      y,
			Column: columnOf[node.Name()],
		})
	}

	return c.JSON(LayoutPipelineResponse{
		Positions: positions,
		Warnings:  s.Warnings(),
	})
}

// NormalizePipeline loads the request body and re-saves it in the
// canonical document form.
func (h *APIHandlers) NormalizePipeline(c fiber.Ctx) error {
	g, meta, s, err := h.loadBody(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	doc := s.ToDocument(g, meta)

	data, err := doc.EncodeJSON()
	if err != nil {
		return internalError(c, err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	return c.Send(data)
}

// loadBody parses the request body (YAML when the content type says
// so, JSON otherwise) into a fresh graph bound to the registry.
func (h *APIHandlers) loadBody(c fiber.Ctx) (*graph.Graph, models.Metadata, *serializer.Serializer, error) {
	g := graph.New()
	h.registry.BindToGraph(g)

	s := serializer.New(h.registry, h.logger)

	var (
		meta models.Metadata
		err  error
	)

	if strings.Contains(c.Get(fiber.HeaderContentType), "yaml") {
		meta, err = s.LoadYAML(c.Body(), g)
	} else {
		meta, err = s.LoadJSON(c.Body(), g)
	}

	if err != nil {
		return nil, models.Metadata{}, nil, err
	}

	return g, meta, s, nil
}

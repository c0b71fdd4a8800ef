// Package registry ingests discovered node descriptions and exposes
// instantiable node types to the graph, keyed by fully-qualified type
// path. Ingestion is additive and best-effort: discovery sources are
// expected to be occasionally incomplete.
package registry

import (
	"fmt"
	"log/slog"

	"github.com/xeipuuv/gojsonschema"

	"github.com/spectrakit/pipegraph/pkg/graph"
	"github.com/spectrakit/pipegraph/pkg/models"
)

// Registry holds the node type catalog for one discovery session.
type Registry struct {
	logger       *slog.Logger
	descriptions map[string]models.NodeDescription
	types        map[string]*NodeType
	order        []string
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		logger:       logger,
		descriptions: make(map[string]models.NodeDescription),
		types:        make(map[string]*NodeType),
	}
}

// Register ingests one node description. Entries without a full path
// are skipped outright; re-registering an existing path replaces it.
func (r *Registry) Register(desc models.NodeDescription) {
	if desc.FullPath == "" {
		r.logger.Debug("Skipping node description without full path",
			"class_name", desc.ClassName)

		return
	}

	if _, exists := r.types[desc.FullPath]; !exists {
		r.order = append(r.order, desc.FullPath)
	}

	r.descriptions[desc.FullPath] = desc
	r.types[desc.FullPath] = buildNodeType(desc)
}

// RegisterAll ingests a batch of descriptions in order. Individual
// malformed entries never abort the batch.
func (r *Registry) RegisterAll(descs []models.NodeDescription) {
	for _, desc := range descs {
		r.Register(desc)
	}
}

// Get returns the instantiable type for a type path.
func (r *Registry) Get(typeID string) (*NodeType, bool) {
	t, ok := r.types[typeID]

	return t, ok
}

// Description returns the raw discovery description for a type path.
func (r *Registry) Description(typeID string) (models.NodeDescription, bool) {
	desc, ok := r.descriptions[typeID]

	return desc, ok
}

// All returns every registered type in registration order.
func (r *Registry) All() []*NodeType {
	all := make([]*NodeType, 0, len(r.order))
	for _, id := range r.order {
		all = append(all, r.types[id])
	}

	return all
}

// BySource returns types filtered by provenance.
func (r *Registry) BySource(source models.NodeSource) []*NodeType {
	var out []*NodeType

	for _, t := range r.All() {
		if t.Source == source {
			out = append(out, t)
		}
	}

	return out
}

// ByPlugin returns types supplied by a specific plugin.
func (r *Registry) ByPlugin(pluginName string) []*NodeType {
	var out []*NodeType

	for _, t := range r.All() {
		if t.PluginName == pluginName {
			out = append(out, t)
		}
	}

	return out
}

// ByCategory groups types by capitalized category label. Types whose
// path matches no keyword in the category table bucket under "Other".
func (r *Registry) ByCategory() map[string][]*NodeType {
	categories := make(map[string][]*NodeType)

	for _, t := range r.All() {
		label := models.MatchCategoryLabel(t.ID)
		categories[label] = append(categories[label], t)
	}

	return categories
}

// BindToGraph registers every synthesized type with a graph so it can
// create instances. Registration failures are counted and debug-logged,
// never propagated; the return value is the number of successes.
func (r *Registry) BindToGraph(g *graph.Graph) int {
	count := 0

	for _, id := range r.order {
		if err := g.RegisterType(r.types[id]); err != nil {
			r.logger.Debug("Failed to register node type with graph",
				"type_id", id, "error", err)

			continue
		}

		count++
	}

	return count
}

// PlaceholderType synthesizes a visually distinct stand-in type for a
// type path the registry does not know, so documents referencing it
// still load in full. Placeholders carry the original type path but
// accept no further configuration.
func (r *Registry) PlaceholderType(typeID string) *NodeType {
	className := typeID
	if idx := lastDot(typeID); idx >= 0 {
		className = typeID[idx+1:]
	}

	return &NodeType{
		ID:          typeID,
		DisplayName: className + " (Unknown)",
		Category:    models.DefaultCategory,
		Source:      models.NodeSourceBuiltin,
		Placeholder: true,
	}
}

// ValidateParams checks per-instance params against the type's declared
// params schema, returning one finding string per violation. Types
// without a schema produce no findings.
func (r *Registry) ValidateParams(typeID string, params map[string]any) ([]string, error) {
	desc, ok := r.descriptions[typeID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, typeID)
	}

	if len(desc.ParamsSchema) == 0 || len(params) == 0 {
		return nil, nil
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(desc.ParamsSchema),
		gojsonschema.NewGoLoader(params),
	)
	if err != nil {
		return nil, fmt.Errorf("params schema validation failed for %s: %w", typeID, err)
	}

	if result.Valid() {
		return nil, nil
	}

	findings := make([]string, 0, len(result.Errors()))
	for _, violation := range result.Errors() {
		findings = append(findings, violation.String())
	}

	return findings, nil
}

// Clear drops all descriptions and synthesized types. Idempotent.
func (r *Registry) Clear() {
	r.descriptions = make(map[string]models.NodeDescription)
	r.types = make(map[string]*NodeType)
	r.order = nil
}

// Len returns the number of registered types.
func (r *Registry) Len() int {
	return len(r.types)
}

// Contains reports whether a type path is registered.
func (r *Registry) Contains(typeID string) bool {
	_, ok := r.types[typeID]

	return ok
}

func buildNodeType(desc models.NodeDescription) *NodeType {
	className := desc.ClassName
	if className == "" {
		className = "Unknown"
	}

	source := desc.Source
	if source == "" {
		source = models.NodeSourceBuiltin
	}

	inputs := normalizeSpecEntries(desc.InputSpecs)
	outputs := normalizeSpecEntries(desc.OutputSpecs)

	if len(inputs) == 0 && len(outputs) == 0 {
		inputs, outputs = inferDefaultSpecs(className)
	}

	params := make(map[string]any, len(desc.HParams))
	for key, value := range desc.HParams {
		params[key] = value
	}

	return &NodeType{
		ID:            desc.FullPath,
		DisplayName:   className,
		Category:      models.InferCategory(desc.FullPath),
		Source:        source,
		PluginName:    desc.PluginName,
		Inputs:        inputs,
		Outputs:       outputs,
		DefaultParams: params,
		ParamsSchema:  desc.ParamsSchema,
	}
}

func lastDot(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '.' {
			return i
		}
	}

	return -1
}

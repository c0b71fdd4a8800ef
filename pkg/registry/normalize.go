package registry

import (
	"strconv"
	"strings"

	"github.com/spectrakit/pipegraph/pkg/models"
)

// normalizeSpecEntries converts discovery port spec entries into the
// canonical ordered named-spec form. Entries without a name get
// "unknown", matching the best-effort posture of discovery ingestion.
func normalizeSpecEntries(entries []models.PortSpecEntry) []NamedSpec {
	specs := make([]NamedSpec, 0, len(entries))

	for _, entry := range entries {
		name := entry.Name
		if name == "" {
			name = "unknown"
		}

		dtype := entry.DType
		if dtype == "" {
			dtype = models.DTypeAny
		}

		specs = append(specs, NamedSpec{
			Name: name,
			Spec: models.PortSpec{
				DType:       dtype,
				Shape:       parseShape(entry.Shape),
				Description: entry.Description,
				Optional:    entry.Optional,
			},
		})
	}

	return specs
}

// parseShape accepts the shape encodings discovery sources emit: a
// list of integers, a string like "[-1, -1]", or nothing.
func parseShape(raw any) []int {
	switch value := raw.(type) {
	case nil:
		return nil
	case []int:
		return append([]int(nil), value...)
	case []any:
		shape := make([]int, 0, len(value))

		for _, dim := range value {
			switch d := dim.(type) {
			case int:
				shape = append(shape, d)
			case int64:
				shape = append(shape, int(d))
			case float64:
				shape = append(shape, int(d))
			}
		}

		return shape
	case string:
		trimmed := strings.Trim(value, "[]")
		if trimmed == "" {
			return nil
		}

		var shape []int

		for _, part := range strings.Split(trimmed, ",") {
			dim, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				continue
			}

			shape = append(shape, dim)
		}

		return shape
	default:
		return nil
	}
}

// inferDefaultSpecs derives port specs from class-name keywords, the
// last-resort fallback when a discovery entry declares no ports at all.
// The heuristic set is finite and exhaustive; anything unrecognized
// gets a plain cube-in/cube-out shape.
func inferDefaultSpecs(className string) (inputs, outputs []NamedSpec) {
	name := strings.ToLower(className)

	switch {
	case strings.Contains(name, "data") || strings.Contains(name, "loader"):
		inputs = nil
		outputs = []NamedSpec{
			{Name: "cube", Spec: models.PortSpec{DType: "cube"}},
			{Name: "mask", Spec: models.PortSpec{DType: "mask", Optional: true}},
			{Name: "wavelengths", Spec: models.PortSpec{DType: "wavelengths", Optional: true}},
		}
	case strings.Contains(name, "loss") || strings.Contains(name, "criterion"):
		inputs = []NamedSpec{
			{Name: "predictions", Spec: models.PortSpec{DType: "tensor"}},
			{Name: "targets", Spec: models.PortSpec{DType: "tensor"}},
		}
		outputs = []NamedSpec{
			{Name: "loss", Spec: models.PortSpec{DType: "scalar"}},
		}
	case strings.Contains(name, "metric"):
		inputs = []NamedSpec{
			{Name: "predictions", Spec: models.PortSpec{DType: "tensor"}},
			{Name: "targets", Spec: models.PortSpec{DType: "tensor", Optional: true}},
		}
		outputs = []NamedSpec{
			{Name: "metric", Spec: models.PortSpec{DType: "scalar"}},
		}
	case strings.Contains(name, "visualiz") || strings.Contains(name, "monitor"):
		inputs = []NamedSpec{
			{Name: "cube", Spec: models.PortSpec{DType: "cube"}},
		}
		outputs = []NamedSpec{
			{Name: "image", Spec: models.PortSpec{DType: "image"}},
		}
	case strings.Contains(name, "selector") || strings.Contains(name, "band"):
		inputs = []NamedSpec{
			{Name: "cube", Spec: models.PortSpec{DType: "cube"}},
			{Name: "wavelengths", Spec: models.PortSpec{DType: "wavelengths", Optional: true}},
		}
		outputs = []NamedSpec{
			{Name: "cube", Spec: models.PortSpec{DType: "cube"}},
			{Name: "indices", Spec: models.PortSpec{DType: "indices", Optional: true}},
		}
	case strings.Contains(name, "label") || strings.Contains(name, "mapper"):
		inputs = []NamedSpec{
			{Name: "mask", Spec: models.PortSpec{DType: "mask"}},
		}
		outputs = []NamedSpec{
			{Name: "labels", Spec: models.PortSpec{DType: "labels"}},
		}
	default:
		inputs = []NamedSpec{
			{Name: "cube", Spec: models.PortSpec{DType: "cube"}},
		}
		outputs = []NamedSpec{
			{Name: "cube", Spec: models.PortSpec{DType: "cube"}},
		}
	}

	return inputs, outputs
}

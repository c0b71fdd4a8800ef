// Package models defines the core domain models for the pipeline graph
// engine: port specifications, the declarative pipeline document, node
// type descriptions and the category table.
package models

import (
	"fmt"
	"strconv"
	"strings"
)

// DTypeAny is the wildcard data kind: it accepts and is accepted by
// every other data kind.
const DTypeAny = "any"

// ShapeWildcard marks a dimension whose extent is unconstrained.
const ShapeWildcard = -1

// PortSpec describes a single input or output port on a node type.
//
// PortSpec carries no name; the owning collection (a name -> PortSpec
// mapping on the node type) supplies it.
type PortSpec struct {
	DType       string `json:"dtype"                 yaml:"dtype"`
	Shape       []int  `json:"shape,omitempty"       yaml:"shape,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Optional    bool   `json:"optional,omitempty"    yaml:"optional,omitempty"`
}

// IsAny reports whether this spec uses the wildcard data kind.
func (s PortSpec) IsAny() bool {
	return s.DType == DTypeAny
}

// CompatibleWith reports whether an output with this spec may feed an
// input with the target spec, with a human-readable reason when not.
//
// Data kinds must match exactly. Shapes must be reconcilable: an empty
// shape on either side is unconstrained; otherwise both shapes need the
// same rank and each pair of dimensions must agree unless one of them
// is the wildcard.
func (s PortSpec) CompatibleWith(target PortSpec) (bool, string) {
	if s.DType != target.DType {
		return false, fmt.Sprintf("Type mismatch: %s cannot connect to %s", s.DType, target.DType)
	}

	if len(s.Shape) == 0 || len(target.Shape) == 0 {
		return true, ""
	}

	if len(s.Shape) != len(target.Shape) {
		return false, fmt.Sprintf("Shape mismatch: %s vs %s", s.ShapeString(), target.ShapeString())
	}

	for i, dim := range s.Shape {
		if dim == ShapeWildcard || target.Shape[i] == ShapeWildcard {
			continue
		}

		if dim != target.Shape[i] {
			return false, fmt.Sprintf("Shape mismatch: %s vs %s", s.ShapeString(), target.ShapeString())
		}
	}

	return true, ""
}

// ShapeString renders the shape as "[-1, 64]". An unconstrained shape
// renders as "[]".
func (s PortSpec) ShapeString() string {
	dims := make([]string, len(s.Shape))
	for i, dim := range s.Shape {
		dims[i] = strconv.Itoa(dim)
	}

	return "[" + strings.Join(dims, ", ") + "]"
}

// FormatTooltip renders the spec as a multi-line display string for
// port hover text.
func (s PortSpec) FormatTooltip() string {
	lines := []string{"Type: " + s.DType}

	if len(s.Shape) > 0 {
		lines = append(lines, "Shape: "+s.ShapeString())
	}

	if s.Optional {
		lines = append(lines, "Optional")
	}

	if s.Description != "" {
		lines = append(lines, s.Description)
	}

	return strings.Join(lines, "\n")
}

package models

import "strings"

// CategoryKeyword pairs a keyword matched against a node type path with
// the category it implies. The table order matters: the first match
// wins ("anomaly" must be scanned before "detector").
type CategoryKeyword struct {
	Keyword  string
	Category string
}

// CategoryTable is the fixed ordered keyword table consulted for
// category inference.
var CategoryTable = []CategoryKeyword{
	{"data", "data"},
	{"loader", "loader"},
	{"normalization", "normalization"},
	{"preprocessing", "preprocessing"},
	{"feature", "feature"},
	{"extraction", "extraction"},
	{"band", "band"},
	{"selector", "selector"},
	{"anomaly", "anomaly"},
	{"model", "model"},
	{"network", "network"},
	{"classifier", "classifier"},
	{"detector", "detector"},
	{"loss", "loss"},
	{"criterion", "criterion"},
	{"decider", "decider"},
	{"utility", "utility"},
	{"transform", "transform"},
	{"pca", "pca"},
}

// DefaultCategory is used when no keyword or path segment applies.
const DefaultCategory = "utility"

// OtherCategoryLabel buckets types whose path matches no keyword when
// grouping for display.
const OtherCategoryLabel = "Other"

// InferCategory derives a category from a fully-qualified node type
// path. It scans the keyword table first, then falls back to the path
// segment following a "node" segment, then to the default.
//
//	spectral.node.normalization.MinMaxNormalizer -> normalization
//	spectral.node.data.CubeLoader               -> data
func InferCategory(typePath string) string {
	path := strings.ToLower(typePath)

	for _, entry := range CategoryTable {
		if strings.Contains(path, entry.Keyword) {
			return entry.Category
		}
	}

	parts := strings.Split(path, ".")
	for i, part := range parts {
		if part == "node" && i+1 < len(parts) {
			return parts[i+1]
		}
	}

	return DefaultCategory
}

// MatchCategoryLabel scans only the keyword table and returns the
// capitalized category label, or OtherCategoryLabel when nothing
// matches. Used for palette grouping.
func MatchCategoryLabel(typePath string) string {
	path := strings.ToLower(typePath)

	for _, entry := range CategoryTable {
		if strings.Contains(path, entry.Keyword) {
			return CapitalizeCategory(entry.Category)
		}
	}

	return OtherCategoryLabel
}

// CapitalizeCategory upper-cases the first letter of a category label.
func CapitalizeCategory(category string) string {
	if category == "" {
		return category
	}

	return strings.ToUpper(category[:1]) + category[1:]
}

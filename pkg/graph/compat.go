package graph

import "fmt"

// ValidateConnection decides whether an output port on source may feed
// an input port on target, with a human-readable reason when not.
//
// The wildcard "any" data kind on either side short-circuits to
// compatible; otherwise the port specs' own compatibility rule decides.
func ValidateConnection(source *Node, sourcePort string, target *Node, targetPort string) (bool, string) {
	sourceSpec, ok := source.OutputSpec(sourcePort)
	if !ok {
		return false, fmt.Sprintf("Source port '%s' spec not found", sourcePort)
	}

	targetSpec, ok := target.InputSpec(targetPort)
	if !ok {
		return false, fmt.Sprintf("Target port '%s' spec not found", targetPort)
	}

	if sourceSpec.IsAny() || targetSpec.IsAny() {
		return true, ""
	}

	return sourceSpec.CompatibleWith(targetSpec)
}

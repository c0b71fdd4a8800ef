package models

import "regexp"

// PortDirection is the side of a node a port sits on.
type PortDirection string

const (
	DirectionOutputs PortDirection = "outputs"
	DirectionInputs  PortDirection = "inputs"
)

// PortRef identifies one endpoint of a connection entry:
// "<instanceName>.(outputs|inputs).<portName>".
type PortRef struct {
	Node      string
	Direction PortDirection
	Port      string
}

// The instance-name capture is greedy, so the literal outputs/inputs
// token anchors on its last occurrence and node names may contain dots.
var portRefPattern = regexp.MustCompile(`^(.+)\.(outputs|inputs)\.(.+)$`)

// ParsePortRef parses a connection endpoint string. Strings not
// matching the grammar are rejected outright, never partially matched.
func ParsePortRef(s string) (PortRef, bool) {
	match := portRefPattern.FindStringSubmatch(s)
	if match == nil {
		return PortRef{}, false
	}

	return PortRef{
		Node:      match[1],
		Direction: PortDirection(match[2]),
		Port:      match[3],
	}, true
}

// String renders the canonical endpoint form.
func (r PortRef) String() string {
	return r.Node + "." + string(r.Direction) + "." + r.Port
}

// MakePortRef builds a canonical endpoint string.
func MakePortRef(node string, direction PortDirection, port string) string {
	return PortRef{Node: node, Direction: direction, Port: port}.String()
}

package graph

import "errors"

// Static error variables for linter compliance.
var (
	ErrDuplicateNodeType      = errors.New("node type already registered")
	ErrUnknownNodeType        = errors.New("node type not registered")
	ErrIncompatibleConnection = errors.New("connection rejected")
)

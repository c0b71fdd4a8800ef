package registry

import "errors"

// Static error variables for linter compliance.
var (
	ErrUnknownType = errors.New("node type not registered")
)

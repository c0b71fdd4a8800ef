package cmd

import "errors"

// Static error variables for linter compliance.
var (
	ErrNoNodeSource = errors.New("no node type source configured")
)

package models

import "errors"

// Static error variables for linter compliance.
var (
	ErrMissingMetadataName = errors.New("metadata name is required")
)

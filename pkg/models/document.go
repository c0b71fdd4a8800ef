package models

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultExecutionStage is the stage every node runs in unless the
// document says otherwise.
const DefaultExecutionStage = "always"

// Metadata is the free-form document header. Only Name is required for
// a complete document; parsing tolerates an absent header entirely.
type Metadata struct {
	Name        string         `json:"name,omitempty"        yaml:"name,omitempty"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Tags        []string       `json:"tags,omitempty"        yaml:"tags,omitempty"`
	Author      string         `json:"author,omitempty"      yaml:"author,omitempty"`
	Created     string         `json:"created,omitempty"     yaml:"created,omitempty"`
	Extra       map[string]any `json:"-"                     yaml:",inline"`
}

// IsZero reports whether no metadata was present at all.
func (m Metadata) IsZero() bool {
	return m.Name == "" && m.Description == "" && len(m.Tags) == 0 &&
		m.Author == "" && m.Created == "" && len(m.Extra) == 0
}

// metadataFields are the declared metadata keys; everything else in a
// decoded header lands in Extra.
var metadataFields = []string{"name", "description", "tags", "author", "created"}

// metadataAlias carries the declared fields without the custom codec
// methods, so the methods below can delegate to the default one.
type metadataAlias Metadata

// MarshalJSON inlines Extra next to the declared fields, mirroring the
// YAML inline behavior. Declared fields win over Extra keys.
func (m Metadata) MarshalJSON() ([]byte, error) {
	merged := make(map[string]any, len(m.Extra)+len(metadataFields))
	for key, value := range m.Extra {
		merged[key] = value
	}

	if m.Name != "" {
		merged["name"] = m.Name
	}

	if m.Description != "" {
		merged["description"] = m.Description
	}

	if len(m.Tags) > 0 {
		merged["tags"] = m.Tags
	}

	if m.Author != "" {
		merged["author"] = m.Author
	}

	if m.Created != "" {
		merged["created"] = m.Created
	}

	return json.Marshal(merged)
}

// UnmarshalJSON keeps unknown header keys in Extra instead of dropping
// them.
func (m *Metadata) UnmarshalJSON(data []byte) error {
	var alias metadataAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	for _, field := range metadataFields {
		delete(raw, field)
	}

	if len(raw) > 0 {
		alias.Extra = raw
	}

	*m = Metadata(alias)

	return nil
}

// NodeEntry is one node in the declarative document.
type NodeEntry struct {
	ClassName       string         `json:"class_name"                 yaml:"class_name"                 validate:"required"`
	Name            string         `json:"name"                       yaml:"name"                       validate:"required"`
	Params          map[string]any `json:"params,omitempty"           yaml:"params,omitempty"`
	ExecutionStages []string       `json:"execution_stages,omitempty" yaml:"execution_stages,omitempty"`
}

// ConnectionEntry is one directed edge in the declarative document,
// both endpoints in the "<node>.(outputs|inputs).<port>" grammar.
type ConnectionEntry struct {
	Source string `json:"source" yaml:"source" validate:"required"`
	Target string `json:"target" yaml:"target" validate:"required"`
}

// PipelineDocument is the declarative, serializable form of a full
// pipeline graph.
type PipelineDocument struct {
	Metadata    Metadata          `json:"metadata,omitempty"    yaml:"metadata,omitempty"`
	Nodes       []NodeEntry       `json:"nodes"                 yaml:"nodes"                 validate:"dive"`
	Connections []ConnectionEntry `json:"connections,omitempty" yaml:"connections,omitempty" validate:"dive"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the structural shape required to load the document.
// Metadata is not required here; see ValidateComplete.
func (d *PipelineDocument) Validate() error {
	if err := validate.Struct(d); err != nil {
		return fmt.Errorf("invalid pipeline document: %w", err)
	}

	return nil
}

// ValidateComplete additionally requires the metadata name, the bar for
// a document considered publishable rather than merely loadable.
func (d *PipelineDocument) ValidateComplete() error {
	if err := d.Validate(); err != nil {
		return err
	}

	if d.Metadata.Name == "" {
		return fmt.Errorf("invalid pipeline document: %w", ErrMissingMetadataName)
	}

	return nil
}

// ParseDocumentYAML decodes and structurally validates a YAML document.
func ParseDocumentYAML(data []byte) (*PipelineDocument, error) {
	var doc PipelineDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse pipeline YAML: %w", err)
	}

	if err := doc.Validate(); err != nil {
		return nil, err
	}

	return &doc, nil
}

// ParseDocumentJSON decodes and structurally validates a JSON document.
func ParseDocumentJSON(data []byte) (*PipelineDocument, error) {
	var doc PipelineDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse pipeline JSON: %w", err)
	}

	if err := doc.Validate(); err != nil {
		return nil, err
	}

	return &doc, nil
}

// EncodeYAML renders the document as YAML.
func (d *PipelineDocument) EncodeYAML() ([]byte, error) {
	data, err := yaml.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("failed to encode pipeline YAML: %w", err)
	}

	return data, nil
}

// EncodeJSON renders the document as indented JSON.
func (d *PipelineDocument) EncodeJSON() ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode pipeline JSON: %w", err)
	}

	return data, nil
}

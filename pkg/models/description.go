package models

// NodeSource identifies where a discovered node type came from.
type NodeSource string

const (
	NodeSourceBuiltin NodeSource = "builtin"
	NodeSourcePlugin  NodeSource = "plugin"
)

// PortSpecEntry is a named port spec as the discovery collaborator
// reports it. Shape is left untyped because discovery sources emit it
// either as a list of integers or as a string like "[-1, -1]".
type PortSpecEntry struct {
	Name        string `json:"name"                  yaml:"name"`
	DType       string `json:"dtype"                 yaml:"dtype"`
	Shape       any    `json:"shape,omitempty"       yaml:"shape,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Optional    bool   `json:"optional,omitempty"    yaml:"optional,omitempty"`
}

// NodeDescription is one discovered node type as supplied by the
// discovery collaborator. FullPath doubles as the registry key; entries
// without it are skipped by the registry.
type NodeDescription struct {
	ClassName    string          `json:"class_name"              yaml:"class_name"`
	FullPath     string          `json:"full_path"               yaml:"full_path"`
	Source       NodeSource      `json:"source,omitempty"        yaml:"source,omitempty"`
	PluginName   string          `json:"plugin_name,omitempty"   yaml:"plugin_name,omitempty"`
	InputSpecs   PortSpecList    `json:"input_specs,omitempty"   yaml:"input_specs,omitempty"`
	OutputSpecs  PortSpecList    `json:"output_specs,omitempty"  yaml:"output_specs,omitempty"`
	HParams      map[string]any  `json:"hparams,omitempty"       yaml:"hparams,omitempty"`
	ParamsSchema map[string]any  `json:"params_schema,omitempty" yaml:"params_schema,omitempty"`
}

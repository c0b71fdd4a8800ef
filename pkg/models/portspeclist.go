package models

import (
	"encoding/json"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// PortSpecList decodes the closed union of shapes discovery sources
// emit for input_specs/output_specs: a list of entries, a mapping of
// port name to spec (where a scalar value is shorthand for the data
// kind), or a single entry. It always normalizes to the list form.
type PortSpecList []PortSpecEntry

// Field names of PortSpecEntry; a mapping using only these keys is a
// single entry, not a name to spec mapping.
var portSpecEntryFields = map[string]struct{}{
	"name":        {},
	"dtype":       {},
	"shape":       {},
	"description": {},
	"optional":    {},
}

func isSingleSpecKeys(keys []string) bool {
	if len(keys) == 0 {
		return false
	}

	for _, key := range keys {
		if _, ok := portSpecEntryFields[key]; !ok {
			return false
		}
	}

	return true
}

func (l *PortSpecList) UnmarshalJSON(data []byte) error {
	var list []PortSpecEntry
	if err := json.Unmarshal(data, &list); err == nil {
		*l = list

		return nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("port specs must be a list, a name to spec mapping or a single spec: %w", err)
	}

	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	if isSingleSpecKeys(keys) {
		var entry PortSpecEntry
		if err := json.Unmarshal(data, &entry); err != nil {
			return fmt.Errorf("failed to decode port spec: %w", err)
		}

		*l = []PortSpecEntry{entry}

		return nil
	}

	entries := make([]PortSpecEntry, 0, len(raw))

	for _, name := range keys {
		entry, err := decodeMappedSpecJSON(raw[name])
		if err != nil {
			return err
		}

		if entry.Name == "" {
			entry.Name = name
		}

		entries = append(entries, entry)
	}

	*l = entries

	return nil
}

func decodeMappedSpecJSON(data json.RawMessage) (PortSpecEntry, error) {
	var entry PortSpecEntry
	if err := json.Unmarshal(data, &entry); err == nil {
		return entry, nil
	}

	// Scalar value shorthand: the value is the data kind.
	var dtype string
	if err := json.Unmarshal(data, &dtype); err != nil {
		return PortSpecEntry{}, fmt.Errorf("failed to decode port spec value: %w", err)
	}

	return PortSpecEntry{DType: dtype}, nil
}

func (l *PortSpecList) UnmarshalYAML(value *yaml.Node) error {
	if value.Tag == "!!null" {
		*l = nil

		return nil
	}

	switch value.Kind {
	case yaml.SequenceNode:
		var list []PortSpecEntry
		if err := value.Decode(&list); err != nil {
			return err
		}

		*l = list

		return nil
	case yaml.MappingNode:
		keys := make([]string, 0, len(value.Content)/2)
		for i := 0; i < len(value.Content); i += 2 {
			keys = append(keys, value.Content[i].Value)
		}

		if isSingleSpecKeys(keys) {
			var entry PortSpecEntry
			if err := value.Decode(&entry); err != nil {
				return err
			}

			*l = []PortSpecEntry{entry}

			return nil
		}

		entries := make([]PortSpecEntry, 0, len(keys))

		for i := 0; i+1 < len(value.Content); i += 2 {
			entry, err := decodeMappedSpecYAML(value.Content[i+1])
			if err != nil {
				return err
			}

			if entry.Name == "" {
				entry.Name = value.Content[i].Value
			}

			entries = append(entries, entry)
		}

		*l = entries

		return nil
	default:
		return fmt.Errorf("port specs must be a list, a name to spec mapping or a single spec, got yaml kind %d", value.Kind)
	}
}

func decodeMappedSpecYAML(value *yaml.Node) (PortSpecEntry, error) {
	if value.Kind == yaml.ScalarNode {
		return PortSpecEntry{DType: value.Value}, nil
	}

	var entry PortSpecEntry
	if err := value.Decode(&entry); err != nil {
		return PortSpecEntry{}, err
	}

	return entry, nil
}

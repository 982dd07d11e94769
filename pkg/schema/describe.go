package schema

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// JSONSchemaDraft is the dialect of the documents produced by JSONSchema
const JSONSchemaDraft = "https://json-schema.org/draft/2020-12/schema"

// FieldDescription is the serialisable form of a Field
type FieldDescription struct {
	Name   string             `yaml:"name" json:"name"`
	Type   FieldType          `yaml:"type" json:"type"`
	Format string             `yaml:"format,omitempty" json:"format,omitempty"`
	Items  *ObjectDescription `yaml:"items,omitempty" json:"items,omitempty"`
}

// ObjectDescription is the serialisable form of an Object
type ObjectDescription struct {
	Name   string             `yaml:"name" json:"name"`
	Fields []FieldDescription `yaml:"fields" json:"fields"`
}

// RootEntry describes one top-level key of a document
type RootEntry struct {
	Key        string            `yaml:"key" json:"key"`
	Container  string            `yaml:"container" json:"container"` // object, array or map
	KeyPattern string            `yaml:"keyPattern,omitempty" json:"keyPattern,omitempty"`
	Schema     ObjectDescription `yaml:"schema" json:"schema"`
}

// Description is the serialisable registry entry of a document kind
type Description struct {
	Kind Kind        `yaml:"kind" json:"kind"`
	Root []RootEntry `yaml:"root" json:"root"`
}

func describeObject(o *Object) ObjectDescription {
	desc := ObjectDescription{Name: o.Name}
	for _, f := range o.Fields {
		fd := FieldDescription{Name: f.Name, Type: f.Type, Format: f.Format.String()}
		if f.Items != nil {
			items := describeObject(f.Items)
			fd.Items = &items
		}
		desc.Fields = append(desc.Fields, fd)
	}
	return desc
}

// Describe returns the registry entry of kind
func Describe(kind Kind) Description {
	switch kind {
	case KindTiers:
		return Description{
			Kind: kind,
			Root: []RootEntry{
				{Key: TiersKey, Container: "map", KeyPattern: `^\d+$`, Schema: describeObject(&Tier)},
			},
		}
	default:
		return Description{
			Kind: KindZones,
			Root: []RootEntry{
				{Key: GlobalSettingsKey, Container: "object", Schema: describeObject(&GlobalSettings)},
				{Key: ZonesKey, Container: "array", Schema: describeObject(&Zone)},
			},
		}
	}
}

// closedObject builds a JSON Schema fragment that only allows the declared fields
func closedObject(o *Object) map[string]any {
	properties := make(map[string]any, len(o.Fields))
	for _, f := range o.Fields {
		if f.Items != nil {
			properties[f.Name] = map[string]any{"items": closedObject(f.Items)}
			continue
		}
		properties[f.Name] = map[string]any{}
	}
	return map[string]any{
		"properties":           properties,
		"additionalProperties": false,
	}
}

// JSONSchema derives a JSON Schema document that rejects undeclared properties.
// Types and required fields are deliberately left out: those are reported by the
// validator with richer messages.
func JSONSchema(kind Kind) map[string]any {
	var properties map[string]any
	switch kind {
	case KindTiers:
		properties = map[string]any{
			TiersKey: map[string]any{"additionalProperties": closedObject(&Tier)},
		}
	default:
		properties = map[string]any{
			GlobalSettingsKey: closedObject(&GlobalSettings),
			ZonesKey:          map[string]any{"items": closedObject(&Zone)},
		}
	}
	return map[string]any{
		"$schema":              JSONSchemaDraft,
		"title":                fmt.Sprintf("spawn %s configuration", kind),
		"properties":           properties,
		"additionalProperties": false,
	}
}

// Encode renders the registry entry of kind. Supported formats are yaml, json and jsonschema.
func Encode(kind Kind, format string) ([]byte, error) {
	switch format {
	case "", "yaml":
		return yaml.Marshal(Describe(kind))
	case "json":
		return json.MarshalIndent(Describe(kind), "", "    ")
	case "jsonschema":
		return json.MarshalIndent(JSONSchema(kind), "", "    ")
	default:
		return nil, fmt.Errorf("unknown schema format '%s'. Must be 'yaml', 'json' or 'jsonschema'", format)
	}
}

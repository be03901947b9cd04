// Package schema generates JSON Schemas from registered function
// signatures and from sample values. The output feeds form generation in
// the mesh-composer frontend, so property types use JSON Schema names
// throughout.
package schema

import (
	"github.com/meshkit/meshd/internal/registry"
)

// Schema is a JSON Schema fragment. Empty fields are omitted on the wire.
type Schema struct {
	Type        string             `json:"type,omitempty"`
	Title       string             `json:"title,omitempty"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Required    []string           `json:"required,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Default     any                `json:"default,omitempty"`
}

// ForFunction builds an object schema describing a function's parameters.
// Parameters without a declared default become required properties.
func ForFunction(sig registry.Signature, title string) *Schema {
	if title == "" {
		title = sig.Name
	}

	s := &Schema{
		Type:        "object",
		Title:       title,
		Description: sig.Doc,
		Properties:  make(map[string]*Schema, len(sig.Params)),
	}

	for _, p := range sig.Params {
		prop := &Schema{Type: propertyType(p.Type)}
		if p.HasDefault {
			prop.Default = p.Default
		} else {
			s.Required = append(s.Required, p.Name)
		}
		s.Properties[p.Name] = prop
	}

	return s
}

// propertyType maps a registry type tag to a JSON Schema type. The tags
// already use JSON Schema names; only the untyped tag needs a fallback.
func propertyType(tag string) string {
	if tag == "" || tag == registry.TypeAny {
		return "string"
	}
	return tag
}

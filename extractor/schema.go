package extractor

import (
	"fmt"
	"slices"

	"go.yaml.in/yaml/v4"
)

// Schema is the subset of a JSON-Schema-like node that the generators
// consume. It deliberately ignores composition keywords (allOf, oneOf) and
// most validation keywords; the generators only need names, types, and
// nesting one level deep.
type Schema struct {
	// Ref is the raw $ref string when this node is an unresolved reference
	Ref string
	// Type is the declared type (object, array, string, integer, number, boolean)
	Type string
	// Format is the declared format (int64, float, date-time, ...)
	Format string
	// Properties holds object fields in source document order, so field
	// order in generated models is deterministic
	Properties []Property
	// Required lists the names of required properties
	Required []string
	// Items is the element schema of an array type
	Items *Schema
}

// Property is one named object field. Order within Schema.Properties matches
// the source document.
type Property struct {
	Name   string
	Schema *Schema
}

// IsRef reports whether the schema is an unresolved reference node.
func (s *Schema) IsRef() bool {
	return s != nil && s.Ref != ""
}

// Property returns the named property's schema, or nil when absent.
func (s *Schema) Property(name string) *Schema {
	if s == nil {
		return nil
	}
	for _, p := range s.Properties {
		if p.Name == name {
			return p.Schema
		}
	}
	return nil
}

// IsRequired reports whether the named property is listed in required.
func (s *Schema) IsRequired(name string) bool {
	return s != nil && slices.Contains(s.Required, name)
}

// UnmarshalYAML decodes a schema from a yaml.Node, preserving property
// declaration order. The default map-based decoding would destroy it.
func (s *Schema) UnmarshalYAML(value *yaml.Node) error {
	// A top-level Unmarshal hands us the document wrapper; nested Decode
	// calls hand us the element node directly.
	value = documentRoot(value)
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("schema must be a mapping, got %s", nodeKindName(value.Kind))
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		key := value.Content[i]
		val := deref(value.Content[i+1])
		switch key.Value {
		case "$ref":
			s.Ref = val.Value
		case "type":
			// OAS 3.1 allows a type array; a non-scalar node decodes to an
			// empty Type, which downstream maps to dynamic
			if val.Kind == yaml.ScalarNode {
				s.Type = val.Value
			}
		case "format":
			s.Format = val.Value
		case "required":
			if err := val.Decode(&s.Required); err != nil {
				return fmt.Errorf("invalid required list: %w", err)
			}
		case "items":
			var items Schema
			if err := val.Decode(&items); err != nil {
				return fmt.Errorf("invalid items schema: %w", err)
			}
			s.Items = &items
		case "properties":
			if val.Kind != yaml.MappingNode {
				return fmt.Errorf("properties must be a mapping, got %s", nodeKindName(val.Kind))
			}
			for j := 0; j+1 < len(val.Content); j += 2 {
				var ps Schema
				if err := val.Content[j+1].Decode(&ps); err != nil {
					return fmt.Errorf("invalid property %q: %w", val.Content[j].Value, err)
				}
				s.Properties = append(s.Properties, Property{
					Name:   val.Content[j].Value,
					Schema: &ps,
				})
			}
		}
	}
	return nil
}

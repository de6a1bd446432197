package vctypes

import (
	"encoding/json"
	"fmt"
)

// LeafType enumerates the scalar types a SchemaPropertyValue may describe.
type LeafType string

const (
	LeafText    LeafType = "text"
	LeafNumber  LeafType = "number"
	LeafBoolean LeafType = "boolean"
)

func (t LeafType) valid() bool {
	switch t {
	case LeafText, LeafNumber, LeafBoolean:
		return true
	}
	return false
}

// SchemaPropertyValue describes a single scalar leaf of a schema tree.
type SchemaPropertyValue struct {
	LeafType    LeafType `json:"leaf_type"`
	Description string   `json:"description,omitempty"`
}

// PropertyKind discriminates the three shapes a SchemaProperty or
// ClaimProperty node can take.
type PropertyKind string

const (
	KindValue PropertyKind = "value"
	KindArray PropertyKind = "array"
	KindMap   PropertyKind = "map"
)

// SchemaProperty is a recursive tagged tree node: exactly one of Value,
// Array, or Map is populated, selected by Kind. Arrays are fixed-shape
// templates (their length is part of the schema); maps carry a fixed key
// set that claims may exceed but never omit (see internal/conform).
type SchemaProperty struct {
	Kind  PropertyKind
	Value *SchemaPropertyValue
	Array []SchemaProperty
	Map   map[string]SchemaProperty
}

// NewSchemaValue builds a Value-kind leaf node.
func NewSchemaValue(leafType LeafType, description string) SchemaProperty {
	return SchemaProperty{
		Kind:  KindValue,
		Value: &SchemaPropertyValue{LeafType: leafType, Description: description},
	}
}

// NewSchemaArray builds an Array-kind node from an ordered list of elements.
func NewSchemaArray(elements ...SchemaProperty) SchemaProperty {
	return SchemaProperty{Kind: KindArray, Array: elements}
}

// NewSchemaMap builds a Map-kind node from a key set.
func NewSchemaMap(fields map[string]SchemaProperty) SchemaProperty {
	return SchemaProperty{Kind: KindMap, Map: fields}
}

// Equal reports structural equality between two schema property trees.
func (p SchemaProperty) Equal(other SchemaProperty) bool {
	if p.Kind != other.Kind {
		return false
	}
	switch p.Kind {
	case KindValue:
		if p.Value == nil || other.Value == nil {
			return p.Value == other.Value
		}
		return *p.Value == *other.Value
	case KindArray:
		if len(p.Array) != len(other.Array) {
			return false
		}
		for i := range p.Array {
			if !p.Array[i].Equal(other.Array[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(p.Map) != len(other.Map) {
			return false
		}
		for k, v := range p.Map {
			ov, ok := other.Map[k]
			if !ok || !v.Equal(ov) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

type schemaPropertyWire struct {
	Kind  PropertyKind              `json:"kind"`
	Value *SchemaPropertyValue      `json:"value,omitempty"`
	Array []SchemaProperty          `json:"array,omitempty"`
	Map   map[string]SchemaProperty `json:"map,omitempty"`
}

// MarshalJSON encodes the tagged union as an explicit {"kind": ..., ...}
// document so the property tree round-trips through the registry's JSON
// codec: parse(serialize(schema)) == schema.
func (p SchemaProperty) MarshalJSON() ([]byte, error) {
	wire := schemaPropertyWire{Kind: p.Kind}
	switch p.Kind {
	case KindValue:
		wire.Value = p.Value
	case KindArray:
		wire.Array = p.Array
		if wire.Array == nil {
			wire.Array = []SchemaProperty{}
		}
	case KindMap:
		wire.Map = p.Map
		if wire.Map == nil {
			wire.Map = map[string]SchemaProperty{}
		}
	default:
		return nil, fmt.Errorf("vctypes: schema property has unknown kind %q", p.Kind)
	}
	return json.Marshal(wire)
}

// UnmarshalJSON decodes the tagged union, validating that Kind names a
// known variant and that the corresponding field is present.
func (p *SchemaProperty) UnmarshalJSON(data []byte) error {
	var wire schemaPropertyWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	switch wire.Kind {
	case KindValue:
		if wire.Value == nil {
			return fmt.Errorf("vctypes: schema property kind %q missing value", wire.Kind)
		}
		if !wire.Value.LeafType.valid() {
			return fmt.Errorf("vctypes: schema property has unknown leaf type %q", wire.Value.LeafType)
		}
	case KindArray, KindMap:
		// nil slices/maps are valid empty containers
	default:
		return fmt.Errorf("vctypes: schema property has unknown kind %q", wire.Kind)
	}
	p.Kind = wire.Kind
	p.Value = wire.Value
	p.Array = wire.Array
	p.Map = wire.Map
	return nil
}

// CredentialSchemaLink is the {id, type} pair recorded on an issued
// Credential, distinct from the full CredentialSchema it references.
type CredentialSchemaLink struct {
	ID   URL    `json:"id"`
	Type string `json:"type"`
}

// CredentialSchema is the full, registry-resident schema document: a
// typed template describing the shape of valid credential subjects.
type CredentialSchema struct {
	ID          URL                       `json:"id"`
	Type        string                    `json:"type"`
	Name        string                    `json:"name"`
	Description string                    `json:"description,omitempty"`
	Properties  map[string]SchemaProperty `json:"properties"`
}

// Link returns the {id, type} pair this schema contributes to a Credential.
func (s CredentialSchema) Link() CredentialSchemaLink {
	return CredentialSchemaLink{ID: s.ID, Type: s.Type}
}

// Equal reports structural equality between two schema documents,
// including exact equality of their property trees.
func (s CredentialSchema) Equal(other CredentialSchema) bool {
	if !s.ID.Equal(other.ID) || s.Type != other.Type || s.Name != other.Name || s.Description != other.Description {
		return false
	}
	if len(s.Properties) != len(other.Properties) {
		return false
	}
	for k, v := range s.Properties {
		ov, ok := other.Properties[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

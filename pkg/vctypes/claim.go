package vctypes

import (
	"encoding/json"
	"fmt"
)

// ClaimValueKind discriminates the scalar payload carried by a
// ClaimPropertyValue.
type ClaimValueKind string

const (
	ClaimText    ClaimValueKind = "text"
	ClaimNumber  ClaimValueKind = "number"
	ClaimBoolean ClaimValueKind = "boolean"
)

// ClaimPropertyValue is a tagged scalar: exactly one of Text, Number, or
// Boolean is meaningful, selected by Kind.
type ClaimPropertyValue struct {
	Kind    ClaimValueKind
	Text    string
	Number  int32
	Boolean bool
}

// NewClaimText builds a Text-kind claim value.
func NewClaimText(v string) ClaimPropertyValue { return ClaimPropertyValue{Kind: ClaimText, Text: v} }

// NewClaimNumber builds a Number-kind claim value.
func NewClaimNumber(v int32) ClaimPropertyValue {
	return ClaimPropertyValue{Kind: ClaimNumber, Number: v}
}

// NewClaimBoolean builds a Boolean-kind claim value.
func NewClaimBoolean(v bool) ClaimPropertyValue {
	return ClaimPropertyValue{Kind: ClaimBoolean, Boolean: v}
}

type claimValueWire struct {
	Kind    ClaimValueKind `json:"kind"`
	Text    *string        `json:"text,omitempty"`
	Number  *int32         `json:"number,omitempty"`
	Boolean *bool          `json:"boolean,omitempty"`
}

// MarshalJSON encodes the claim scalar as an explicit tagged document.
func (v ClaimPropertyValue) MarshalJSON() ([]byte, error) {
	wire := claimValueWire{Kind: v.Kind}
	switch v.Kind {
	case ClaimText:
		wire.Text = &v.Text
	case ClaimNumber:
		wire.Number = &v.Number
	case ClaimBoolean:
		wire.Boolean = &v.Boolean
	default:
		return nil, fmt.Errorf("vctypes: claim value has unknown kind %q", v.Kind)
	}
	return json.Marshal(wire)
}

// UnmarshalJSON decodes a tagged claim scalar.
func (v *ClaimPropertyValue) UnmarshalJSON(data []byte) error {
	var wire claimValueWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	switch wire.Kind {
	case ClaimText:
		if wire.Text == nil {
			return fmt.Errorf("vctypes: claim value kind %q missing text", wire.Kind)
		}
		v.Text = *wire.Text
	case ClaimNumber:
		if wire.Number == nil {
			return fmt.Errorf("vctypes: claim value kind %q missing number", wire.Kind)
		}
		v.Number = *wire.Number
	case ClaimBoolean:
		if wire.Boolean == nil {
			return fmt.Errorf("vctypes: claim value kind %q missing boolean", wire.Kind)
		}
		v.Boolean = *wire.Boolean
	default:
		return fmt.Errorf("vctypes: claim value has unknown kind %q", wire.Kind)
	}
	v.Kind = wire.Kind
	return nil
}

// ClaimProperty mirrors SchemaProperty's recursive shape: exactly one of
// Value, Array, or Map is populated, selected by Kind.
type ClaimProperty struct {
	Kind  PropertyKind
	Value *ClaimPropertyValue
	Array []ClaimProperty
	Map   map[string]ClaimProperty
}

// NewClaimValue builds a Value-kind claim node.
func NewClaimValue(v ClaimPropertyValue) ClaimProperty {
	return ClaimProperty{Kind: KindValue, Value: &v}
}

// NewClaimArray builds an Array-kind claim node.
func NewClaimArray(elements ...ClaimProperty) ClaimProperty {
	return ClaimProperty{Kind: KindArray, Array: elements}
}

// NewClaimMap builds a Map-kind claim node.
func NewClaimMap(fields map[string]ClaimProperty) ClaimProperty {
	return ClaimProperty{Kind: KindMap, Map: fields}
}

type claimPropertyWire struct {
	Kind  PropertyKind             `json:"kind"`
	Value *ClaimPropertyValue      `json:"value,omitempty"`
	Array []ClaimProperty          `json:"array,omitempty"`
	Map   map[string]ClaimProperty `json:"map,omitempty"`
}

// MarshalJSON encodes the tagged union as an explicit {"kind": ..., ...}
// document.
func (p ClaimProperty) MarshalJSON() ([]byte, error) {
	wire := claimPropertyWire{Kind: p.Kind}
	switch p.Kind {
	case KindValue:
		wire.Value = p.Value
	case KindArray:
		wire.Array = p.Array
		if wire.Array == nil {
			wire.Array = []ClaimProperty{}
		}
	case KindMap:
		wire.Map = p.Map
		if wire.Map == nil {
			wire.Map = map[string]ClaimProperty{}
		}
	default:
		return nil, fmt.Errorf("vctypes: claim property has unknown kind %q", p.Kind)
	}
	return json.Marshal(wire)
}

// UnmarshalJSON decodes the tagged union.
func (p *ClaimProperty) UnmarshalJSON(data []byte) error {
	var wire claimPropertyWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	switch wire.Kind {
	case KindValue:
		if wire.Value == nil {
			return fmt.Errorf("vctypes: claim property kind %q missing value", wire.Kind)
		}
	case KindArray, KindMap:
	default:
		return fmt.Errorf("vctypes: claim property has unknown kind %q", wire.Kind)
	}
	p.Kind = wire.Kind
	p.Value = wire.Value
	p.Array = wire.Array
	p.Map = wire.Map
	return nil
}

// AllDefaults derives the canonical "all-defaults" claim tree from a
// schema tree: Text -> "", Number -> 0, Boolean -> false, arrays and maps
// built element-wise / key-wise. Used by conformance property tests and
// as a starting point for credential subjects built from a schema.
func AllDefaults(schema SchemaProperty) ClaimProperty {
	switch schema.Kind {
	case KindValue:
		switch schema.Value.LeafType {
		case LeafText:
			return NewClaimValue(NewClaimText(""))
		case LeafNumber:
			return NewClaimValue(NewClaimNumber(0))
		case LeafBoolean:
			return NewClaimValue(NewClaimBoolean(false))
		}
		return ClaimProperty{}
	case KindArray:
		elements := make([]ClaimProperty, len(schema.Array))
		for i, el := range schema.Array {
			elements[i] = AllDefaults(el)
		}
		return NewClaimArray(elements...)
	case KindMap:
		fields := make(map[string]ClaimProperty, len(schema.Map))
		for k, v := range schema.Map {
			fields[k] = AllDefaults(v)
		}
		return NewClaimMap(fields)
	default:
		return ClaimProperty{}
	}
}

// AllDefaultsSubject derives an all-defaults credential_subject map for
// every property in a schema's property set.
func AllDefaultsSubject(schema CredentialSchema) map[string]ClaimProperty {
	subject := make(map[string]ClaimProperty, len(schema.Properties))
	for k, v := range schema.Properties {
		subject[k] = AllDefaults(v)
	}
	return subject
}

package vctypes

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exampleSchema() CredentialSchema {
	return CredentialSchema{
		ID:          MustURL("https://example.com/schemas/driver-license"),
		Type:        "CredentialSchema",
		Name:        "Driver License",
		Description: "A driver license credential schema",
		Properties: map[string]SchemaProperty{
			"name": NewSchemaValue(LeafText, "full legal name"),
			"age":  NewSchemaValue(LeafNumber, "age in years"),
			"endorsements": NewSchemaArray(
				NewSchemaValue(LeafText, "first endorsement"),
				NewSchemaValue(LeafText, "second endorsement"),
			),
			"address": NewSchemaMap(map[string]SchemaProperty{
				"street": NewSchemaValue(LeafText, "street address"),
				"city":   NewSchemaValue(LeafText, "city"),
			}),
		},
	}
}

func TestSchemaPropertyRoundTrip(t *testing.T) {
	schema := exampleSchema()

	data, err := json.Marshal(schema)
	require.NoError(t, err)

	var decoded CredentialSchema
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.True(t, schema.Equal(decoded), "parse(serialize(schema)) must equal schema")
}

func TestSchemaPropertyUnmarshalRejectsUnknownLeafType(t *testing.T) {
	var prop SchemaProperty
	err := json.Unmarshal([]byte(`{"kind":"value","value":{"leaf_type":"color"}}`), &prop)
	require.Error(t, err)
}

func TestSchemaPropertyUnmarshalRejectsUnknownKind(t *testing.T) {
	var prop SchemaProperty
	err := json.Unmarshal([]byte(`{"kind":"set"}`), &prop)
	require.Error(t, err)
}

func TestSchemaEqualDetectsLeafTypeSwap(t *testing.T) {
	schema := exampleSchema()
	mutated := exampleSchema()
	mutated.Properties["age"] = NewSchemaValue(LeafText, "age in years")

	assert.False(t, schema.Equal(mutated))
}

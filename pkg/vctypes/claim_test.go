package vctypes

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClaimPropertyRoundTrip(t *testing.T) {
	claim := NewClaimMap(map[string]ClaimProperty{
		"name": NewClaimValue(NewClaimText("Jane Doe")),
		"age":  NewClaimValue(NewClaimNumber(34)),
		"tags": NewClaimArray(
			NewClaimValue(NewClaimText("a")),
			NewClaimValue(NewClaimText("b")),
		),
	})

	data, err := json.Marshal(claim)
	require.NoError(t, err)

	var decoded ClaimProperty
	require.NoError(t, json.Unmarshal(data, &decoded))

	redata, err := json.Marshal(decoded)
	require.NoError(t, err)
	assert.JSONEq(t, string(data), string(redata))
}

func TestAllDefaultsMatchesSchemaShape(t *testing.T) {
	schema := exampleSchema()
	subject := AllDefaultsSubject(schema)

	require.Contains(t, subject, "name")
	require.Contains(t, subject, "endorsements")
	assert.Equal(t, KindValue, subject["name"].Kind)
	assert.Equal(t, ClaimText, subject["name"].Value.Kind)
	assert.Equal(t, "", subject["name"].Value.Text)

	require.Len(t, subject["endorsements"].Array, 2)
	assert.Equal(t, KindMap, subject["address"].Kind)
}

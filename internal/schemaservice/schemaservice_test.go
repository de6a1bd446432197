package schemaservice

import (
	"context"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ParichayaHQ/credentiald/internal/registry"
	"github.com/ParichayaHQ/credentiald/internal/svcerr"
	"github.com/ParichayaHQ/credentiald/pkg/vctypes"
)

func newService() *Service {
	store := registry.NewMemoryStore(logr.Discard())
	return New(store, logr.Discard())
}

func exampleProperties() map[string]vctypes.SchemaProperty {
	return map[string]vctypes.SchemaProperty{
		"name": vctypes.NewSchemaValue(vctypes.LeafText, ""),
		"age":  vctypes.NewSchemaValue(vctypes.LeafNumber, ""),
		"address": vctypes.NewSchemaMap(map[string]vctypes.SchemaProperty{
			"city": vctypes.NewSchemaValue(vctypes.LeafText, ""),
		}),
	}
}

func TestRegisterSchemaThenGetReturnsExactTree(t *testing.T) {
	ctx := context.Background()
	svc := newService()
	props := exampleProperties()

	id, err := svc.RegisterSchema(ctx, "https://example.com/schemas/1", "CredentialSchema", "Example", "an example schema", props)
	require.NoError(t, err)

	got, err := svc.GetSchema(ctx, id.String())
	require.NoError(t, err)
	assert.Equal(t, "Example", got.Name)
	assert.Equal(t, "an example schema", got.Description)
	assert.Len(t, got.Properties, len(props))
	for k, v := range props {
		assert.True(t, v.Equal(got.Properties[k]), "property %s must round-trip unchanged", k)
	}
}

func TestGetSchemaUnknownIsNotFound(t *testing.T) {
	svc := newService()
	_, err := svc.GetSchema(context.Background(), "https://example.com/schemas/missing")
	require.Error(t, err)
	assert.True(t, svcerr.IsNotFound(err))
}

func TestRegisterSchemaRejectsEmptyID(t *testing.T) {
	svc := newService()
	_, err := svc.RegisterSchema(context.Background(), "", "CredentialSchema", "Example", "", exampleProperties())
	require.Error(t, err)
	assert.True(t, svcerr.IsBadInput(err))
}

func TestListSchemasReturnsRegistered(t *testing.T) {
	ctx := context.Background()
	svc := newService()
	_, err := svc.RegisterSchema(ctx, "https://example.com/schemas/1", "CredentialSchema", "A", "", exampleProperties())
	require.NoError(t, err)
	_, err = svc.RegisterSchema(ctx, "https://example.com/schemas/2", "CredentialSchema", "B", "", exampleProperties())
	require.NoError(t, err)

	schemas, err := svc.ListSchemas(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, schemas, 2)
}

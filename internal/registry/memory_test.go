package registry

import (
	"context"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ParichayaHQ/credentiald/pkg/vctypes"
)

func TestPutGetIssuerRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(logr.Discard())

	issuer := vctypes.NewIssuer(vctypes.MustURL("https://example.com/issuers/1"), "Acme University")
	require.NoError(t, store.PutIssuer(ctx, issuer))

	got, err := store.GetIssuer(ctx, issuer.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, issuer.Name, got.Name)
	assert.True(t, issuer.ID.Equal(got.ID))
}

func TestGetIssuerAbsentIsNilNotError(t *testing.T) {
	store := NewMemoryStore(logr.Discard())
	got, err := store.GetIssuer(context.Background(), vctypes.MustURL("https://example.com/issuers/unknown"))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestPutIssuerIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(logr.Discard())
	issuer := vctypes.NewIssuer(vctypes.MustURL("https://example.com/issuers/1"), "Acme University")

	require.NoError(t, store.PutIssuer(ctx, issuer))
	require.NoError(t, store.PutIssuer(ctx, issuer))

	issuers, err := store.ListIssuers(ctx, 20)
	require.NoError(t, err)
	assert.Len(t, issuers, 1)
}

func TestAttachVerificationMethodEnforcesControllerID(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(logr.Discard())
	issuerID := vctypes.MustURL("https://example.com/issuers/1")
	issuer := vctypes.NewIssuer(issuerID, "Acme University")
	require.NoError(t, store.PutIssuer(ctx, issuer))

	vm := vctypes.VerificationMethod{
		ID:             vctypes.MustURL("https://example.com/issuers/1#key-1"),
		Type:           "EcdsaSecp256k1VerificationKey2019",
		ControllerID:   issuerID,
		PublicKeyBytes: []byte{0x02, 0x03},
	}
	require.NoError(t, store.AttachVerificationMethod(ctx, issuerID, vm))

	got, err := store.GetIssuer(ctx, issuerID)
	require.NoError(t, err)
	require.Len(t, got.VerificationMethods, 1)
	assert.True(t, got.VerificationMethods[0].ControllerID.Equal(issuerID))
}

func TestAttachVerificationMethodUnknownIssuer(t *testing.T) {
	store := NewMemoryStore(logr.Discard())
	err := store.AttachVerificationMethod(context.Background(), vctypes.MustURL("https://example.com/issuers/missing"), vctypes.VerificationMethod{
		ID: vctypes.MustURL("https://example.com/issuers/missing#key-1"),
	})
	require.Error(t, err)
	assert.True(t, IsUnknownIssuer(err))
}

func TestListIssuersRespectsLimit(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(logr.Discard())
	for i := 0; i < 5; i++ {
		id := vctypes.MustURL("https://example.com/issuers/" + string(rune('a'+i)))
		require.NoError(t, store.PutIssuer(ctx, vctypes.NewIssuer(id, "issuer")))
	}

	issuers, err := store.ListIssuers(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, issuers, 3)
}

func TestListIssuersDefaultsLimitWhenOmittedOrNegative(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(logr.Discard())
	for i := 0; i < 5; i++ {
		id := vctypes.MustURL("https://example.com/issuers/" + string(rune('a'+i)))
		require.NoError(t, store.PutIssuer(ctx, vctypes.NewIssuer(id, "issuer")))
	}

	issuers, err := store.ListIssuers(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, issuers, 5)

	issuers, err = store.ListIssuers(ctx, -7)
	require.NoError(t, err)
	assert.Len(t, issuers, 5)
}

func TestSchemaRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(logr.Discard())
	schema := vctypes.CredentialSchema{
		ID:   vctypes.MustURL("https://example.com/schemas/1"),
		Type: "CredentialSchema",
		Name: "Example",
		Properties: map[string]vctypes.SchemaProperty{
			"name": vctypes.NewSchemaValue(vctypes.LeafText, ""),
		},
	}
	require.NoError(t, store.PutSchema(ctx, schema))

	got, err := store.GetSchema(ctx, schema.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, schema.Equal(*got))
}

func TestOperationsFailAfterClose(t *testing.T) {
	store := NewMemoryStore(logr.Discard())
	require.NoError(t, store.Close())

	_, err := store.GetIssuer(context.Background(), vctypes.MustURL("https://example.com/issuers/1"))
	require.Error(t, err)
}

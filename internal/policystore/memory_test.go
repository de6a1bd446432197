package policystore

import (
	"context"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ParichayaHQ/credentiald/pkg/vctypes"
)

func TestPutGetVerifierRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(logr.Discard())

	verifier := vctypes.Verifier{
		ID:       vctypes.MustURL("https://example.com/verifiers/1"),
		Name:     "Acme Admissions",
		SchemaID: vctypes.MustURL("https://example.com/schemas/1"),
	}
	require.NoError(t, store.PutVerifier(ctx, verifier))

	got, err := store.GetVerifier(ctx, verifier.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, verifier, *got)
}

func TestGetVerifierAbsentIsNilNotError(t *testing.T) {
	store := NewMemoryStore(logr.Discard())
	got, err := store.GetVerifier(context.Background(), vctypes.MustURL("https://example.com/verifiers/missing"))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestListVerifiersRespectsLimit(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(logr.Discard())
	for i := 0; i < 4; i++ {
		id := vctypes.MustURL("https://example.com/verifiers/" + string(rune('a'+i)))
		require.NoError(t, store.PutVerifier(ctx, vctypes.Verifier{ID: id, Name: "v", SchemaID: vctypes.MustURL("https://example.com/schemas/1")}))
	}

	verifiers, err := store.ListVerifiers(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, verifiers, 2)
}

func TestListVerifiersDefaultsLimitWhenOmittedOrNegative(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(logr.Discard())
	for i := 0; i < 4; i++ {
		id := vctypes.MustURL("https://example.com/verifiers/" + string(rune('a'+i)))
		require.NoError(t, store.PutVerifier(ctx, vctypes.Verifier{ID: id, Name: "v", SchemaID: vctypes.MustURL("https://example.com/schemas/1")}))
	}

	verifiers, err := store.ListVerifiers(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, verifiers, 4)

	verifiers, err = store.ListVerifiers(ctx, -3)
	require.NoError(t, err)
	assert.Len(t, verifiers, 4)
}

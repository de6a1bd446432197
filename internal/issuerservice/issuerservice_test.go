package issuerservice

import (
	"context"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ParichayaHQ/credentiald/internal/registry"
	"github.com/ParichayaHQ/credentiald/internal/svcerr"
	"github.com/ParichayaHQ/credentiald/internal/vault"
)

func newService() *Service {
	store := registry.NewMemoryStore(logr.Discard())
	kv := vault.NewMemoryVault()
	return New(store, kv, logr.Discard())
}

func TestCreateIssuerThenGetReturnsEqual(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	id, err := svc.CreateIssuer(ctx, "https://example.com/issuers/1", "Acme University")
	require.NoError(t, err)

	got, err := svc.GetIssuer(ctx, id.String())
	require.NoError(t, err)
	assert.Equal(t, "Acme University", got.Name)
	assert.Empty(t, got.VerificationMethods)
}

func TestGetIssuerUnknownIsNotFound(t *testing.T) {
	svc := newService()
	_, err := svc.GetIssuer(context.Background(), "https://example.com/issuers/missing")
	require.Error(t, err)
	assert.True(t, svcerr.IsNotFound(err))
}

func TestCreateIssuerRejectsEmptyID(t *testing.T) {
	svc := newService()
	_, err := svc.CreateIssuer(context.Background(), "", "Acme University")
	require.Error(t, err)
	assert.True(t, svcerr.IsBadInput(err))
}

func TestAttachVerificationMethodPlacesKeyInVault(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	issuerID, err := svc.CreateIssuer(ctx, "https://example.com/issuers/1", "Acme University")
	require.NoError(t, err)

	vmID, err := svc.AttachVerificationMethod(ctx, issuerID.String(), "https://example.com/issuers/1#key-1", "EcdsaSecp256k1VerificationKey2019")
	require.NoError(t, err)

	issuer, err := svc.GetIssuer(ctx, issuerID.String())
	require.NoError(t, err)
	require.Len(t, issuer.VerificationMethods, 1)
	vm := issuer.VerificationMethods[0]
	assert.True(t, vm.ID.Equal(vmID))
	// A secp256k1 compressed public key is 33 bytes.
	assert.Len(t, vm.PublicKeyBytes, 33)

	sig, err := svc.vault.SignWith(ctx, vmID, make([]byte, 32))
	require.NoError(t, err, "the key minted for this verification method must be usable for signing")
	assert.NotEmpty(t, sig)
}

func TestAttachVerificationMethodUnknownIssuerIsBadInput(t *testing.T) {
	svc := newService()
	_, err := svc.AttachVerificationMethod(context.Background(), "https://example.com/issuers/missing", "https://example.com/issuers/missing#key-1", "EcdsaSecp256k1VerificationKey2019")
	require.Error(t, err)
	assert.True(t, svcerr.IsBadInput(err))
}

func TestListIssuersReturnsCreated(t *testing.T) {
	ctx := context.Background()
	svc := newService()
	_, err := svc.CreateIssuer(ctx, "https://example.com/issuers/1", "A")
	require.NoError(t, err)
	_, err = svc.CreateIssuer(ctx, "https://example.com/issuers/2", "B")
	require.NoError(t, err)

	issuers, err := svc.ListIssuers(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, issuers, 2)
}

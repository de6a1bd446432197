package issuance

import (
	"context"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ParichayaHQ/credentiald/internal/registry"
	"github.com/ParichayaHQ/credentiald/internal/suite"
	"github.com/ParichayaHQ/credentiald/internal/svcerr"
	"github.com/ParichayaHQ/credentiald/internal/vault"
	"github.com/ParichayaHQ/credentiald/pkg/vctypes"
)

type fixture struct {
	svc    *Service
	store  registry.Store
	kv     vault.Vault
	mock   *clock.Mock
	issuer vctypes.URL
	vmID   vctypes.URL
	schema vctypes.URL
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	store := registry.NewMemoryStore(logr.Discard())
	kv := vault.NewMemoryVault()
	cryptoSuite := suite.New()
	mock := clock.NewMock()
	mock.Set(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))
	svc := NewWithClock(store, kv, cryptoSuite, mock, logr.Discard())

	issuerID := vctypes.MustURL("https://example.com/issuers/1")
	require.NoError(t, store.PutIssuer(ctx, vctypes.NewIssuer(issuerID, "Acme University")))

	vmID := vctypes.MustURL("https://example.com/issuers/1#key-1")
	pub, err := kv.CreateKeyForVerificationMethod(ctx, vmID)
	require.NoError(t, err)
	require.NoError(t, store.AttachVerificationMethod(ctx, issuerID, vctypes.VerificationMethod{
		ID:             vmID,
		Type:           "EcdsaSecp256k1VerificationKey2019",
		ControllerID:   issuerID,
		PublicKeyBytes: pub,
	}))

	schemaID := vctypes.MustURL("https://example.com/schemas/1")
	require.NoError(t, store.PutSchema(ctx, vctypes.CredentialSchema{
		ID:   schemaID,
		Type: "CredentialSchema",
		Name: "Example",
		Properties: map[string]vctypes.SchemaProperty{
			"name": vctypes.NewSchemaValue(vctypes.LeafText, ""),
		},
	}))

	return fixture{svc: svc, store: store, kv: kv, mock: mock, issuer: issuerID, vmID: vmID, schema: schemaID}
}

func exampleRequest(f fixture) IssueCredentialRequest {
	return IssueCredentialRequest{
		Context:      []string{vctypes.ContextV2.String()},
		CredentialID: "https://example.com/credentials/1",
		Type:         []string{"VerifiableCredential"},
		IssuerID:     f.issuer.String(),
		ValidFrom:    "2026-01-01T00:00:00Z",
		ValidUntil:   "2026-12-31T00:00:00Z",
		CredentialSubject: map[string]vctypes.ClaimProperty{
			"name": vctypes.NewClaimValue(vctypes.NewClaimText("Jane Doe")),
		},
		CredentialSchemaIDs: []string{f.schema.String()},
	}
}

func TestIssueCredentialProducesSingleProofWithIssuerKey(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	vc, err := f.svc.IssueCredential(ctx, exampleRequest(f))
	require.NoError(t, err)

	require.Len(t, vc.Proof, 1)
	assert.True(t, vc.Proof[0].VerificationMethod.Equal(f.vmID))
	assert.NotEmpty(t, vc.Proof[0].ProofValue)
	assert.Equal(t, f.mock.Now().UTC(), vc.Proof[0].Created)
	require.Len(t, vc.Credential.CredentialSchema, 1)
	assert.True(t, vc.Credential.CredentialSchema[0].ID.Equal(f.schema))
}

func TestIssueCredentialUnknownIssuerIsBadInput(t *testing.T) {
	f := newFixture(t)
	req := exampleRequest(f)
	req.IssuerID = "https://example.com/issuers/missing"

	_, err := f.svc.IssueCredential(context.Background(), req)
	require.Error(t, err)
	assert.True(t, svcerr.IsBadInput(err))
}

func TestIssueCredentialUnknownSchemaIsBadInput(t *testing.T) {
	f := newFixture(t)
	req := exampleRequest(f)
	req.CredentialSchemaIDs = []string{"https://example.com/schemas/missing"}

	_, err := f.svc.IssueCredential(context.Background(), req)
	require.Error(t, err)
	assert.True(t, svcerr.IsBadInput(err))
}

func TestIssueCredentialRejectsValidFromAfterValidUntil(t *testing.T) {
	f := newFixture(t)
	req := exampleRequest(f)
	req.ValidFrom, req.ValidUntil = req.ValidUntil, req.ValidFrom

	_, err := f.svc.IssueCredential(context.Background(), req)
	require.Error(t, err)
	assert.True(t, svcerr.IsBadInput(err))
}

func TestIssueCredentialIssuerWithoutKeysFails(t *testing.T) {
	ctx := context.Background()
	store := registry.NewMemoryStore(logr.Discard())
	kv := vault.NewMemoryVault()
	svc := New(store, kv, suite.New(), logr.Discard())

	issuerID := vctypes.MustURL("https://example.com/issuers/keyless")
	require.NoError(t, store.PutIssuer(ctx, vctypes.NewIssuer(issuerID, "Keyless Co")))

	req := IssueCredentialRequest{
		Context:           []string{vctypes.ContextV2.String()},
		CredentialID:      "https://example.com/credentials/1",
		Type:              []string{"VerifiableCredential"},
		IssuerID:          issuerID.String(),
		ValidFrom:         "2026-01-01T00:00:00Z",
		ValidUntil:        "2026-12-31T00:00:00Z",
		CredentialSubject: map[string]vctypes.ClaimProperty{"name": vctypes.NewClaimValue(vctypes.NewClaimText("x"))},
	}

	_, err := svc.IssueCredential(ctx, req)
	require.Error(t, err)
	assert.True(t, svcerr.IsInternal(err))
}

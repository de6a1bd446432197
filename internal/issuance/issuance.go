// Package issuance turns a signing request into a signed
// VerifiableCredential: parse and validate the request, resolve the
// issuer and schemas from the registry, construct the credential, and
// sign it with the issuer's key.
package issuance

import (
	"context"
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/go-logr/logr"

	"github.com/ParichayaHQ/credentiald/internal/obslog"
	"github.com/ParichayaHQ/credentiald/internal/registry"
	"github.com/ParichayaHQ/credentiald/internal/suite"
	"github.com/ParichayaHQ/credentiald/internal/svcerr"
	"github.com/ParichayaHQ/credentiald/internal/vault"
	"github.com/ParichayaHQ/credentiald/pkg/vctypes"
)

// SchemaLinkRequest names one schema a credential should link against.
type SchemaLinkRequest struct {
	SchemaID string
}

// IssueCredentialRequest is the caller-supplied material for one
// credential-issuance request. All identifier and timestamp fields
// arrive as raw strings and are validated here.
type IssueCredentialRequest struct {
	Context             []string
	CredentialID        string
	Type                []string
	IssuerID            string
	ValidFrom           string
	ValidUntil          string
	CredentialSubject   map[string]vctypes.ClaimProperty
	CredentialSchemaIDs []string
}

// Service issues verifiable credentials on behalf of registered issuers.
type Service struct {
	registry registry.Store
	vault    vault.Vault
	suite    *suite.Suite
	clock    clock.Clock
	log      logr.Logger
}

// New constructs an issuance service on the real wall clock; tests
// substitute clock.NewMock() via NewWithClock to pin Created.
func New(store registry.Store, kv vault.Vault, cryptoSuite *suite.Suite, log logr.Logger) *Service {
	return &Service{registry: store, vault: kv, suite: cryptoSuite, clock: clock.New(), log: log}
}

// NewWithClock is New, but with an explicit clock — for tests that need
// a pinned Created timestamp.
func NewWithClock(store registry.Store, kv vault.Vault, cryptoSuite *suite.Suite, c clock.Clock, log logr.Logger) *Service {
	return &Service{registry: store, vault: kv, suite: cryptoSuite, clock: c, log: log}
}

// IssueCredential parses and validates the request, resolves the
// issuer and schemas from the registry, constructs the credential,
// selects a verification method, and runs the cryptographic suite to
// produce its single Proof.
func (s *Service) IssueCredential(ctx context.Context, req IssueCredentialRequest) (*vctypes.VerifiableCredential, error) {
	const op = "IssueCredential"

	// Step 1: parse and validate every URL-shaped field.
	contextURLs := make([]vctypes.URL, 0, len(req.Context))
	for _, raw := range req.Context {
		u, err := vctypes.NewURL(raw)
		if err != nil {
			obslog.LogBadInput(s.log, op, "context", err)
			return nil, svcerr.NewField(op, "context", err)
		}
		contextURLs = append(contextURLs, u)
	}
	credID, err := vctypes.NewURL(req.CredentialID)
	if err != nil {
		obslog.LogBadInput(s.log, op, "id", err)
		return nil, svcerr.NewField(op, "id", err)
	}
	typeURLs := make([]vctypes.URL, 0, len(req.Type))
	for _, raw := range req.Type {
		u, err := vctypes.NewURL(raw)
		if err != nil {
			obslog.LogBadInput(s.log, op, "type", err)
			return nil, svcerr.NewField(op, "type", err)
		}
		typeURLs = append(typeURLs, u)
	}
	issuerID, err := vctypes.NewURL(req.IssuerID)
	if err != nil {
		obslog.LogBadInput(s.log, op, "issuer", err)
		return nil, svcerr.NewField(op, "issuer", err)
	}

	// Step 2: parse RFC3339 validity bounds.
	validFrom, err := time.Parse(time.RFC3339, req.ValidFrom)
	if err != nil {
		obslog.LogBadInput(s.log, op, "valid_from", err)
		return nil, svcerr.NewField(op, "valid_from", err)
	}
	validUntil, err := time.Parse(time.RFC3339, req.ValidUntil)
	if err != nil {
		obslog.LogBadInput(s.log, op, "valid_until", err)
		return nil, svcerr.NewField(op, "valid_until", err)
	}

	// Step 3: resolve the issuer.
	issuer, err := s.registry.GetIssuer(ctx, issuerID)
	if err != nil {
		obslog.LogInternal(s.log, op, err)
		return nil, svcerr.New(svcerr.Internal, op, err)
	}
	if issuer == nil {
		return nil, svcerr.BadInputf(op, "issuer", "issuer %s not found", req.IssuerID)
	}

	// Step 4: resolve every requested schema to an {id, type} link.
	links := make([]vctypes.CredentialSchemaLink, 0, len(req.CredentialSchemaIDs))
	for _, raw := range req.CredentialSchemaIDs {
		schemaID, err := vctypes.NewURL(raw)
		if err != nil {
			obslog.LogBadInput(s.log, op, "credential_schema", err)
			return nil, svcerr.NewField(op, "credential_schema", err)
		}
		schema, err := s.registry.GetSchema(ctx, schemaID)
		if err != nil {
			obslog.LogInternal(s.log, op, err)
			return nil, svcerr.New(svcerr.Internal, op, err)
		}
		if schema == nil {
			return nil, svcerr.BadInputf(op, "credential_schema", "schema %s not found", raw)
		}
		links = append(links, schema.Link())
	}

	// Step 5: construct the credential. NewCredential itself enforces
	// valid_from <= valid_until.
	cred, err := vctypes.NewCredential(contextURLs, credID, typeURLs, issuer.ID, validFrom, validUntil, req.CredentialSubject, links)
	if err != nil {
		obslog.LogBadInput(s.log, op, "valid_until", err)
		return nil, svcerr.NewField(op, "valid_until", err)
	}

	// Step 6: select a verification method. An issuer with no keys
	// cannot mint.
	if len(issuer.VerificationMethods) == 0 {
		err := fmt.Errorf("issuer %s has no verification methods", issuer.ID)
		obslog.LogInternal(s.log, op, err)
		return nil, svcerr.New(svcerr.Internal, op, err)
	}
	vm := issuer.VerificationMethods[0]

	// Step 7: build proof options. proof_purpose/domain/challenge are
	// the suite's fixed placeholders, not per-request values; Created is
	// the only field this service supplies at issuance time.
	opts := suite.ProofOptions{
		VerificationMethod: vm.ID,
		ProofPurpose:       suite.FixedProofPurpose,
		Created:            s.clock.Now().UTC(),
		Domain:             suite.FixedDomain,
		Challenge:          suite.FixedChallenge,
	}

	// Step 8: run the suite and assemble the single-proof credential.
	proof, err := s.suite.GenerateProof(ctx, cred, s.vault, opts)
	if err != nil {
		obslog.LogInternal(s.log, op, err)
		return nil, svcerr.New(svcerr.Internal, op, err)
	}

	return &vctypes.VerifiableCredential{
		Credential: cred,
		Proof:      []vctypes.Proof{proof},
	}, nil
}

// Package verifyengine implements the verifier engine: four ordered,
// short-circuiting predicates over a presented VerifiableCredential
// (format, expiry, schema conformance, proof), plus verifier-policy
// CRUD over policystore.
package verifyengine

import (
	"context"
	"time"

	"github.com/go-logr/logr"

	"github.com/ParichayaHQ/credentiald/internal/conform"
	"github.com/ParichayaHQ/credentiald/internal/obslog"
	"github.com/ParichayaHQ/credentiald/internal/policystore"
	"github.com/ParichayaHQ/credentiald/internal/registry"
	"github.com/ParichayaHQ/credentiald/internal/suite"
	"github.com/ParichayaHQ/credentiald/internal/svcerr"
	"github.com/ParichayaHQ/credentiald/pkg/vctypes"
)

// Result is the outcome of VerifyCredential: a verification failure is a
// successful response carrying Verified=false and a Reason, never an
// error.
type Result struct {
	Verified bool
	Reason   string
}

func ok() Result                { return Result{Verified: true} }
func fail(reason string) Result { return Result{Verified: false, Reason: reason} }

// Reason strings returned to API consumers. Fixed text: clients match
// on these.
const (
	ReasonInvalidFormat = "Invalid credential format."
	ReasonInvalidExpiry = "Invalid credential expiry."
	ReasonInvalidSchema = "Invalid credential schema."
	ReasonInvalidProof  = "Invalid verifiable credential proof."
)

// Service evaluates presented credentials against registered issuers
// and schemas, and manages verifier policy records.
type Service struct {
	registry registry.Store
	policies policystore.Store
	suite    *suite.Suite
	log      logr.Logger
}

// New constructs a verifier engine.
func New(reg registry.Store, policies policystore.Store, cryptoSuite *suite.Suite, log logr.Logger) *Service {
	return &Service{registry: reg, policies: policies, suite: cryptoSuite, log: log}
}

// CreateVerifier registers a verifier policy naming the schema a
// presented credential's subject must conform to.
func (s *Service) CreateVerifier(ctx context.Context, rawID, name, rawSchemaID string) (vctypes.URL, error) {
	const op = "CreateVerifier"
	id, err := vctypes.NewURL(rawID)
	if err != nil {
		obslog.LogBadInput(s.log, op, "id", err)
		return vctypes.URL{}, svcerr.NewField(op, "id", err)
	}
	schemaID, err := vctypes.NewURL(rawSchemaID)
	if err != nil {
		obslog.LogBadInput(s.log, op, "schema_id", err)
		return vctypes.URL{}, svcerr.NewField(op, "schema_id", err)
	}
	verifier := vctypes.Verifier{ID: id, Name: name, SchemaID: schemaID}
	if err := s.policies.PutVerifier(ctx, verifier); err != nil {
		obslog.LogInternal(s.log, op, err)
		return vctypes.URL{}, svcerr.New(svcerr.Internal, op, err)
	}
	return id, nil
}

// GetVerifier fetches a verifier policy by id.
func (s *Service) GetVerifier(ctx context.Context, rawID string) (*vctypes.Verifier, error) {
	const op = "GetVerifier"
	id, err := vctypes.NewURL(rawID)
	if err != nil {
		obslog.LogBadInput(s.log, op, "id", err)
		return nil, svcerr.NewField(op, "id", err)
	}
	verifier, err := s.policies.GetVerifier(ctx, id)
	if err != nil {
		obslog.LogInternal(s.log, op, err)
		return nil, svcerr.New(svcerr.Internal, op, err)
	}
	if verifier == nil {
		return nil, svcerr.NotFoundf(op, "verifier %s not found", rawID)
	}
	return verifier, nil
}

// ListVerifiers returns at most limit verifier policies.
func (s *Service) ListVerifiers(ctx context.Context, limit int) ([]vctypes.Verifier, error) {
	const op = "ListVerifiers"
	verifiers, err := s.policies.ListVerifiers(ctx, limit)
	if err != nil {
		obslog.LogInternal(s.log, op, err)
		return nil, svcerr.New(svcerr.Internal, op, err)
	}
	return verifiers, nil
}

// VerifyCredential runs the four ordered predicates against vc, as
// seen by the named verifier policy. Every predicate
// short-circuits the next on failure; only a policy- or
// registry-resolution problem (an unknown verifier, a verifier naming an
// unknown schema, a storage failure) surfaces as an error. A structurally
// or cryptographically rejected credential, including one whose issuer is
// unknown or has no verification methods, is reported as
// Result{Verified: false}, never an error.
func (s *Service) VerifyCredential(ctx context.Context, rawVerifierID string, vc vctypes.VerifiableCredential) (Result, error) {
	const op = "VerifyCredential"

	verifierID, err := vctypes.NewURL(rawVerifierID)
	if err != nil {
		obslog.LogBadInput(s.log, op, "verifier_id", err)
		return Result{}, svcerr.NewField(op, "verifier_id", err)
	}
	verifier, err := s.policies.GetVerifier(ctx, verifierID)
	if err != nil {
		obslog.LogInternal(s.log, op, err)
		return Result{}, svcerr.New(svcerr.Internal, op, err)
	}
	if verifier == nil {
		return Result{}, svcerr.BadInputf(op, "verifier_id", "verifier %s not found", rawVerifierID)
	}

	cred := vc.Credential

	// Predicate 1: format.
	if !cred.HasContext(vctypes.ContextV2) {
		return fail(ReasonInvalidFormat), nil
	}

	// Predicate 2: expiry.
	if !cred.ValidAt(time.Now().UTC()) {
		return fail(ReasonInvalidExpiry), nil
	}

	// Predicate 3: schema conformance, against the verifier's configured
	// schema.
	schema, err := s.registry.GetSchema(ctx, verifier.SchemaID)
	if err != nil {
		obslog.LogInternal(s.log, op, err)
		return Result{}, svcerr.New(svcerr.Internal, op, err)
	}
	if schema == nil {
		return Result{}, svcerr.Internalf(op, "verifier %s names unknown schema %s", rawVerifierID, verifier.SchemaID)
	}
	if !conform.Subject(schema.Properties, cred.CredentialSubject) {
		return fail(ReasonInvalidSchema), nil
	}

	// Predicate 4: proof, against the issuer's verification_method[0],
	// not the method named by proof.VerificationMethod. Single active
	// key per issuer; credentials signed by a rotated-out key fail here.
	if len(vc.Proof) == 0 {
		return fail(ReasonInvalidProof), nil
	}
	issuer, err := s.registry.GetIssuer(ctx, cred.Issuer)
	if err != nil {
		obslog.LogInternal(s.log, op, err)
		return Result{}, svcerr.New(svcerr.Internal, op, err)
	}
	if issuer == nil || len(issuer.VerificationMethods) == 0 {
		return fail(ReasonInvalidProof), nil
	}
	vm := issuer.VerificationMethods[0]

	opts := suite.ProofOptions{
		VerificationMethod: vm.ID,
		ProofPurpose:       suite.FixedProofPurpose,
		Domain:             suite.FixedDomain,
		Challenge:          suite.FixedChallenge,
	}
	verified, err := s.suite.Verify(cred, vc.Proof[0], vm.PublicKeyBytes, opts)
	if err != nil || !verified {
		return fail(ReasonInvalidProof), nil
	}

	return ok(), nil
}

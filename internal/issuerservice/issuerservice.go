// Package issuerservice implements the issuer service facade: creating
// issuers and attaching verification methods, which in turn triggers
// key generation in the vault.
package issuerservice

import (
	"context"

	"github.com/go-logr/logr"

	"github.com/ParichayaHQ/credentiald/internal/obslog"
	"github.com/ParichayaHQ/credentiald/internal/registry"
	"github.com/ParichayaHQ/credentiald/internal/svcerr"
	"github.com/ParichayaHQ/credentiald/internal/vault"
	"github.com/ParichayaHQ/credentiald/pkg/vctypes"
)

// Service creates issuers and attaches verification methods to them.
type Service struct {
	store registry.Store
	vault vault.Vault
	log   logr.Logger
}

// New constructs an issuer service over a registry and a key vault.
func New(store registry.Store, kv vault.Vault, log logr.Logger) *Service {
	return &Service{store: store, vault: kv, log: log}
}

// CreateIssuer registers a new issuer with an empty verification-method
// list and returns its id.
func (s *Service) CreateIssuer(ctx context.Context, rawID, name string) (vctypes.URL, error) {
	const op = "CreateIssuer"
	id, err := vctypes.NewURL(rawID)
	if err != nil {
		obslog.LogBadInput(s.log, op, "id", err)
		return vctypes.URL{}, svcerr.NewField(op, "id", err)
	}
	issuer := vctypes.NewIssuer(id, name)
	if err := s.store.PutIssuer(ctx, issuer); err != nil {
		obslog.LogInternal(s.log, op, err)
		return vctypes.URL{}, svcerr.New(svcerr.Internal, op, err)
	}
	return id, nil
}

// GetIssuer fetches an issuer by id, reporting absence as NotFound.
func (s *Service) GetIssuer(ctx context.Context, rawID string) (*vctypes.Issuer, error) {
	const op = "GetIssuer"
	id, err := vctypes.NewURL(rawID)
	if err != nil {
		obslog.LogBadInput(s.log, op, "id", err)
		return nil, svcerr.NewField(op, "id", err)
	}
	issuer, err := s.store.GetIssuer(ctx, id)
	if err != nil {
		obslog.LogInternal(s.log, op, err)
		return nil, svcerr.New(svcerr.Internal, op, err)
	}
	if issuer == nil {
		return nil, svcerr.NotFoundf(op, "issuer %s not found", rawID)
	}
	detached := issuer.Clone()
	return &detached, nil
}

// ListIssuers returns at most limit issuers (0 or negative falls back
// to the registry's default).
func (s *Service) ListIssuers(ctx context.Context, limit int) ([]vctypes.Issuer, error) {
	const op = "ListIssuers"
	issuers, err := s.store.ListIssuers(ctx, limit)
	if err != nil {
		obslog.LogInternal(s.log, op, err)
		return nil, svcerr.New(svcerr.Internal, op, err)
	}
	return issuers, nil
}

// AttachVerificationMethod generates a fresh signing key in the vault,
// then appends a verification method referencing it to the named
// issuer. Ordering is vault-first: the two writes are not transactional
// across databases, and a crash between them must leave an orphaned
// signing key (no registry record) rather than an orphaned verification
// method (no key).
func (s *Service) AttachVerificationMethod(ctx context.Context, rawIssuerID, rawVMID, vmType string) (vctypes.URL, error) {
	const op = "AttachVerificationMethod"
	issuerID, err := vctypes.NewURL(rawIssuerID)
	if err != nil {
		obslog.LogBadInput(s.log, op, "issuer_id", err)
		return vctypes.URL{}, svcerr.NewField(op, "issuer_id", err)
	}
	vmID, err := vctypes.NewURL(rawVMID)
	if err != nil {
		obslog.LogBadInput(s.log, op, "verification_method_id", err)
		return vctypes.URL{}, svcerr.NewField(op, "verification_method_id", err)
	}

	publicKey, err := s.vault.CreateKeyForVerificationMethod(ctx, vmID)
	if err != nil {
		obslog.LogInternal(s.log, op, err)
		return vctypes.URL{}, svcerr.New(svcerr.Internal, op, err)
	}

	vm := vctypes.VerificationMethod{
		ID:             vmID,
		Type:           vmType,
		ControllerID:   issuerID,
		PublicKeyBytes: publicKey,
	}
	if err := s.store.AttachVerificationMethod(ctx, issuerID, vm); err != nil {
		if registry.IsUnknownIssuer(err) {
			obslog.LogBadInput(s.log, op, "issuer_id", err)
			return vctypes.URL{}, svcerr.NewField(op, "issuer_id", err)
		}
		obslog.LogInternal(s.log, op, err)
		return vctypes.URL{}, svcerr.New(svcerr.Internal, op, err)
	}
	return vmID, nil
}

// Package suite implements the cryptographic suite: a deterministic
// transform -> hash -> prove pipeline over a Credential, and its
// mirror-image verify pipeline. The transform is canonical JSON, the
// hash is BLAKE3, and proofs are ECDSA over secp256k1.
package suite

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"lukechampine.com/blake3"

	"github.com/ParichayaHQ/credentiald/pkg/vctypes"
)

// ProofID and ProofType identify this suite. ProofType is recorded on
// every Proof it produces; ProofID is not carried on the Proof.
const (
	ProofID   = "https://w3id.org/security#proof-ecdsa-secp256k1-2021"
	ProofType = "EcdsaSecp256k1Signature2021"
)

// Fixed placeholders for proof_purpose/domain/challenge. Every
// issuance and verification uses the same three constants; binding them
// per-request would require threading them through ProofOptions at both
// call sites, which is why they live here and not inline.
const (
	FixedProofPurpose = "Proof Purpose"
	FixedDomain       = "Proof Domain"
	FixedChallenge    = "Proof Challenge"
)

// Signer is the narrow capability the suite needs from a key vault: sign
// a digest with the key stored under a verification-method id. Suite
// depends on this interface, not internal/vault directly, so the two
// packages can be tested independently.
type Signer interface {
	SignWith(ctx context.Context, vmID vctypes.URL, digest []byte) ([]byte, error)
}

// ProofOptions parameterizes both GenerateProof and Verify.
type ProofOptions struct {
	VerificationMethod vctypes.URL
	ProofPurpose       string
	Created            time.Time
	Domain             string
	Challenge          string
}

// Suite is the ECDSA-over-secp256k1 cryptographic suite.
type Suite struct{}

// New constructs the suite. It carries no state: transform and hash are
// pure functions of their input, and prove/verify take the signer or
// public key as an explicit argument.
func New() *Suite { return &Suite{} }

// Transform serializes a credential to its canonical byte string: its
// JSON encoding. encoding/json marshals Go maps with keys sorted into
// lexicographic byte order, so credential_subject (an unordered map)
// always serializes to the same bytes and two equal credentials always
// hash to the same digest.
func (s *Suite) Transform(cred vctypes.Credential) ([]byte, error) {
	data, err := json.Marshal(cred)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransformFailure, err)
	}
	return data, nil
}

// Hash computes the BLAKE3 digest of transformed bytes, producing a
// 32-byte digest.
func (s *Suite) Hash(transformed []byte) [32]byte {
	return blake3.Sum256(transformed)
}

// GenerateProof runs transform -> hash -> prove: it signs the credential
// with the signing key named by opts.VerificationMethod and returns the
// resulting Proof.
func (s *Suite) GenerateProof(ctx context.Context, cred vctypes.Credential, signer Signer, opts ProofOptions) (vctypes.Proof, error) {
	transformed, err := s.Transform(cred)
	if err != nil {
		return vctypes.Proof{}, err
	}
	digest := s.Hash(transformed)
	sig, err := signer.SignWith(ctx, opts.VerificationMethod, digest[:])
	if err != nil {
		return vctypes.Proof{}, err
	}
	return vctypes.Proof{
		Type:               ProofType,
		Created:            opts.Created,
		VerificationMethod: opts.VerificationMethod,
		ProofPurpose:       opts.ProofPurpose,
		ProofValue:         sig,
	}, nil
}

// Verify runs transform -> hash -> verify: it re-derives the digest and
// checks proof.ProofValue against publicKey. A proof-purpose mismatch
// rejects before the signature or key is decoded.
func (s *Suite) Verify(cred vctypes.Credential, proof vctypes.Proof, publicKey []byte, opts ProofOptions) (bool, error) {
	if proof.ProofPurpose != opts.ProofPurpose {
		return false, ErrMismatchedProofPurpose
	}
	transformed, err := s.Transform(cred)
	if err != nil {
		return false, err
	}
	digest := s.Hash(transformed)

	sig, err := ecdsa.ParseDERSignature(proof.ProofValue)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrMalformedProof, err)
	}
	pubKey, err := secp256k1.ParsePubKey(publicKey)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	return sig.Verify(digest[:], pubKey), nil
}

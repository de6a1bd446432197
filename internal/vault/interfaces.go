// Package vault implements the issuer key vault: the only subsystem
// that handles private signing-key material. Keys are
// generated on demand, persisted under the verification-method id that
// names them, and never surfaced beyond CreateKeyForVerificationMethod's
// public-key return value and SignWith's signature return value.
package vault

import (
	"context"

	"github.com/ParichayaHQ/credentiald/pkg/vctypes"
)

// Vault is the key vault's public contract. It is process-wide and
// long-lived, kept on a database separate from the registry so that key
// material never participates in the registry's entity-listing
// serialization paths.
type Vault interface {
	// CreateKeyForVerificationMethod samples a fresh secp256k1 signing
	// key, persists its raw scalar bytes under vmID, and returns the
	// SEC1-encoded public key. The signing key itself is never returned.
	CreateKeyForVerificationMethod(ctx context.Context, vmID vctypes.URL) (publicKey []byte, err error)

	// SignWith loads the signing key stored under vmID and produces a
	// deterministic ECDSA signature over digest. Fails with an error
	// satisfying IsUnknownKey if absent, IsInvalidKeyMaterial if the
	// stored bytes do not decode as a secp256k1 scalar.
	SignWith(ctx context.Context, vmID vctypes.URL, digest []byte) (signature []byte, err error)

	// Close releases the underlying database handle.
	Close() error
}

package vault

import (
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

// generateSigningKey samples a fresh secp256k1 private key from a CSPRNG
// and returns its raw 32-byte scalar (for persistence) alongside the
// SEC1-encoded (compressed) public key.
func generateSigningKey() (scalar []byte, publicKey []byte, err error) {
	priv, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, nil, err
	}
	scalarBytes := priv.Serialize()
	pubBytes := priv.PubKey().SerializeCompressed()
	return scalarBytes, pubBytes, nil
}

// signDigest reconstructs a signing key from its raw scalar bytes and
// produces a deterministic (RFC 6979) ECDSA signature over digest.
func signDigest(scalar, digest []byte) ([]byte, error) {
	if len(scalar) != 32 {
		return nil, fmt.Errorf("expected 32-byte scalar, got %d bytes", len(scalar))
	}
	priv := secp256k1.PrivKeyFromBytes(scalar)
	sig := ecdsa.Sign(priv, digest)
	return sig.Serialize(), nil
}

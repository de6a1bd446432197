package suite

import "errors"

// Sentinel errors for the cryptographic suite's prove/verify pipeline.
var (
	ErrMismatchedProofPurpose = errors.New("suite: proof purpose does not match requested purpose")
	ErrMalformedProof         = errors.New("suite: proof_value does not decode as an ECDSA signature")
	ErrInvalidPublicKey       = errors.New("suite: public key does not decode as a secp256k1 point")
	ErrTransformFailure       = errors.New("suite: failed to transform credential to canonical bytes")
)

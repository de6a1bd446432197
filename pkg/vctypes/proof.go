package vctypes

import "time"

// Proof is the output of a cryptographic suite's prove stage and the
// input to its verify stage (internal/suite).
type Proof struct {
	Type               string    `json:"type"`
	Created            time.Time `json:"created"`
	VerificationMethod URL       `json:"verification_method"`
	ProofPurpose       string    `json:"proof_purpose"`
	ProofValue         []byte    `json:"proof_value"`
}

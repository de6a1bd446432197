package vctypes

import (
	"fmt"
	"time"
)

// CredentialStatus, RefreshService, TermsOfUse, and Evidence are empty
// placeholders: the data model carries slots for revocation status,
// refresh services, terms-of-use, and evidence the way the W3C data
// model does, but nothing populates or interprets them. They round-trip
// through JSON unchanged and are never inspected by the issuance or
// verifier engines.
type CredentialStatus struct {
	ID   URL    `json:"id,omitempty"`
	Type string `json:"type,omitempty"`
}

type RefreshService struct {
	ID   URL    `json:"id,omitempty"`
	Type string `json:"type,omitempty"`
}

type TermsOfUse struct {
	Type string `json:"type,omitempty"`
}

type Evidence struct {
	Type string `json:"type,omitempty"`
}

// Credential is the unsigned claim document. ValidFrom must not be after
// ValidUntil; callers construct it via NewCredential, which enforces the
// invariant.
type Credential struct {
	Context           []URL                    `json:"context"`
	ID                URL                      `json:"id"`
	Type              []URL                    `json:"type"`
	Issuer            URL                      `json:"issuer"`
	ValidFrom         time.Time                `json:"valid_from"`
	ValidUntil        time.Time                `json:"valid_until"`
	CredentialSubject map[string]ClaimProperty `json:"credential_subject"`
	CredentialSchema  []CredentialSchemaLink   `json:"credential_schema"`
	CredentialStatus  *CredentialStatus        `json:"credential_status,omitempty"`
	RefreshService    *RefreshService          `json:"refresh_service,omitempty"`
	TermsOfUse        []TermsOfUse             `json:"terms_of_use,omitempty"`
	Evidence          []Evidence               `json:"evidence,omitempty"`
}

// ContextV2 is the required W3C VC v2 context URL the verifier engine's
// format predicate checks for.
var ContextV2 = MustURL("https://www.w3.org/ns/credentials/v2")

// NewCredential constructs a Credential, rejecting validFrom > validUntil.
func NewCredential(
	context []URL,
	id URL,
	credType []URL,
	issuer URL,
	validFrom, validUntil time.Time,
	subject map[string]ClaimProperty,
	schemaLinks []CredentialSchemaLink,
) (Credential, error) {
	if validFrom.After(validUntil) {
		return Credential{}, fmt.Errorf("vctypes: valid_from %s is after valid_until %s", validFrom, validUntil)
	}
	return Credential{
		Context:           context,
		ID:                id,
		Type:              credType,
		Issuer:            issuer,
		ValidFrom:         validFrom,
		ValidUntil:        validUntil,
		CredentialSubject: subject,
		CredentialSchema:  schemaLinks,
	}, nil
}

// HasContext reports whether the credential declares the given context URL.
func (c Credential) HasContext(u URL) bool {
	for _, ctx := range c.Context {
		if ctx.Equal(u) {
			return true
		}
	}
	return false
}

// ValidAt reports whether now falls within [ValidFrom, ValidUntil],
// inclusive on both bounds.
func (c Credential) ValidAt(now time.Time) bool {
	return !now.Before(c.ValidFrom) && !now.After(c.ValidUntil)
}

// VerifiableCredential pairs a Credential with the proof(s) attesting to
// it. A verifier requires a non-empty Proof list; issuance always
// produces exactly one.
type VerifiableCredential struct {
	Credential Credential `json:"credential"`
	Proof      []Proof    `json:"proof"`
}

// Verifier is a policy record stating which schema a verifier expects a
// presented credential's subject to conform to.
type Verifier struct {
	ID       URL    `json:"id"`
	Name     string `json:"name"`
	SchemaID URL    `json:"schema_id"`
}

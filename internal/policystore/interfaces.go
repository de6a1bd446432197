// Package policystore persists verifier policy records: the third of
// the module's three databases, holding which schema each verifier
// expects a presented credential to conform to. Its shape mirrors
// internal/registry but over a single column family and a single
// entity type.
package policystore

import (
	"context"

	"github.com/ParichayaHQ/credentiald/pkg/vctypes"
)

// DefaultLimit is the entry count ListVerifiers returns when the caller
// omits a limit, and the value negative or nonsense limits are
// normalized to.
const DefaultLimit = 20

// normalizeLimit maps a caller-supplied limit to a usable scan bound:
// non-positive values fall back to DefaultLimit.
func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return limit
}

// Store is the verifier-policy database's public contract.
type Store interface {
	PutVerifier(ctx context.Context, verifier vctypes.Verifier) error
	GetVerifier(ctx context.Context, id vctypes.URL) (*vctypes.Verifier, error)
	ListVerifiers(ctx context.Context, limit int) ([]vctypes.Verifier, error)
	Close() error
}

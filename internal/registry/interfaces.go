// Package registry implements the Verifiable Data Registry: the
// column-family-aware embedded key-value store of record for issuers
// and credential schemas. The RocksDB-backed implementation
// (rocksdb.go) is built behind the "rocksdb" build tag; the default
// build reports that RocksDB support was not compiled in.
package registry

import (
	"context"

	"github.com/ParichayaHQ/credentiald/pkg/vctypes"
)

// DefaultLimit is the entry count ListIssuers/ListSchemas return when the
// caller omits a limit, and the value negative or nonsense limits are
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

// Store is the Verifiable Data Registry's public contract. Every
// operation acquires and releases its database's mutex internally;
// no lock is ever held across a suspension point or returned to the caller.
type Store interface {
	// PutIssuer serializes issuer as UTF-8 JSON and writes it under key
	// issuer.ID in the issuer column family. Overwrites are accepted.
	PutIssuer(ctx context.Context, issuer vctypes.Issuer) error

	// GetIssuer looks up an issuer by id. A nil, nil result means absent;
	// absence is never reported as an error.
	GetIssuer(ctx context.Context, id vctypes.URL) (*vctypes.Issuer, error)

	// ListIssuers performs a forward scan from the issuer CF's first key,
	// decoding each value. A record that fails to decode is skipped and
	// logged, not treated as a scan-ending error. At most limit entries
	// are returned.
	ListIssuers(ctx context.Context, limit int) ([]vctypes.Issuer, error)

	// AttachVerificationMethod appends vm to the issuer's verification
	// method list and re-persists the issuer. Fails with an error
	// satisfying IsUnknownIssuer if the issuer does not exist.
	AttachVerificationMethod(ctx context.Context, issuerID vctypes.URL, vm vctypes.VerificationMethod) error

	// PutSchema serializes schema as UTF-8 JSON and writes it under key
	// schema.ID in the schema column family.
	PutSchema(ctx context.Context, schema vctypes.CredentialSchema) error

	// GetSchema looks up a schema by id.
	GetSchema(ctx context.Context, id vctypes.URL) (*vctypes.CredentialSchema, error)

	// ListSchemas performs a forward scan over the schema CF.
	ListSchemas(ctx context.Context, limit int) ([]vctypes.CredentialSchema, error)

	// Close releases the underlying database handle.
	Close() error
}

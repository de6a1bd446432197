//go:build !rocksdb

package registry

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"

	"github.com/ParichayaHQ/credentiald/internal/config"
	"github.com/ParichayaHQ/credentiald/pkg/vctypes"
)

// RocksDBStore is a stub used when the module is built without the
// "rocksdb" tag: every operation reports that RocksDB support was not
// compiled in.
type RocksDBStore struct{}

// Open always fails in this build; build with -tags rocksdb for a real
// registry backend.
func Open(_ *config.DatabaseConfig, _ logr.Logger) (*RocksDBStore, error) {
	return nil, fmt.Errorf("registry: RocksDB support not compiled in - build with -tags rocksdb")
}

func (s *RocksDBStore) PutIssuer(context.Context, vctypes.Issuer) error {
	return fmt.Errorf("registry: RocksDB not available")
}

func (s *RocksDBStore) GetIssuer(context.Context, vctypes.URL) (*vctypes.Issuer, error) {
	return nil, fmt.Errorf("registry: RocksDB not available")
}

func (s *RocksDBStore) ListIssuers(context.Context, int) ([]vctypes.Issuer, error) {
	return nil, fmt.Errorf("registry: RocksDB not available")
}

func (s *RocksDBStore) AttachVerificationMethod(context.Context, vctypes.URL, vctypes.VerificationMethod) error {
	return fmt.Errorf("registry: RocksDB not available")
}

func (s *RocksDBStore) PutSchema(context.Context, vctypes.CredentialSchema) error {
	return fmt.Errorf("registry: RocksDB not available")
}

func (s *RocksDBStore) GetSchema(context.Context, vctypes.URL) (*vctypes.CredentialSchema, error) {
	return nil, fmt.Errorf("registry: RocksDB not available")
}

func (s *RocksDBStore) ListSchemas(context.Context, int) ([]vctypes.CredentialSchema, error) {
	return nil, fmt.Errorf("registry: RocksDB not available")
}

func (s *RocksDBStore) Close() error { return nil }

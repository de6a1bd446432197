//go:build !rocksdb

package policystore

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"

	"github.com/ParichayaHQ/credentiald/internal/config"
	"github.com/ParichayaHQ/credentiald/pkg/vctypes"
)

// RocksDBStore is a stub used when the module is built without the
// "rocksdb" tag.
type RocksDBStore struct{}

// Open always fails in this build; build with -tags rocksdb for a real
// verifier-policy store backend.
func Open(_ *config.DatabaseConfig, _ logr.Logger) (*RocksDBStore, error) {
	return nil, fmt.Errorf("policystore: RocksDB support not compiled in - build with -tags rocksdb")
}

func (s *RocksDBStore) PutVerifier(context.Context, vctypes.Verifier) error {
	return fmt.Errorf("policystore: RocksDB not available")
}

func (s *RocksDBStore) GetVerifier(context.Context, vctypes.URL) (*vctypes.Verifier, error) {
	return nil, fmt.Errorf("policystore: RocksDB not available")
}

func (s *RocksDBStore) ListVerifiers(context.Context, int) ([]vctypes.Verifier, error) {
	return nil, fmt.Errorf("policystore: RocksDB not available")
}

func (s *RocksDBStore) Close() error { return nil }

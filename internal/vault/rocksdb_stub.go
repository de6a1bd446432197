//go:build !rocksdb

package vault

import (
	"context"
	"fmt"

	"github.com/ParichayaHQ/credentiald/internal/config"
	"github.com/ParichayaHQ/credentiald/pkg/vctypes"
)

// RocksDBVault is a stub used when the module is built without the
// "rocksdb" tag.
type RocksDBVault struct{}

// Open always fails in this build; build with -tags rocksdb for a real
// vault backend.
func Open(_ *config.DatabaseConfig) (*RocksDBVault, error) {
	return nil, fmt.Errorf("vault: RocksDB support not compiled in - build with -tags rocksdb")
}

func (v *RocksDBVault) CreateKeyForVerificationMethod(context.Context, vctypes.URL) ([]byte, error) {
	return nil, fmt.Errorf("vault: RocksDB not available")
}

func (v *RocksDBVault) SignWith(context.Context, vctypes.URL, []byte) ([]byte, error) {
	return nil, fmt.Errorf("vault: RocksDB not available")
}

func (v *RocksDBVault) Close() error { return nil }

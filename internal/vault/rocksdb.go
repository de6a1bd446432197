//go:build rocksdb

package vault

import (
	"context"
	"sync"

	"github.com/linxGnu/grocksdb"

	"github.com/ParichayaHQ/credentiald/internal/config"
	"github.com/ParichayaHQ/credentiald/pkg/vctypes"
)

// RocksDBVault persists signing-key scalars in their own RocksDB
// database, separate from the registry, so that key material never
// shares a database (and therefore never risks sharing a backup,
// snapshot, or listing scan) with issuer/schema records.
type RocksDBVault struct {
	db *grocksdb.DB
	cf *grocksdb.ColumnFamilyHandle

	readOpts  *grocksdb.ReadOptions
	writeOpts *grocksdb.WriteOptions

	mu     sync.Mutex
	closed bool
}

// Open creates the issuer-keys database if missing and pre-declares its
// signing_key column family.
func Open(cfg *config.DatabaseConfig) (*RocksDBVault, error) {
	opts := grocksdb.NewDefaultOptions()
	opts.SetCreateIfMissing(true)
	opts.SetCreateIfMissingColumnFamilies(true)
	opts.SetMaxOpenFiles(cfg.MaxOpenFiles)
	if !cfg.EnableWAL {
		opts.SetDisableWAL(true)
	}

	cfNames := []string{config.CFSigningKey}
	cfOpts := []*grocksdb.Options{grocksdb.NewDefaultOptions()}

	db, handles, err := grocksdb.OpenDbColumnFamilies(opts, cfg.Path, cfNames, cfOpts)
	if err != nil {
		return nil, storageErr("open", cfg.Path, err)
	}

	writeOpts := grocksdb.NewDefaultWriteOptions()
	writeOpts.SetSync(cfg.SyncWrites)

	return &RocksDBVault{
		db:        db,
		cf:        handles[0],
		readOpts:  grocksdb.NewDefaultReadOptions(),
		writeOpts: writeOpts,
	}, nil
}

func (v *RocksDBVault) CreateKeyForVerificationMethod(_ context.Context, vmID vctypes.URL) ([]byte, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return nil, &Error{Op: "create_key", VerificationMethodID: vmID.String(), Err: ErrClosed}
	}
	scalar, publicKey, err := generateSigningKey()
	if err != nil {
		return nil, storageErr("generate_key", vmID.String(), err)
	}
	if err := v.db.PutCF(v.writeOpts, v.cf, []byte(vmID.String()), scalar); err != nil {
		return nil, storageErr("put_key", vmID.String(), err)
	}
	return publicKey, nil
}

func (v *RocksDBVault) SignWith(_ context.Context, vmID vctypes.URL, digest []byte) ([]byte, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return nil, &Error{Op: "sign", VerificationMethodID: vmID.String(), Err: ErrClosed}
	}
	value, err := v.db.GetCF(v.readOpts, v.cf, []byte(vmID.String()))
	if err != nil {
		return nil, storageErr("get_key", vmID.String(), err)
	}
	defer value.Free()
	if !value.Exists() {
		return nil, unknownKeyErr("sign", vmID.String())
	}
	scalar := make([]byte, len(value.Data()))
	copy(scalar, value.Data())
	sig, err := signDigest(scalar, digest)
	if err != nil {
		return nil, invalidKeyMaterialErr("sign", vmID.String(), err)
	}
	return sig, nil
}

func (v *RocksDBVault) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return nil
	}
	v.closed = true
	v.db.Close()
	return nil
}

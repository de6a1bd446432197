//go:build rocksdb

package registry

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/go-logr/logr"
	"github.com/linxGnu/grocksdb"

	"github.com/ParichayaHQ/credentiald/internal/config"
	"github.com/ParichayaHQ/credentiald/pkg/vctypes"
)

// RocksDBStore is the production Store implementation: one RocksDB
// database with an "issuer" and a "schema" column family, guarded by a
// single exclusive mutex. No per-key sharding: attach-verification-
// method is read-modify-write and relies on this mutex serializing
// writers per issuer.
type RocksDBStore struct {
	db  *grocksdb.DB
	cfs map[string]*grocksdb.ColumnFamilyHandle

	readOpts  *grocksdb.ReadOptions
	writeOpts *grocksdb.WriteOptions

	log logr.Logger

	mu     sync.Mutex
	closed bool
}

// Open creates the registry database if missing and pre-declares its
// column families; opening a database with a missing CF elsewhere would
// be a fatal startup error, so this is the only code path that creates
// them.
func Open(cfg *config.DatabaseConfig, log logr.Logger) (*RocksDBStore, error) {
	opts := grocksdb.NewDefaultOptions()
	opts.SetCreateIfMissing(true)
	opts.SetCreateIfMissingColumnFamilies(true)
	opts.SetMaxOpenFiles(cfg.MaxOpenFiles)
	opts.SetWriteBufferSize(uint64(cfg.WriteBufferSize) * 1024 * 1024)
	applyCompression(opts, cfg.CompressionType)
	if !cfg.EnableWAL {
		opts.SetDisableWAL(true)
	}

	blockCache := grocksdb.NewLRUCache(uint64(cfg.BlockCacheSize) * 1024 * 1024)
	blockOpts := grocksdb.NewDefaultBlockBasedTableOptions()
	blockOpts.SetBlockCache(blockCache)
	opts.SetBlockBasedTableFactory(blockOpts)

	cfNames := []string{config.CFIssuer, config.CFSchema}
	cfOpts := make([]*grocksdb.Options, len(cfNames))
	for i, name := range cfNames {
		cfOpts[i] = grocksdb.NewDefaultOptions()
		if cfCfg, ok := cfg.ColumnFamilies[name]; ok {
			applyCompression(cfOpts[i], cfCfg.CompressionType)
			if cfCfg.BloomFilterBitsPerKey > 0 {
				cfBlockOpts := grocksdb.NewDefaultBlockBasedTableOptions()
				cfBlockOpts.SetFilterPolicy(grocksdb.NewBloomFilter(cfCfg.BloomFilterBitsPerKey))
				cfOpts[i].SetBlockBasedTableFactory(cfBlockOpts)
			}
		}
	}

	db, handles, err := grocksdb.OpenDbColumnFamilies(opts, cfg.Path, cfNames, cfOpts)
	if err != nil {
		return nil, storageErr("open", cfg.Path, err)
	}

	cfs := make(map[string]*grocksdb.ColumnFamilyHandle, len(cfNames))
	for i, name := range cfNames {
		cfs[name] = handles[i]
	}

	writeOpts := grocksdb.NewDefaultWriteOptions()
	writeOpts.SetSync(cfg.SyncWrites)

	return &RocksDBStore{
		db:        db,
		cfs:       cfs,
		readOpts:  grocksdb.NewDefaultReadOptions(),
		writeOpts: writeOpts,
		log:       log,
	}, nil
}

func applyCompression(opts *grocksdb.Options, kind string) {
	switch kind {
	case "snappy":
		opts.SetCompression(grocksdb.SnappyCompression)
	case "lz4":
		opts.SetCompression(grocksdb.LZ4Compression)
	case "zstd":
		opts.SetCompression(grocksdb.ZSTDCompression)
	default:
		opts.SetCompression(grocksdb.NoCompression)
	}
}

func (s *RocksDBStore) PutIssuer(_ context.Context, issuer vctypes.Issuer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return &Error{Op: "put_issuer", Err: ErrClosed}
	}
	return s.putJSONLocked(config.CFIssuer, issuer.ID.String(), issuer)
}

func (s *RocksDBStore) GetIssuer(_ context.Context, id vctypes.URL) (*vctypes.Issuer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, &Error{Op: "get_issuer", Err: ErrClosed}
	}
	var issuer vctypes.Issuer
	found, err := s.getJSONLocked(config.CFIssuer, id.String(), &issuer)
	if err != nil || !found {
		return nil, err
	}
	return &issuer, nil
}

func (s *RocksDBStore) ListIssuers(_ context.Context, limit int) ([]vctypes.Issuer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, &Error{Op: "list_issuers", Err: ErrClosed}
	}
	limit = normalizeLimit(limit)
	issuers := make([]vctypes.Issuer, 0, limit)
	it := s.db.NewIteratorCF(s.readOpts, s.cfs[config.CFIssuer])
	defer it.Close()
	for it.SeekToFirst(); it.Valid() && len(issuers) < limit; it.Next() {
		var issuer vctypes.Issuer
		value := it.Value()
		if err := json.Unmarshal(value.Data(), &issuer); err != nil {
			s.log.Info("skipping corrupted issuer record", "key", string(it.Key().Data()), "err", err.Error())
			value.Free()
			it.Key().Free()
			continue
		}
		value.Free()
		it.Key().Free()
		issuers = append(issuers, issuer)
	}
	return issuers, nil
}

func (s *RocksDBStore) AttachVerificationMethod(_ context.Context, issuerID vctypes.URL, vm vctypes.VerificationMethod) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return &Error{Op: "attach_verification_method", Err: ErrClosed}
	}
	var issuer vctypes.Issuer
	found, err := s.getJSONLocked(config.CFIssuer, issuerID.String(), &issuer)
	if err != nil {
		return err
	}
	if !found {
		return unknownIssuerErr(issuerID.String())
	}
	issuer = issuer.WithVerificationMethod(vm)
	return s.putJSONLocked(config.CFIssuer, issuerID.String(), issuer)
}

func (s *RocksDBStore) PutSchema(_ context.Context, schema vctypes.CredentialSchema) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return &Error{Op: "put_schema", Err: ErrClosed}
	}
	return s.putJSONLocked(config.CFSchema, schema.ID.String(), schema)
}

func (s *RocksDBStore) GetSchema(_ context.Context, id vctypes.URL) (*vctypes.CredentialSchema, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, &Error{Op: "get_schema", Err: ErrClosed}
	}
	var schema vctypes.CredentialSchema
	found, err := s.getJSONLocked(config.CFSchema, id.String(), &schema)
	if err != nil || !found {
		return nil, err
	}
	return &schema, nil
}

func (s *RocksDBStore) ListSchemas(_ context.Context, limit int) ([]vctypes.CredentialSchema, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, &Error{Op: "list_schemas", Err: ErrClosed}
	}
	limit = normalizeLimit(limit)
	schemas := make([]vctypes.CredentialSchema, 0, limit)
	it := s.db.NewIteratorCF(s.readOpts, s.cfs[config.CFSchema])
	defer it.Close()
	for it.SeekToFirst(); it.Valid() && len(schemas) < limit; it.Next() {
		var schema vctypes.CredentialSchema
		value := it.Value()
		if err := json.Unmarshal(value.Data(), &schema); err != nil {
			s.log.Info("skipping corrupted schema record", "key", string(it.Key().Data()), "err", err.Error())
			value.Free()
			it.Key().Free()
			continue
		}
		value.Free()
		it.Key().Free()
		schemas = append(schemas, schema)
	}
	return schemas, nil
}

func (s *RocksDBStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	s.db.Close()
	return nil
}

// putJSONLocked must be called with s.mu held.
func (s *RocksDBStore) putJSONLocked(cf, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return encodingErr("marshal", key, err)
	}
	if err := s.db.PutCF(s.writeOpts, s.cfs[cf], []byte(key), data); err != nil {
		return storageErr("put", key, err)
	}
	return nil
}

// getJSONLocked must be called with s.mu held. The bool return
// distinguishes absence from error, per the registry's public contract.
func (s *RocksDBStore) getJSONLocked(cf, key string, out any) (bool, error) {
	value, err := s.db.GetCF(s.readOpts, s.cfs[cf], []byte(key))
	if err != nil {
		return false, storageErr("get", key, err)
	}
	defer value.Free()
	if !value.Exists() {
		return false, nil
	}
	if err := json.Unmarshal(value.Data(), out); err != nil {
		return false, encodingErr("unmarshal", key, err)
	}
	return true, nil
}

//go:build rocksdb

package policystore

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/go-logr/logr"
	"github.com/linxGnu/grocksdb"

	"github.com/ParichayaHQ/credentiald/internal/config"
	"github.com/ParichayaHQ/credentiald/pkg/vctypes"
)

// RocksDBStore is the production verifier-policy store: one database,
// one "verifier" column family, one exclusive mutex.
type RocksDBStore struct {
	db *grocksdb.DB
	cf *grocksdb.ColumnFamilyHandle

	readOpts  *grocksdb.ReadOptions
	writeOpts *grocksdb.WriteOptions

	log logr.Logger

	mu     sync.Mutex
	closed bool
}

// Open creates the verifier-policies database if missing and
// pre-declares its verifier column family.
func Open(cfg *config.DatabaseConfig, log logr.Logger) (*RocksDBStore, error) {
	opts := grocksdb.NewDefaultOptions()
	opts.SetCreateIfMissing(true)
	opts.SetCreateIfMissingColumnFamilies(true)
	opts.SetMaxOpenFiles(cfg.MaxOpenFiles)

	cfNames := []string{config.CFVerifier}
	cfOpts := []*grocksdb.Options{grocksdb.NewDefaultOptions()}

	db, handles, err := grocksdb.OpenDbColumnFamilies(opts, cfg.Path, cfNames, cfOpts)
	if err != nil {
		return nil, storageErr("open", cfg.Path, err)
	}

	writeOpts := grocksdb.NewDefaultWriteOptions()
	writeOpts.SetSync(cfg.SyncWrites)

	return &RocksDBStore{
		db:        db,
		cf:        handles[0],
		readOpts:  grocksdb.NewDefaultReadOptions(),
		writeOpts: writeOpts,
		log:       log,
	}, nil
}

func (s *RocksDBStore) PutVerifier(_ context.Context, verifier vctypes.Verifier) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return &Error{Op: "put_verifier", Err: ErrClosed}
	}
	data, err := json.Marshal(verifier)
	if err != nil {
		return encodingErr("marshal", verifier.ID.String(), err)
	}
	if err := s.db.PutCF(s.writeOpts, s.cf, []byte(verifier.ID.String()), data); err != nil {
		return storageErr("put", verifier.ID.String(), err)
	}
	return nil
}

func (s *RocksDBStore) GetVerifier(_ context.Context, id vctypes.URL) (*vctypes.Verifier, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, &Error{Op: "get_verifier", Err: ErrClosed}
	}
	value, err := s.db.GetCF(s.readOpts, s.cf, []byte(id.String()))
	if err != nil {
		return nil, storageErr("get", id.String(), err)
	}
	defer value.Free()
	if !value.Exists() {
		return nil, nil
	}
	var verifier vctypes.Verifier
	if err := json.Unmarshal(value.Data(), &verifier); err != nil {
		return nil, encodingErr("unmarshal", id.String(), err)
	}
	return &verifier, nil
}

func (s *RocksDBStore) ListVerifiers(_ context.Context, limit int) ([]vctypes.Verifier, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, &Error{Op: "list_verifiers", Err: ErrClosed}
	}
	limit = normalizeLimit(limit)
	verifiers := make([]vctypes.Verifier, 0, limit)
	it := s.db.NewIteratorCF(s.readOpts, s.cf)
	defer it.Close()
	for it.SeekToFirst(); it.Valid() && len(verifiers) < limit; it.Next() {
		var verifier vctypes.Verifier
		value := it.Value()
		if err := json.Unmarshal(value.Data(), &verifier); err != nil {
			s.log.Info("skipping corrupted verifier record", "key", string(it.Key().Data()), "err", err.Error())
			value.Free()
			it.Key().Free()
			continue
		}
		value.Free()
		it.Key().Free()
		verifiers = append(verifiers, verifier)
	}
	return verifiers, nil
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

package registry

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/go-logr/logr"

	"github.com/ParichayaHQ/credentiald/pkg/vctypes"
)

// MemoryStore implements Store entirely in memory, following the same
// JSON-round-trip discipline as the RocksDB backend (values are
// marshaled/unmarshaled on every call, never aliased) so that switching
// between the two is behavior-preserving. Suitable for tests and
// small-scale development.
type MemoryStore struct {
	log logr.Logger

	mu      sync.Mutex
	issuers map[string][]byte
	schemas map[string][]byte
	order   []string // insertion order of issuer keys, for ListIssuers
	sOrder  []string // insertion order of schema keys, for ListSchemas
	closed  bool
}

// NewMemoryStore constructs an empty in-memory registry.
func NewMemoryStore(log logr.Logger) *MemoryStore {
	return &MemoryStore{
		log:     log,
		issuers: make(map[string][]byte),
		schemas: make(map[string][]byte),
	}
}

func (s *MemoryStore) PutIssuer(_ context.Context, issuer vctypes.Issuer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return &Error{Op: "put_issuer", Err: ErrClosed}
	}
	data, err := json.Marshal(issuer)
	if err != nil {
		return encodingErr("marshal", issuer.ID.String(), err)
	}
	key := issuer.ID.String()
	if _, exists := s.issuers[key]; !exists {
		s.order = append(s.order, key)
	}
	s.issuers[key] = data
	return nil
}

func (s *MemoryStore) GetIssuer(_ context.Context, id vctypes.URL) (*vctypes.Issuer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, &Error{Op: "get_issuer", Err: ErrClosed}
	}
	data, ok := s.issuers[id.String()]
	if !ok {
		return nil, nil
	}
	var issuer vctypes.Issuer
	if err := json.Unmarshal(data, &issuer); err != nil {
		return nil, encodingErr("unmarshal", id.String(), err)
	}
	return &issuer, nil
}

func (s *MemoryStore) ListIssuers(_ context.Context, limit int) ([]vctypes.Issuer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, &Error{Op: "list_issuers", Err: ErrClosed}
	}
	limit = normalizeLimit(limit)
	issuers := make([]vctypes.Issuer, 0, limit)
	for _, key := range s.order {
		if len(issuers) >= limit {
			break
		}
		var issuer vctypes.Issuer
		if err := json.Unmarshal(s.issuers[key], &issuer); err != nil {
			s.log.Info("skipping corrupted issuer record", "key", key, "err", err.Error())
			continue
		}
		issuers = append(issuers, issuer)
	}
	return issuers, nil
}

func (s *MemoryStore) AttachVerificationMethod(_ context.Context, issuerID vctypes.URL, vm vctypes.VerificationMethod) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return &Error{Op: "attach_verification_method", Err: ErrClosed}
	}
	key := issuerID.String()
	data, ok := s.issuers[key]
	if !ok {
		return unknownIssuerErr(key)
	}
	var issuer vctypes.Issuer
	if err := json.Unmarshal(data, &issuer); err != nil {
		return encodingErr("unmarshal", key, err)
	}
	issuer = issuer.WithVerificationMethod(vm)
	updated, err := json.Marshal(issuer)
	if err != nil {
		return encodingErr("marshal", key, err)
	}
	s.issuers[key] = updated
	return nil
}

func (s *MemoryStore) PutSchema(_ context.Context, schema vctypes.CredentialSchema) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return &Error{Op: "put_schema", Err: ErrClosed}
	}
	data, err := json.Marshal(schema)
	if err != nil {
		return encodingErr("marshal", schema.ID.String(), err)
	}
	key := schema.ID.String()
	if _, exists := s.schemas[key]; !exists {
		s.sOrder = append(s.sOrder, key)
	}
	s.schemas[key] = data
	return nil
}

func (s *MemoryStore) GetSchema(_ context.Context, id vctypes.URL) (*vctypes.CredentialSchema, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, &Error{Op: "get_schema", Err: ErrClosed}
	}
	data, ok := s.schemas[id.String()]
	if !ok {
		return nil, nil
	}
	var schema vctypes.CredentialSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, encodingErr("unmarshal", id.String(), err)
	}
	return &schema, nil
}

func (s *MemoryStore) ListSchemas(_ context.Context, limit int) ([]vctypes.CredentialSchema, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, &Error{Op: "list_schemas", Err: ErrClosed}
	}
	limit = normalizeLimit(limit)
	schemas := make([]vctypes.CredentialSchema, 0, limit)
	for _, key := range s.sOrder {
		if len(schemas) >= limit {
			break
		}
		var schema vctypes.CredentialSchema
		if err := json.Unmarshal(s.schemas[key], &schema); err != nil {
			s.log.Info("skipping corrupted schema record", "key", key, "err", err.Error())
			continue
		}
		schemas = append(schemas, schema)
	}
	return schemas, nil
}

func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

var _ Store = (*MemoryStore)(nil)

package policystore

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/go-logr/logr"

	"github.com/ParichayaHQ/credentiald/pkg/vctypes"
)

// MemoryStore implements Store entirely in memory, for tests and
// small-scale development.
type MemoryStore struct {
	log logr.Logger

	mu        sync.Mutex
	verifiers map[string][]byte
	order     []string
	closed    bool
}

// NewMemoryStore constructs an empty in-memory verifier-policy store.
func NewMemoryStore(log logr.Logger) *MemoryStore {
	return &MemoryStore{log: log, verifiers: make(map[string][]byte)}
}

func (s *MemoryStore) PutVerifier(_ context.Context, verifier vctypes.Verifier) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return &Error{Op: "put_verifier", Err: ErrClosed}
	}
	data, err := json.Marshal(verifier)
	if err != nil {
		return encodingErr("marshal", verifier.ID.String(), err)
	}
	key := verifier.ID.String()
	if _, exists := s.verifiers[key]; !exists {
		s.order = append(s.order, key)
	}
	s.verifiers[key] = data
	return nil
}

func (s *MemoryStore) GetVerifier(_ context.Context, id vctypes.URL) (*vctypes.Verifier, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, &Error{Op: "get_verifier", Err: ErrClosed}
	}
	data, ok := s.verifiers[id.String()]
	if !ok {
		return nil, nil
	}
	var verifier vctypes.Verifier
	if err := json.Unmarshal(data, &verifier); err != nil {
		return nil, encodingErr("unmarshal", id.String(), err)
	}
	return &verifier, nil
}

func (s *MemoryStore) ListVerifiers(_ context.Context, limit int) ([]vctypes.Verifier, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, &Error{Op: "list_verifiers", Err: ErrClosed}
	}
	limit = normalizeLimit(limit)
	verifiers := make([]vctypes.Verifier, 0, limit)
	for _, key := range s.order {
		if len(verifiers) >= limit {
			break
		}
		var verifier vctypes.Verifier
		if err := json.Unmarshal(s.verifiers[key], &verifier); err != nil {
			s.log.Info("skipping corrupted verifier record", "key", key, "err", err.Error())
			continue
		}
		verifiers = append(verifiers, verifier)
	}
	return verifiers, nil
}

func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

var _ Store = (*MemoryStore)(nil)

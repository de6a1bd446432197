package vault

import (
	"context"
	"sync"

	"github.com/ParichayaHQ/credentiald/pkg/vctypes"
)

// MemoryVault implements Vault entirely in memory, for tests and
// small-scale development, mirroring registry.MemoryStore.
type MemoryVault struct {
	mu     sync.Mutex
	keys   map[string][]byte
	closed bool
}

// NewMemoryVault constructs an empty in-memory key vault.
func NewMemoryVault() *MemoryVault {
	return &MemoryVault{keys: make(map[string][]byte)}
}

func (v *MemoryVault) CreateKeyForVerificationMethod(_ context.Context, vmID vctypes.URL) ([]byte, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return nil, &Error{Op: "create_key", VerificationMethodID: vmID.String(), Err: ErrClosed}
	}
	scalar, publicKey, err := generateSigningKey()
	if err != nil {
		return nil, storageErr("generate_key", vmID.String(), err)
	}
	v.keys[vmID.String()] = scalar
	return publicKey, nil
}

func (v *MemoryVault) SignWith(_ context.Context, vmID vctypes.URL, digest []byte) ([]byte, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return nil, &Error{Op: "sign", VerificationMethodID: vmID.String(), Err: ErrClosed}
	}
	scalar, ok := v.keys[vmID.String()]
	if !ok {
		return nil, unknownKeyErr("sign", vmID.String())
	}
	sig, err := signDigest(scalar, digest)
	if err != nil {
		return nil, invalidKeyMaterialErr("sign", vmID.String(), err)
	}
	return sig, nil
}

func (v *MemoryVault) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.closed = true
	return nil
}

var _ Vault = (*MemoryVault)(nil)

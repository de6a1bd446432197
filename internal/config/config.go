// Package config defines the on-disk layout and tuning knobs for this
// module's three databases: one struct per database, a DefaultConfig
// constructor with sensible defaults, and a Validate that rejects
// obviously broken configuration before a caller tries to open
// anything.
package config

import "fmt"

// ColumnFamilyConfig holds per-column-family tuning.
type ColumnFamilyConfig struct {
	WriteBufferSize       int    `json:"write_buffer_size"` // MB
	BloomFilterBitsPerKey int    `json:"bloom_filter_bits_per_key"`
	CompressionType       string `json:"compression_type"`
}

// DatabaseConfig configures one of the module's three RocksDB databases.
type DatabaseConfig struct {
	Path            string                        `json:"path"`
	MaxOpenFiles    int                           `json:"max_open_files"`
	WriteBufferSize int                           `json:"write_buffer_size"` // MB
	BlockCacheSize  int                           `json:"block_cache_size"`  // MB
	CompressionType string                        `json:"compression_type"`
	EnableWAL       bool                          `json:"enable_wal"`
	SyncWrites      bool                          `json:"sync_writes"`
	ColumnFamilies  map[string]ColumnFamilyConfig `json:"column_families"`
}

// Config is the top-level configuration for the credential engine: the
// registry (issuers + schemas), the issuer key vault, and the verifier
// policy store, each on its own database.
type Config struct {
	Registry         DatabaseConfig `json:"registry"`
	IssuerKeys       DatabaseConfig `json:"issuer_keys"`
	VerifierPolicies DatabaseConfig `json:"verifier_policies"`
}

// Column family names used by the registry database.
const (
	CFIssuer = "issuer"
	CFSchema = "schema"
)

// Column family name used by the issuer-keys database.
const CFSigningKey = "signing_key"

// Column family name used by the verifier-policies database.
const CFVerifier = "verifier"

// DefaultConfig returns sensible defaults for a single-process deployment.
func DefaultConfig() *Config {
	return &Config{
		Registry: DatabaseConfig{
			Path:            "./data/registry",
			MaxOpenFiles:    500,
			WriteBufferSize: 32,
			BlockCacheSize:  64,
			CompressionType: "lz4",
			EnableWAL:       true,
			SyncWrites:      false,
			ColumnFamilies: map[string]ColumnFamilyConfig{
				CFIssuer: {WriteBufferSize: 16, BloomFilterBitsPerKey: 10, CompressionType: "lz4"},
				CFSchema: {WriteBufferSize: 16, BloomFilterBitsPerKey: 10, CompressionType: "lz4"},
			},
		},
		IssuerKeys: DatabaseConfig{
			Path:            "./data/issuer-keys",
			MaxOpenFiles:    200,
			WriteBufferSize: 8,
			BlockCacheSize:  16,
			CompressionType: "none",
			EnableWAL:       true,
			SyncWrites:      true, // key material: never lose a write to a crash
			ColumnFamilies: map[string]ColumnFamilyConfig{
				CFSigningKey: {WriteBufferSize: 8, BloomFilterBitsPerKey: 10, CompressionType: "none"},
			},
		},
		VerifierPolicies: DatabaseConfig{
			Path:            "./data/verifier-policies",
			MaxOpenFiles:    200,
			WriteBufferSize: 8,
			BlockCacheSize:  16,
			CompressionType: "lz4",
			EnableWAL:       true,
			SyncWrites:      false,
			ColumnFamilies: map[string]ColumnFamilyConfig{
				CFVerifier: {WriteBufferSize: 8, BloomFilterBitsPerKey: 10, CompressionType: "lz4"},
			},
		},
	}
}

// Validate rejects configuration that would fail open() in a way that's
// clearer to catch at startup.
func (c *Config) Validate() error {
	for name, db := range map[string]DatabaseConfig{
		"registry":          c.Registry,
		"issuer_keys":       c.IssuerKeys,
		"verifier_policies": c.VerifierPolicies,
	} {
		if db.Path == "" {
			return fmt.Errorf("config: %s.path must not be empty", name)
		}
		if len(db.ColumnFamilies) == 0 {
			return fmt.Errorf("config: %s must declare at least one column family", name)
		}
	}
	return nil
}

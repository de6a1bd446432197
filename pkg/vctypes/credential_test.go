package vctypes

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCredentialRejectsValidFromAfterValidUntil(t *testing.T) {
	from := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	until := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := NewCredential(
		[]URL{ContextV2},
		MustURL("https://example.com/credentials/1"),
		[]URL{MustURL("VerifiableCredential")},
		MustURL("https://example.com/issuers/1"),
		from, until,
		map[string]ClaimProperty{},
		nil,
	)
	require.Error(t, err)
}

func TestCredentialValidAtIsInclusive(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	cred, err := NewCredential(
		[]URL{ContextV2},
		MustURL("https://example.com/credentials/1"),
		[]URL{MustURL("VerifiableCredential")},
		MustURL("https://example.com/issuers/1"),
		from, until,
		map[string]ClaimProperty{},
		nil,
	)
	require.NoError(t, err)

	assert.True(t, cred.ValidAt(from))
	assert.True(t, cred.ValidAt(until))
	assert.True(t, cred.ValidAt(from.Add(time.Hour)))
	assert.False(t, cred.ValidAt(from.Add(-time.Second)))
	assert.False(t, cred.ValidAt(until.Add(time.Second)))
}

func TestCredentialHasContext(t *testing.T) {
	cred, err := NewCredential(
		[]URL{ContextV2},
		MustURL("https://example.com/credentials/1"),
		[]URL{MustURL("VerifiableCredential")},
		MustURL("https://example.com/issuers/1"),
		time.Now(), time.Now().Add(time.Hour),
		map[string]ClaimProperty{},
		nil,
	)
	require.NoError(t, err)

	assert.True(t, cred.HasContext(ContextV2))
	assert.False(t, cred.HasContext(MustURL("https://example.com/other-context")))
}

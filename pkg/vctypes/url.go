package vctypes

import (
	"encoding/json"
	"errors"
	"strings"
)

// ErrEmptyURL is returned when a URL is constructed from an empty string.
var ErrEmptyURL = errors.New("vctypes: url must not be empty")

// URL is an opaque validated string identifier. Two URLs are compared by
// raw byte equality; there is no normalization, percent-decoding, or
// scheme-aware comparison.
type URL struct {
	value string
}

// NewURL validates and wraps a raw identifier string. The only validation
// performed is non-emptiness after trimming leading/trailing whitespace;
// the registry and credential schema trees are agnostic to URL scheme.
func NewURL(raw string) (URL, error) {
	if strings.TrimSpace(raw) == "" {
		return URL{}, ErrEmptyURL
	}
	return URL{value: raw}, nil
}

// MustURL panics if raw fails validation. Intended for package-level
// constants and tests, never for caller-supplied input.
func MustURL(raw string) URL {
	u, err := NewURL(raw)
	if err != nil {
		panic(err)
	}
	return u
}

// String returns the raw identifier string.
func (u URL) String() string {
	return u.value
}

// IsZero reports whether u is the zero value (never produced by NewURL).
func (u URL) IsZero() bool {
	return u.value == ""
}

// Equal reports whether two URLs are byte-for-byte identical.
func (u URL) Equal(other URL) bool {
	return u.value == other.value
}

// Compare provides a total ordering on bytes, suitable for sorting slices
// of URL or for use as a map/B-tree key surrogate.
func (u URL) Compare(other URL) int {
	return strings.Compare(u.value, other.value)
}

// MarshalJSON encodes the URL as a plain JSON string.
func (u URL) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.value)
}

// UnmarshalJSON decodes a plain JSON string into a validated URL.
func (u *URL) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := NewURL(raw)
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// SortURLs sorts a slice of URL in place by byte order.
func SortURLs(urls []URL) {
	// insertion sort: these lists (context, type) are always small.
	for i := 1; i < len(urls); i++ {
		for j := i; j > 0 && urls[j].Compare(urls[j-1]) < 0; j-- {
			urls[j], urls[j-1] = urls[j-1], urls[j]
		}
	}
}

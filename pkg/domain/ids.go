// Package domain holds the identifier value types shared by every registry.
//
// All three types are constructed through Parse* at trust boundaries; direct
// casting bypasses canonicalization and validation.
package domain

import (
	"strings"

	dErrors "prodauth/pkg/domain-errors"
)

const (
	accountHexLen   = 40
	contentHexLen   = 64
	maxProductIDLen = 128
)

// AccountID is a ledger address: 0x-prefixed, 40 hex digits. The canonical
// form is lowercase, so equality of two AccountIDs is plain byte equality
// regardless of how the caller cased the hex.
type AccountID string

// ParseAccountID canonicalizes and validates an external address string.
//
// Errors: CodeInvalidInput when empty, missing the 0x prefix, wrong length,
// or containing non-hex characters.
func ParseAccountID(s string) (AccountID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "account id cannot be empty")
	}
	hexPart, ok := strip0x(s)
	if !ok || len(hexPart) != accountHexLen || !isHex(hexPart) {
		return "", dErrors.New(dErrors.CodeInvalidInput, "account id must be a 0x-prefixed 40-digit hex address")
	}
	return AccountID("0x" + strings.ToLower(hexPart)), nil
}

// MustAccountID is for tests and compile-time-known constants; it panics on
// invalid input.
func MustAccountID(s string) AccountID {
	id, err := ParseAccountID(s)
	if err != nil {
		panic(err)
	}
	return id
}

func (a AccountID) String() string { return string(a) }

// IsZero reports whether the account id is unset.
func (a AccountID) IsZero() bool { return a == "" }

// ProductID is the caller-supplied product key, unique across the system once
// registered.
type ProductID string

// ParseProductID validates an external product identifier.
//
// Errors: CodeInvalidInput when empty after trimming or longer than 128 bytes.
func ParseProductID(s string) (ProductID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "product id cannot be empty")
	}
	if len(s) > maxProductIDLen {
		return "", dErrors.New(dErrors.CodeInvalidInput, "product id exceeds 128 bytes")
	}
	return ProductID(s), nil
}

// MustProductID panics on invalid input; test helper.
func MustProductID(s string) ProductID {
	id, err := ParseProductID(s)
	if err != nil {
		panic(err)
	}
	return id
}

func (p ProductID) String() string { return string(p) }

// ContentHash is the tamper-evidence commitment over a product's descriptive
// fields: 0x-prefixed, 64 hex digits, canonicalized to lowercase. The core
// never recomputes it from sub-fields; it only stores and compares digests
// submitted by callers.
type ContentHash string

// ParseContentHash canonicalizes and validates an external digest string.
func ParseContentHash(s string) (ContentHash, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "content hash cannot be empty")
	}
	hexPart, ok := strip0x(s)
	if !ok || len(hexPart) != contentHexLen || !isHex(hexPart) {
		return "", dErrors.New(dErrors.CodeInvalidInput, "content hash must be a 0x-prefixed 64-digit hex digest")
	}
	return ContentHash("0x" + strings.ToLower(hexPart)), nil
}

// MustContentHash panics on invalid input; test helper.
func MustContentHash(s string) ContentHash {
	h, err := ParseContentHash(s)
	if err != nil {
		panic(err)
	}
	return h
}

func (h ContentHash) String() string { return string(h) }

func strip0x(s string) (string, bool) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return s[2:], true
	}
	return s, false
}

func isHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

package domain

import (
	"fmt"
	"strings"

	dErrors "docseal/pkg/domain-errors"
)

// DigestAlgorithm tags every content hash docseal produces or accepts.
const DigestAlgorithm = "sha256"

// DigestHexLen is the canonical width of a hex-encoded SHA-256 digest.
const DigestHexLen = 64

// Digest is a fixed-length lowercase hex content fingerprint.
//
// Usage: construct via ParseDigest at trust boundaries; direct casting
// bypasses validation and must only be done with bytes produced by the
// fingerprint service itself.
type Digest string

// ParseDigest normalizes and validates an externally supplied hash string.
// Local recovery is limited to trimming whitespace and lowercasing; anything
// that is not exactly 64 lowercase hex characters after that is rejected
// before it can reach a ledger lookup.
func ParseDigest(s string) (Digest, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	if normalized == "" {
		return "", dErrors.New(dErrors.CodeValidation, "hash cannot be empty")
	}
	if len(normalized) != DigestHexLen {
		return "", dErrors.New(dErrors.CodeValidation,
			fmt.Sprintf("hash must be %d hex characters, got %d", DigestHexLen, len(normalized)))
	}
	for _, c := range normalized {
		if !isHexDigit(c) {
			return "", dErrors.New(dErrors.CodeValidation, "hash contains non-hex characters")
		}
	}
	return Digest(normalized), nil
}

func isHexDigit(c rune) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')
}

// String returns the hex representation.
func (d Digest) String() string {
	return string(d)
}

// IsZero reports whether the digest is unset.
func (d Digest) IsZero() bool {
	return d == ""
}

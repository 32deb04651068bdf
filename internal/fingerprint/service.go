// Package fingerprint derives deterministic content fingerprints. A
// fingerprint is the SHA-256 digest of either raw bytes or a document's
// canonical JSON form, always rendered as 64 lowercase hex characters.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"docseal/internal/canonical"
	"docseal/pkg/domain"
	dErrors "docseal/pkg/domain-errors"
)

// Service computes content fingerprints. Stateless and safe for concurrent use.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

// Fingerprint hashes arbitrary byte content. Identical bytes always yield the
// identical digest; no environment, locale, or time dependence.
func (s *Service) Fingerprint(data []byte) (domain.Digest, error) {
	sum := sha256.Sum256(data)
	encoded := hex.EncodeToString(sum[:])
	// A digest of any other width is an implementation error, never a
	// legitimate state. Fail loudly rather than ship a malformed fingerprint.
	if len(encoded) != domain.DigestHexLen {
		return "", dErrors.New(dErrors.CodeInternal,
			fmt.Sprintf("fingerprint width %d, want %d", len(encoded), domain.DigestHexLen))
	}
	return domain.Digest(encoded), nil
}

// FingerprintDocument canonicalizes the document and hashes the canonical
// bytes, so field order and whitespace never affect the fingerprint.
func (s *Service) FingerprintDocument(doc canonical.Document) (domain.Digest, error) {
	data, err := canonical.Marshal(doc)
	if err != nil {
		return "", err
	}
	return s.Fingerprint(data)
}

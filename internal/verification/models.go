package verification

import (
	"time"

	"docseal/internal/canonical"
	"docseal/internal/ledger"
)

// Status is the definite classification of one verification attempt.
type Status string

const (
	// StatusSealed: a sealed record exists whose content hash equals the
	// candidate fingerprint exactly.
	StatusSealed Status = "sealed"

	// StatusTampered: the logical identifier resolved to a record whose
	// stored hash differs from the candidate fingerprint.
	StatusTampered Status = "tampered"

	// StatusNotFound: no record matched any lookup path.
	StatusNotFound Status = "not_found"

	// StatusError: a lookup failed; the answer is unknown, not negative.
	StatusError Status = "error"
)

// Candidate is what a caller submits for verification: either a bare hash or
// a full document, optionally with the identifiers the document claims.
type Candidate struct {
	// Hash is a pre-computed fingerprint. When set, Document is ignored.
	Hash string

	// Document is candidate content to fingerprint and verify.
	Document canonical.Document

	// ArtifactID and LoanID widen the lookup to the identifier space so
	// tampering (same identifier, different hash) can be detected.
	ArtifactID string
	LoanID     string
}

// Outcome is the result of one verification call. Constructed fresh per call;
// never persisted by the engine.
type Outcome struct {
	Status         Status               `json:"status"`
	MatchedRecord  *ledger.SealedRecord `json:"matched_record,omitempty"`
	HashMatch      bool                 `json:"hash_match"`
	TamperDetected bool                 `json:"tamper_detected"`
	VerifiedAt     time.Time            `json:"verified_at"`
}

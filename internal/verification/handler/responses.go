package handler

import (
	"time"

	"docseal/internal/verification"
)

// VerifyResponse is the HTTP response for POST /verify.
type VerifyResponse struct {
	Status         string         `json:"status"`
	HashMatch      bool           `json:"hash_match"`
	TamperDetected bool           `json:"tamper_detected"`
	Matched        *MatchedRecord `json:"matched_record,omitempty"`
	VerifiedAt     time.Time      `json:"verified_at"`
}

// MatchedRecord is the public projection of a sealed record. Document content
// and borrower identity stay server-side.
type MatchedRecord struct {
	ArtifactID  string    `json:"artifact_id"`
	LoanID      string    `json:"loan_id,omitempty"`
	ContentHash string    `json:"content_hash"`
	LedgerRef   string    `json:"ledger_reference,omitempty"`
	SealedAt    time.Time `json:"sealed_at"`
}

// FromOutcome converts a verification outcome to an HTTP response.
func FromOutcome(outcome *verification.Outcome) *VerifyResponse {
	resp := &VerifyResponse{
		Status:         string(outcome.Status),
		HashMatch:      outcome.HashMatch,
		TamperDetected: outcome.TamperDetected,
		VerifiedAt:     outcome.VerifiedAt,
	}
	if record := outcome.MatchedRecord; record != nil {
		resp.Matched = &MatchedRecord{
			ArtifactID:  record.ArtifactID.String(),
			LoanID:      record.LoanID.String(),
			ContentHash: record.ContentHash.String(),
			LedgerRef:   record.LedgerRef,
			SealedAt:    record.CreatedAt,
		}
	}
	return resp
}

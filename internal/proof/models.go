package proof

import (
	"time"

	"docseal/pkg/domain"
)

// CommitmentProof binds a sealed artifact to its content hash without
// carrying any private field values. It is derived deterministically from the
// sealed record, so it can be regenerated at any time but never mutated.
type CommitmentProof struct {
	ProofID        domain.ProofID    `json:"proof_id"`
	ArtifactID     domain.ArtifactID `json:"artifact_id"`
	DocumentHash   domain.Digest     `json:"document_hash"`
	CommitmentHash domain.Digest     `json:"commitment_hash"`
	LedgerRef      string            `json:"ledger_reference,omitempty"`
	GeneratedAt    time.Time         `json:"generated_at"`
}

// Reason is the closed set of proof verification failure causes.
type Reason string

const (
	// ReasonMalformed: the bundle is structurally invalid (missing or
	// non-hex hashes, missing artifact id).
	ReasonMalformed Reason = "malformed proof"

	// ReasonCommitmentMismatch: the commitment does not bind the claimed
	// document hash to the artifact being verified. Covers stale or forged
	// proofs and proofs presented against the wrong artifact.
	ReasonCommitmentMismatch Reason = "commitment mismatch"

	// ReasonDocumentHashMismatch: the commitment is internally consistent
	// but the record's current content hash has diverged from the proof.
	ReasonDocumentHashMismatch Reason = "document hash mismatch"

	// ReasonRecordNotFound: no sealed record exists for the artifact.
	ReasonRecordNotFound Reason = "record not found"
)

// VerifyResult is the outcome of checking a proof against the live ledger.
type VerifyResult struct {
	Verified   bool      `json:"verified"`
	Reason     Reason    `json:"reason,omitempty"`
	VerifiedAt time.Time `json:"verified_at"`
}

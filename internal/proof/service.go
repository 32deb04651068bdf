// Package proof builds and re-verifies commitment proofs for sealed
// artifacts. A proof discloses only the artifact id, the content hash, and
// the public ledger anchor; borrower and loan field values are excluded by
// construction, since the module never reads the sealed document at all.
package proof

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"docseal/internal/audit"
	"docseal/internal/ledger"
	"docseal/pkg/domain"
	dErrors "docseal/pkg/domain-errors"
	"docseal/pkg/requestcontext"
)

// Service generates and verifies commitment proofs against the live ledger.
// Stateless; safe for concurrent use.
type Service struct {
	store  ledger.Store
	audit  *audit.Publisher
	logger *slog.Logger
	tracer trace.Tracer
}

func NewService(store ledger.Store, auditor *audit.Publisher, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		audit:  auditor,
		logger: logger,
		tracer: otel.Tracer("docseal/proof"),
	}
}

// commitment binds a document hash to one artifact so the resulting proof
// cannot be replayed against a different artifact that happens to share the
// same content hash.
func commitment(documentHash domain.Digest, artifactID domain.ArtifactID) domain.Digest {
	sum := sha256.Sum256([]byte(documentHash.String() + ":" + artifactID.String()))
	return domain.Digest(hex.EncodeToString(sum[:]))
}

// Generate fetches the sealed record for the artifact and derives a proof
// from its stored content hash. The hash is never recomputed from document
// fields here.
func (s *Service) Generate(ctx context.Context, rawArtifactID string) (*CommitmentProof, error) {
	ctx, span := s.tracer.Start(ctx, "proof.Generate")
	defer span.End()

	artifactID, err := domain.ParseArtifactID(rawArtifactID)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("docseal.artifact_id", artifactID.String()))

	record, err := s.store.LookupByIdentifier(ctx, artifactID.String())
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "no sealed record for artifact")
		}
		return nil, dErrors.Wrap(dErrors.CodeTransport, "sealed record lookup failed", err)
	}

	ledgerRef := record.LedgerRef
	if ledgerRef == "" {
		// Older records carry the anchor only on the ledger side.
		ledgerRef, err = s.store.FetchLedgerReference(ctx, record.ArtifactID)
		if err != nil && !errors.Is(err, ledger.ErrNotFound) {
			return nil, dErrors.Wrap(dErrors.CodeTransport, "ledger reference lookup failed", err)
		}
	}

	bundle := &CommitmentProof{
		ProofID:        domain.NewProofID(),
		ArtifactID:     record.ArtifactID,
		DocumentHash:   record.ContentHash,
		CommitmentHash: commitment(record.ContentHash, record.ArtifactID),
		LedgerRef:      ledgerRef,
		GeneratedAt:    requestcontext.Now(ctx),
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "commitment proof generated",
			"request_id", requestcontext.RequestID(ctx),
			"artifact_id", bundle.ArtifactID,
			"proof_id", bundle.ProofID,
		)
	}
	s.emit(ctx, audit.ActionProofIssued, bundle.ArtifactID, "generated")

	return bundle, nil
}

// VerifyProof checks a proof bundle against the artifact it claims to cover.
//
// Two independent checks must both pass: the commitment must bind the proof's
// document hash to this artifact, and the ledger's current content hash must
// still equal the proof's. Each failure carries its own reason so a stale
// proof, a tampered record, and a malformed bundle are distinguishable.
// (nil, err) is returned only when the live record cannot be read.
func (s *Service) VerifyProof(ctx context.Context, rawArtifactID string, bundle CommitmentProof) (*VerifyResult, error) {
	ctx, span := s.tracer.Start(ctx, "proof.VerifyProof")
	defer span.End()
	now := requestcontext.Now(ctx)

	artifactID, err := domain.ParseArtifactID(rawArtifactID)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("docseal.artifact_id", artifactID.String()))

	result, err := s.check(ctx, artifactID, bundle)
	if err != nil {
		return nil, err
	}
	result.VerifiedAt = now

	span.SetAttributes(attribute.Bool("docseal.verified", result.Verified))
	if s.logger != nil {
		s.logger.InfoContext(ctx, "commitment proof verified",
			"request_id", requestcontext.RequestID(ctx),
			"artifact_id", artifactID,
			"verified", result.Verified,
			"reason", result.Reason,
		)
	}
	outcome := "verified"
	if !result.Verified {
		outcome = string(result.Reason)
	}
	s.emit(ctx, audit.ActionProofChecked, artifactID, outcome)

	return result, nil
}

func (s *Service) check(ctx context.Context, artifactID domain.ArtifactID, bundle CommitmentProof) (*VerifyResult, error) {
	if malformed(bundle) {
		return &VerifyResult{Reason: ReasonMalformed}, nil
	}

	if commitment(bundle.DocumentHash, artifactID) != bundle.CommitmentHash {
		return &VerifyResult{Reason: ReasonCommitmentMismatch}, nil
	}

	record, err := s.store.LookupByIdentifier(ctx, artifactID.String())
	if errors.Is(err, ledger.ErrNotFound) {
		return &VerifyResult{Reason: ReasonRecordNotFound}, nil
	}
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeTransport, "sealed record lookup failed", err)
	}

	if record.ContentHash != bundle.DocumentHash {
		return &VerifyResult{Reason: ReasonDocumentHashMismatch}, nil
	}

	return &VerifyResult{Verified: true}, nil
}

func malformed(bundle CommitmentProof) bool {
	if bundle.ArtifactID.IsZero() {
		return true
	}
	if _, err := domain.ParseDigest(bundle.DocumentHash.String()); err != nil {
		return true
	}
	if _, err := domain.ParseDigest(bundle.CommitmentHash.String()); err != nil {
		return true
	}
	return false
}

func (s *Service) emit(ctx context.Context, action audit.Action, artifactID domain.ArtifactID, outcome string) {
	if err := s.audit.Emit(ctx, audit.Event{
		Action:     action,
		ArtifactID: artifactID.String(),
		Outcome:    outcome,
	}); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "audit emit failed", "error", err)
	}
}

// Package verification classifies a candidate document or hash against the
// external ledger into a definite status: sealed, tampered, not found, or
// error. "Don't know" (a failed lookup) is never reported as "doesn't exist".
package verification

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"docseal/internal/audit"
	"docseal/internal/fingerprint"
	"docseal/internal/ledger"
	"docseal/internal/verification/metrics"
	"docseal/pkg/domain"
	dErrors "docseal/pkg/domain-errors"
	"docseal/pkg/requestcontext"
)

// Service orchestrates fingerprint resolution, ledger lookup, and status
// classification. Stateless apart from the rolling Stats; safe for any number
// of concurrent verifications.
type Service struct {
	store        ledger.Store
	fingerprints *fingerprint.Service
	stats        *Stats
	metrics      *metrics.Metrics
	audit        *audit.Publisher
	logger       *slog.Logger
	tracer       trace.Tracer
}

func NewService(store ledger.Store, fingerprints *fingerprint.Service, stats *Stats, m *metrics.Metrics, auditor *audit.Publisher, logger *slog.Logger) *Service {
	return &Service{
		store:        store,
		fingerprints: fingerprints,
		stats:        stats,
		metrics:      m,
		audit:        auditor,
		logger:       logger,
		tracer:       otel.Tracer("docseal/verification"),
	}
}

// Verify resolves the candidate to a fingerprint, looks it up in the ledger,
// and classifies the outcome.
//
// Returns (nil, err) only for invalid input, before any lookup. A lookup
// failure returns an Outcome with StatusError together with the underlying
// error so callers see both the classification and the cause.
func (s *Service) Verify(ctx context.Context, candidate Candidate) (*Outcome, error) {
	ctx, span := s.tracer.Start(ctx, "verification.Verify")
	defer span.End()
	start := time.Now()

	digest, err := s.resolveDigest(candidate)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("docseal.content_hash", digest.String()))

	outcome, err := s.classify(ctx, digest, candidate.lookupIdentifier())
	elapsed := time.Since(start)

	s.stats.Record(outcome.Status, elapsed)
	s.metrics.IncrementOutcome(string(outcome.Status))
	s.metrics.ObserveVerifyLatency(elapsed)
	span.SetAttributes(attribute.String("docseal.status", string(outcome.Status)))

	s.logOutcome(ctx, outcome, digest, elapsed, err)
	s.auditOutcome(ctx, outcome, candidate)

	return outcome, err
}

// resolveDigest turns the candidate into a validated fingerprint. A supplied
// hash is normalized and validated; a document is canonicalized and hashed.
func (s *Service) resolveDigest(candidate Candidate) (domain.Digest, error) {
	if candidate.Hash != "" {
		return domain.ParseDigest(candidate.Hash)
	}
	if candidate.Document != nil {
		return s.fingerprints.FingerprintDocument(candidate.Document)
	}
	return "", dErrors.New(dErrors.CodeValidation, "candidate needs a hash or a document")
}

// classify runs the lookup paths in precedence order.
func (s *Service) classify(ctx context.Context, digest domain.Digest, identifier string) (*Outcome, error) {
	now := requestcontext.Now(ctx)

	lookupStart := time.Now()
	record, err := s.store.LookupByHash(ctx, digest)
	s.metrics.ObserveLookupLatency("hash", time.Since(lookupStart))

	switch {
	case err == nil:
		// Exact fingerprint match: sealed, regardless of identifiers.
		return &Outcome{
			Status:        StatusSealed,
			MatchedRecord: record,
			HashMatch:     true,
			VerifiedAt:    now,
		}, nil
	case !errors.Is(err, ledger.ErrNotFound):
		return &Outcome{Status: StatusError, VerifiedAt: now},
			dErrors.Wrap(dErrors.CodeTransport, "ledger hash lookup failed", err)
	}

	if identifier == "" {
		return &Outcome{Status: StatusNotFound, VerifiedAt: now}, nil
	}

	// Secondary path: the same logical identifier may be sealed under a
	// different hash, which is the tampering signature.
	lookupStart = time.Now()
	record, err = s.store.LookupByIdentifier(ctx, identifier)
	s.metrics.ObserveLookupLatency("identifier", time.Since(lookupStart))

	switch {
	case err == nil:
		if record.ContentHash == digest {
			return &Outcome{
				Status:        StatusSealed,
				MatchedRecord: record,
				HashMatch:     true,
				VerifiedAt:    now,
			}, nil
		}
		return &Outcome{
			Status:         StatusTampered,
			MatchedRecord:  record,
			HashMatch:      false,
			TamperDetected: true,
			VerifiedAt:     now,
		}, nil
	case errors.Is(err, ledger.ErrNotFound):
		return &Outcome{Status: StatusNotFound, VerifiedAt: now}, nil
	default:
		return &Outcome{Status: StatusError, VerifiedAt: now},
			dErrors.Wrap(dErrors.CodeTransport, "ledger identifier lookup failed", err)
	}
}

// lookupIdentifier picks the identifier used for the secondary lookup path.
func (c Candidate) lookupIdentifier() string {
	if c.ArtifactID != "" {
		return c.ArtifactID
	}
	return c.LoanID
}

func (s *Service) logOutcome(ctx context.Context, outcome *Outcome, digest domain.Digest, elapsed time.Duration, err error) {
	if s.logger == nil {
		return
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "verification failed",
			"request_id", requestcontext.RequestID(ctx),
			"status", outcome.Status,
			"error", err,
		)
		return
	}
	s.logger.InfoContext(ctx, "verification completed",
		"request_id", requestcontext.RequestID(ctx),
		"status", outcome.Status,
		"hash_match", outcome.HashMatch,
		"duration_ms", elapsed.Milliseconds(),
	)
}

func (s *Service) auditOutcome(ctx context.Context, outcome *Outcome, candidate Candidate) {
	artifactID := candidate.ArtifactID
	if artifactID == "" && outcome.MatchedRecord != nil {
		artifactID = outcome.MatchedRecord.ArtifactID.String()
	}
	if err := s.audit.Emit(ctx, audit.Event{
		Action:     audit.ActionVerification,
		ArtifactID: artifactID,
		Outcome:    string(outcome.Status),
	}); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "audit emit failed", "error", err)
	}
}

// StatsSnapshot exposes the rolling counters for the stats endpoint.
func (s *Service) StatsSnapshot() Snapshot {
	return s.stats.Snapshot()
}

// Package duplicate is the pre-seal gate: it looks for prior submissions
// across the content, loan, and borrower identity dimensions and recommends
// whether sealing should proceed. It runs before sealing, never after.
package duplicate

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"docseal/internal/audit"
	"docseal/internal/duplicate/metrics"
	"docseal/internal/ledger"
	"docseal/pkg/domain"
	dErrors "docseal/pkg/domain-errors"
	"docseal/pkg/requestcontext"
)

// checkTimeout bounds the combined dimension lookups.
const checkTimeout = 5 * time.Second

// Service runs the multi-dimensional prior-submission lookup.
type Service struct {
	store   ledger.Store
	metrics *metrics.Metrics
	audit   *audit.Publisher
	logger  *slog.Logger
}

func NewService(store ledger.Store, m *metrics.Metrics, auditor *audit.Publisher, logger *slog.Logger) *Service {
	return &Service{store: store, metrics: m, audit: auditor, logger: logger}
}

// gathered holds the per-dimension lookup results.
type gathered struct {
	byHash     *ledger.SealedRecord
	byLoanID   *ledger.SealedRecord
	byBorrower []ledger.SealedRecord
}

// Check looks up the candidate across all available dimensions and returns
// the single highest-severity signal.
//
// Errors: CodeValidation for a malformed hash; lookup failures propagate
// untouched so the caller never seals on an unknown answer.
func (s *Service) Check(ctx context.Context, identity CandidateIdentity) (*Signal, error) {
	start := time.Now()

	digest, err := domain.ParseDigest(identity.ContentHash)
	if err != nil {
		return nil, err
	}

	evidence, err := s.gather(ctx, digest, identity)
	if err != nil {
		return nil, err
	}

	signal := classify(digest, identity, evidence)
	s.metrics.ObserveSignal(string(signal.Dimension), string(signal.Action), time.Since(start))
	s.report(ctx, identity, signal)
	return signal, nil
}

// gather runs the dimension lookups in parallel with shared cancellation.
func (s *Service) gather(ctx context.Context, digest domain.Digest, identity CandidateIdentity) (*gathered, error) {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	evidence := &gathered{}

	g.Go(func() error {
		record, err := s.store.LookupByHash(ctx, digest)
		if err != nil && !errors.Is(err, ledger.ErrNotFound) {
			return dErrors.Wrap(dErrors.CodeTransport, "duplicate hash lookup failed", err)
		}
		evidence.byHash = record
		return nil
	})

	if identity.LoanID != "" {
		g.Go(func() error {
			record, err := s.store.LookupByIdentifier(ctx, identity.LoanID)
			if err != nil && !errors.Is(err, ledger.ErrNotFound) {
				return dErrors.Wrap(dErrors.CodeTransport, "duplicate loan lookup failed", err)
			}
			evidence.byLoanID = record
			return nil
		})
	}

	if !identity.Borrower.IsZero() {
		g.Go(func() error {
			records, err := s.store.LookupByBorrowerIdentity(ctx, identity.Borrower)
			if err != nil {
				return dErrors.Wrap(dErrors.CodeTransport, "duplicate borrower lookup failed", err)
			}
			evidence.byBorrower = records
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return evidence, nil
}

// classify applies the precedence rules. Pure domain logic: no I/O.
//
// Precedence (highest first):
//  1. exact_hash — identical content already sealed: critical, block.
//  2. loan_id with a different hash — resubmission vs overwrite is
//     ambiguous, so it is surfaced, not silently allowed or blocked.
//  3. borrower_identity across different loans: medium, warn.
func classify(digest domain.Digest, identity CandidateIdentity, evidence *gathered) *Signal {
	if evidence.byHash != nil {
		return &Signal{
			Dimension:       DimensionExactHash,
			ExistingRecords: []ledger.SealedRecord{*evidence.byHash},
			Risk:            domain.RiskCritical,
			Action:          ActionBlock,
		}
	}

	if evidence.byLoanID != nil && evidence.byLoanID.ContentHash != digest {
		return &Signal{
			Dimension:       DimensionLoanID,
			ExistingRecords: []ledger.SealedRecord{*evidence.byLoanID},
			Risk:            domain.RiskHigh,
			Action:          ActionWarn,
		}
	}

	if others := otherLoans(evidence.byBorrower, identity.LoanID); len(others) > 0 {
		return &Signal{
			Dimension:       DimensionBorrowerIdentity,
			ExistingRecords: others,
			Risk:            domain.RiskMedium,
			Action:          ActionWarn,
		}
	}

	return &Signal{Action: ActionAllow}
}

// otherLoans filters borrower matches down to records sealed under a
// different loan id; the candidate's own loan is the loan_id dimension's job.
func otherLoans(records []ledger.SealedRecord, loanID string) []ledger.SealedRecord {
	var others []ledger.SealedRecord
	for _, record := range records {
		if record.LoanID.String() != loanID {
			others = append(others, record)
		}
	}
	return others
}

func (s *Service) report(ctx context.Context, identity CandidateIdentity, signal *Signal) {
	if signal.Action != ActionAllow && s.logger != nil {
		s.logger.InfoContext(ctx, "duplicate submission detected",
			"request_id", requestcontext.RequestID(ctx),
			"dimension", signal.Dimension,
			"action", signal.Action,
			"risk", signal.Risk,
			"existing", len(signal.ExistingRecords),
		)
	}
	if err := s.audit.Emit(ctx, audit.Event{
		Action:  audit.ActionDuplicateScan,
		Outcome: string(signal.Action),
		Risk:    signal.Risk.String(),
		Detail:  map[string]string{"dimension": string(signal.Dimension)},
	}); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "audit emit failed", "error", err)
	}
}

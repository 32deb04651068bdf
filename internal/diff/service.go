package diff

import (
	"context"
	"log/slog"

	"docseal/internal/canonical"
	"docseal/internal/diff/metrics"
	"docseal/pkg/requestcontext"
)

// Service wraps the pure comparison with logging and metrics. The comparison
// itself stays in Compare so it is trivially testable.
type Service struct {
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewService(logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{logger: logger, metrics: m}
}

// Compare diffs candidate against original and records the outcome.
func (s *Service) Compare(ctx context.Context, original, candidate canonical.Document) ComparisonResult {
	result := Compare(original, candidate)

	s.metrics.ObserveComparison(result.Risk.String(), len(result.Changes))

	if !result.Matches && s.logger != nil {
		s.logger.InfoContext(ctx, "document comparison found changes",
			"request_id", requestcontext.RequestID(ctx),
			"changes", len(result.Changes),
			"risk", result.Risk,
		)
	}
	return result
}

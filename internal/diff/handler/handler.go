// Package handler exposes the structural diff over HTTP. The comparison is
// pure computation, so the handler is little more than decode and encode.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"docseal/internal/canonical"
	"docseal/internal/diff"
	dErrors "docseal/pkg/domain-errors"
	"docseal/pkg/platform/httputil"
	"docseal/pkg/requestcontext"
)

// Service defines the interface for comparison operations.
type Service interface {
	Compare(ctx context.Context, original, candidate canonical.Document) diff.ComparisonResult
}

// Handler wires the compare endpoint to the diff service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts diff endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/compare", h.HandleCompare)
}

// CompareRequest is the HTTP request body for POST /compare.
type CompareRequest struct {
	Original  json.RawMessage `json:"original"`
	Candidate json.RawMessage `json:"candidate"`

	parsedOriginal  canonical.Document
	parsedCandidate canonical.Document
}

// Validate parses both documents.
func (r *CompareRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if len(r.Original) == 0 {
		return dErrors.New(dErrors.CodeValidation, "original document is required")
	}
	if len(r.Candidate) == 0 {
		return dErrors.New(dErrors.CodeValidation, "candidate document is required")
	}

	original, err := canonical.Parse(r.Original)
	if err != nil {
		return err
	}
	candidate, err := canonical.Parse(r.Candidate)
	if err != nil {
		return err
	}
	r.parsedOriginal = original
	r.parsedCandidate = candidate
	return nil
}

// HandleCompare handles POST /compare requests.
func (h *Handler) HandleCompare(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[CompareRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result := h.service.Compare(ctx, req.parsedOriginal, req.parsedCandidate)

	h.logger.InfoContext(ctx, "comparison completed",
		"request_id", requestID,
		"matches", result.Matches,
		"changes", len(result.Changes),
		"risk", result.Risk,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, result)
}

package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"docseal/internal/canonical"
	"docseal/internal/duplicate"
	"docseal/internal/fingerprint"
	"docseal/internal/ledger"
	dErrors "docseal/pkg/domain-errors"
	"docseal/pkg/platform/httputil"
	"docseal/pkg/requestcontext"
)

// Service defines the interface for duplicate gate operations.
type Service interface {
	Check(ctx context.Context, identity duplicate.CandidateIdentity) (*duplicate.Signal, error)
}

// Handler wires the pre-seal duplicate check to the gate service.
type Handler struct {
	service      Service
	fingerprints *fingerprint.Service
	logger       *slog.Logger
}

func New(service Service, fingerprints *fingerprint.Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, fingerprints: fingerprints, logger: logger}
}

// Register mounts duplicate gate endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/duplicates/check", h.HandleCheck)
}

// CheckRequest is the HTTP request body for POST /duplicates/check. Either
// the content hash or the document itself must be supplied; loan id and
// borrower attributes widen the check to the secondary dimensions.
type CheckRequest struct {
	ContentHash string          `json:"content_hash,omitempty"`
	Document    json.RawMessage `json:"document,omitempty"`
	LoanID      string          `json:"loan_id,omitempty"`
	Borrower    BorrowerRequest `json:"borrower,omitempty"`

	parsedDocument canonical.Document
}

// BorrowerRequest carries the borrower identity attributes to match on.
type BorrowerRequest struct {
	Email   string `json:"email,omitempty"`
	IDLast4 string `json:"id_last4,omitempty"`
}

// Validate normalizes the request and parses the document when present.
func (r *CheckRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	r.ContentHash = strings.TrimSpace(r.ContentHash)
	r.LoanID = strings.TrimSpace(r.LoanID)
	r.Borrower.Email = strings.ToLower(strings.TrimSpace(r.Borrower.Email))
	r.Borrower.IDLast4 = strings.TrimSpace(r.Borrower.IDLast4)

	if r.ContentHash == "" && len(r.Document) == 0 {
		return dErrors.New(dErrors.CodeValidation, "either content_hash or document is required")
	}

	if len(r.Document) > 0 {
		doc, err := canonical.Parse(r.Document)
		if err != nil {
			return err
		}
		r.parsedDocument = doc
	}

	return nil
}

// HandleCheck handles POST /duplicates/check requests.
func (h *Handler) HandleCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[CheckRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	hash := req.ContentHash
	if hash == "" {
		digest, err := h.fingerprints.FingerprintDocument(req.parsedDocument)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		hash = digest.String()
	}

	signal, err := h.service.Check(ctx, duplicate.CandidateIdentity{
		ContentHash: hash,
		LoanID:      req.LoanID,
		Borrower: ledger.BorrowerIdentity{
			Email:   req.Borrower.Email,
			IDLast4: req.Borrower.IDLast4,
		},
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "duplicate check failed",
			"request_id", requestID,
			"loan_id", req.LoanID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "duplicate check completed",
		"request_id", requestID,
		"action", signal.Action,
		"dimension", signal.Dimension,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, FromSignal(signal))
}

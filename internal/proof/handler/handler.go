package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"docseal/internal/proof"
	"docseal/pkg/domain"
	dErrors "docseal/pkg/domain-errors"
	"docseal/pkg/platform/httputil"
	"docseal/pkg/requestcontext"
)

// Service defines the interface for proof operations.
type Service interface {
	Generate(ctx context.Context, artifactID string) (*proof.CommitmentProof, error)
	VerifyProof(ctx context.Context, artifactID string, bundle proof.CommitmentProof) (*proof.VerifyResult, error)
}

// Handler wires proof endpoints to the proof service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts proof endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/proofs/generate", h.HandleGenerate)
	r.Post("/proofs/verify", h.HandleVerify)
}

// GenerateRequest is the HTTP request body for POST /proofs/generate.
type GenerateRequest struct {
	ArtifactID string `json:"artifact_id"`
}

func (r *GenerateRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.ArtifactID = strings.TrimSpace(r.ArtifactID)
	if r.ArtifactID == "" {
		return dErrors.New(dErrors.CodeValidation, "artifact_id is required")
	}
	return nil
}

// VerifyRequest is the HTTP request body for POST /proofs/verify.
type VerifyRequest struct {
	ArtifactID string      `json:"artifact_id"`
	Proof      ProofBundle `json:"proof"`
}

// ProofBundle mirrors the wire shape of a generated proof.
type ProofBundle struct {
	ProofID        string    `json:"proof_id"`
	ArtifactID     string    `json:"artifact_id"`
	DocumentHash   string    `json:"document_hash"`
	CommitmentHash string    `json:"commitment_hash"`
	LedgerRef      string    `json:"ledger_reference,omitempty"`
	GeneratedAt    time.Time `json:"generated_at"`
}

// Validate checks only what the handler owns: the target artifact id. The
// bundle itself is judged by the service so a malformed proof is reported as
// a verification failure, not a rejected request.
func (r *VerifyRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.ArtifactID = strings.TrimSpace(r.ArtifactID)
	if r.ArtifactID == "" {
		return dErrors.New(dErrors.CodeValidation, "artifact_id is required")
	}
	return nil
}

func (b ProofBundle) toDomain() proof.CommitmentProof {
	return proof.CommitmentProof{
		ProofID:        domain.ProofID(b.ProofID),
		ArtifactID:     domain.ArtifactID(strings.TrimSpace(b.ArtifactID)),
		DocumentHash:   domain.Digest(strings.TrimSpace(b.DocumentHash)),
		CommitmentHash: domain.Digest(strings.TrimSpace(b.CommitmentHash)),
		LedgerRef:      b.LedgerRef,
		GeneratedAt:    b.GeneratedAt,
	}
}

// HandleGenerate handles POST /proofs/generate requests.
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[GenerateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	bundle, err := h.service.Generate(ctx, req.ArtifactID)
	if err != nil {
		h.logger.ErrorContext(ctx, "proof generation failed",
			"request_id", requestID,
			"artifact_id", req.ArtifactID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, bundle)
}

// HandleVerify handles POST /proofs/verify requests.
func (h *Handler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[VerifyRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.VerifyProof(ctx, req.ArtifactID, req.Proof.toDomain())
	if err != nil {
		h.logger.ErrorContext(ctx, "proof verification failed",
			"request_id", requestID,
			"artifact_id", req.ArtifactID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "proof verification completed",
		"request_id", requestID,
		"artifact_id", req.ArtifactID,
		"verified", result.Verified,
	)

	httputil.WriteJSON(w, http.StatusOK, result)
}

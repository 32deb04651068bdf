package handler

import (
	"encoding/json"
	"strings"

	"docseal/internal/canonical"
	"docseal/internal/verification"
	dErrors "docseal/pkg/domain-errors"
)

// VerifyRequest is the HTTP request body for POST /verify. Exactly one of
// hash or document must be provided; identifiers are optional.
type VerifyRequest struct {
	Hash       string          `json:"hash,omitempty"`
	Document   json.RawMessage `json:"document,omitempty"`
	ArtifactID string          `json:"artifact_id,omitempty"`
	LoanID     string          `json:"loan_id,omitempty"`

	parsedDocument canonical.Document
}

// Validate normalizes and checks the request shape. Hash format itself is
// validated by the service so its errors come from one place.
func (r *VerifyRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	r.Hash = strings.TrimSpace(r.Hash)
	r.ArtifactID = strings.TrimSpace(r.ArtifactID)
	r.LoanID = strings.TrimSpace(r.LoanID)

	if r.Hash == "" && len(r.Document) == 0 {
		return dErrors.New(dErrors.CodeValidation, "either hash or document is required")
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

// Candidate converts the validated request into the service input.
func (r *VerifyRequest) Candidate() verification.Candidate {
	return verification.Candidate{
		Hash:       r.Hash,
		Document:   r.parsedDocument,
		ArtifactID: r.ArtifactID,
		LoanID:     r.LoanID,
	}
}

package domain

import (
	"strings"

	"github.com/google/uuid"

	dErrors "docseal/pkg/domain-errors"
)

// Identifier limits; external systems mint artifact and loan ids, so docseal
// only enforces shape, not format.
const maxIdentifierLen = 128

// ArtifactID names one sealed artifact in the external ledger.
type ArtifactID string

// ParseArtifactID constructs an ArtifactID from external input.
//
// Errors: CodeValidation when the value is empty or oversized.
func ParseArtifactID(s string) (ArtifactID, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", dErrors.New(dErrors.CodeValidation, "artifact id cannot be empty")
	}
	if len(trimmed) > maxIdentifierLen {
		return "", dErrors.New(dErrors.CodeValidation, "artifact id too long")
	}
	return ArtifactID(trimmed), nil
}

func (id ArtifactID) String() string { return string(id) }

// IsZero reports whether the id is unset.
func (id ArtifactID) IsZero() bool { return id == "" }

// LoanID names the loan or application a document belongs to.
type LoanID string

// ParseLoanID constructs a LoanID from external input.
func ParseLoanID(s string) (LoanID, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", dErrors.New(dErrors.CodeValidation, "loan id cannot be empty")
	}
	if len(trimmed) > maxIdentifierLen {
		return "", dErrors.New(dErrors.CodeValidation, "loan id too long")
	}
	return LoanID(trimmed), nil
}

func (id LoanID) String() string { return string(id) }

// IsZero reports whether the id is unset.
func (id LoanID) IsZero() bool { return id == "" }

// ProofID uniquely names one generated commitment proof.
type ProofID string

// NewProofID mints a fresh proof id.
func NewProofID() ProofID {
	return ProofID(uuid.NewString())
}

func (id ProofID) String() string { return string(id) }

package duplicate

import (
	"docseal/internal/ledger"
	"docseal/pkg/domain"
)

// Dimension names the identity axis on which a prior submission matched.
type Dimension string

const (
	DimensionExactHash        Dimension = "exact_hash"
	DimensionLoanID           Dimension = "loan_id"
	DimensionBorrowerIdentity Dimension = "borrower_identity"
)

// Action is the gate's recommendation to the sealing caller.
type Action string

const (
	ActionBlock Action = "block"
	ActionWarn  Action = "warn"
	ActionAllow Action = "allow"
)

// CandidateIdentity carries everything the gate can match on. Hash is
// required; the other dimensions are checked when present.
type CandidateIdentity struct {
	ContentHash string
	LoanID      string
	Borrower    ledger.BorrowerIdentity
}

// Signal is the gate's verdict. When several dimensions match, only the
// highest-severity one is reported; partial matches are never merged into a
// weaker combined signal.
type Signal struct {
	Dimension       Dimension             `json:"match_dimension,omitempty"`
	ExistingRecords []ledger.SealedRecord `json:"existing_records,omitempty"`
	Risk            domain.RiskLevel      `json:"risk_level,omitempty"`
	Action          Action                `json:"recommended_action"`
}

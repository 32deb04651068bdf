package ledger

import (
	"time"

	"docseal/internal/canonical"
	"docseal/pkg/domain"
)

// SealedRecord is an immutable, ledger-anchored record created once at seal
// time by the external ledger service. The engine treats it as read-only.
type SealedRecord struct {
	ArtifactID   domain.ArtifactID  `json:"artifact_id"`
	LoanID       domain.LoanID      `json:"loan_id,omitempty"`
	EntityTypeID string             `json:"entity_type_id,omitempty"`
	ContentHash  domain.Digest      `json:"content_hash"`
	Document     canonical.Document `json:"document,omitempty"`
	LedgerRef    string             `json:"ledger_ref,omitempty"`
	Borrower     BorrowerIdentity   `json:"borrower,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
}

// BorrowerIdentity carries the identity attributes the duplicate gate matches
// on. Only low-sensitivity projections (email, last-4) ever appear here.
type BorrowerIdentity struct {
	Email   string `json:"email,omitempty"`
	IDLast4 string `json:"id_last4,omitempty"`
}

// IsZero reports whether no identity attribute is populated.
func (b BorrowerIdentity) IsZero() bool {
	return b.Email == "" && b.IDLast4 == ""
}

// Matches reports whether two identities share at least one populated
// attribute. Empty attributes never match anything.
func (b BorrowerIdentity) Matches(other BorrowerIdentity) bool {
	if b.Email != "" && b.Email == other.Email {
		return true
	}
	if b.IDLast4 != "" && b.IDLast4 == other.IDLast4 {
		return true
	}
	return false
}

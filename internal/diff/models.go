package diff

import "docseal/pkg/domain"

// ChangeType classifies a single field difference.
type ChangeType string

const (
	ChangeAdded    ChangeType = "added"
	ChangeRemoved  ChangeType = "removed"
	ChangeModified ChangeType = "modified"
)

// FieldChange describes one differing field path between the sealed document
// and the candidate, with the sensitivity-derived risk of that change.
type FieldChange struct {
	Field         string           `json:"field"`
	Type          ChangeType       `json:"change_type"`
	OriginalValue any              `json:"original_value,omitempty"`
	NewValue      any              `json:"new_value,omitempty"`
	Risk          domain.RiskLevel `json:"risk_level"`
}

// ComparisonResult is the full structural diff. Risk is the maximum severity
// among the changes; an empty change set has no rollup severity.
type ComparisonResult struct {
	Matches bool             `json:"matches"`
	Changes []FieldChange    `json:"changes"`
	Risk    domain.RiskLevel `json:"risk_level,omitempty"`
}

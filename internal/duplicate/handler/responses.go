package handler

import (
	"time"

	"docseal/internal/duplicate"
)

// CheckResponse is the HTTP response for POST /duplicates/check.
type CheckResponse struct {
	RecommendedAction string           `json:"recommended_action"`
	MatchDimension    string           `json:"match_dimension,omitempty"`
	RiskLevel         string           `json:"risk_level,omitempty"`
	Existing          []ExistingRecord `json:"existing_records,omitempty"`
}

// ExistingRecord is the public projection of a matched sealed record. The
// stored document and borrower identity never cross this boundary.
type ExistingRecord struct {
	ArtifactID  string    `json:"artifact_id"`
	LoanID      string    `json:"loan_id,omitempty"`
	ContentHash string    `json:"content_hash"`
	SealedAt    time.Time `json:"sealed_at"`
}

// FromSignal converts a gate signal to an HTTP response.
func FromSignal(signal *duplicate.Signal) *CheckResponse {
	resp := &CheckResponse{
		RecommendedAction: string(signal.Action),
		MatchDimension:    string(signal.Dimension),
		RiskLevel:         signal.Risk.String(),
	}
	for _, record := range signal.ExistingRecords {
		resp.Existing = append(resp.Existing, ExistingRecord{
			ArtifactID:  record.ArtifactID.String(),
			LoanID:      record.LoanID.String(),
			ContentHash: record.ContentHash.String(),
			SealedAt:    record.CreatedAt,
		})
	}
	return resp
}

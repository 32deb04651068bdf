package audit

import "time"

// Action identifies what the engine did.
type Action string

const (
	ActionVerification  Action = "verification.completed"
	ActionComparison    Action = "comparison.completed"
	ActionDuplicateScan Action = "duplicate.checked"
	ActionProofIssued   Action = "proof.generated"
	ActionProofChecked  Action = "proof.verified"
)

// Event is emitted from domain logic to capture key engine actions. Keep it
// transport-agnostic so stores and sinks can fan out. Private document fields
// never appear here; Detail carries only classifications and identifiers.
type Event struct {
	Timestamp  time.Time         `json:"timestamp"`
	RequestID  string            `json:"request_id,omitempty"`
	Actor      string            `json:"actor,omitempty"`
	Action     Action            `json:"action"`
	ArtifactID string            `json:"artifact_id,omitempty"`
	Outcome    string            `json:"outcome"`
	Risk       string            `json:"risk,omitempty"`
	Detail     map[string]string `json:"detail,omitempty"`
}

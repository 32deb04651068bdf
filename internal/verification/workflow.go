package verification

import dErrors "docseal/pkg/domain-errors"

// State names one step of the verification pipeline.
type State string

const (
	StateIdle            State = "idle"
	StateResolving       State = "resolving"
	StateVerifying       State = "verifying"
	StateSealed          State = "sealed"
	StateTampered        State = "tampered"
	StateNotFound        State = "not_found"
	StateError           State = "error"
	StateComparing       State = "comparing"
	StateProofGenerating State = "proof_generating"
	StateProofVerified   State = "proof_verified"
)

// transitions lists the legal next states. Comparing and the proof states are
// only reachable from Sealed; Tampered, NotFound, and Error are terminal for
// the invocation. A new invocation always starts a fresh Workflow at Idle.
var transitions = map[State][]State{
	StateIdle:            {StateResolving},
	StateResolving:       {StateVerifying, StateError},
	StateVerifying:       {StateSealed, StateTampered, StateNotFound, StateError},
	StateSealed:          {StateComparing, StateProofGenerating},
	StateComparing:       {StateProofGenerating},
	StateProofGenerating: {StateProofVerified},
	StateTampered:        nil,
	StateNotFound:        nil,
	StateError:           nil,
	StateProofVerified:   nil,
}

// Workflow tracks one verification invocation through its states. Transitions
// are driven by explicit calls; no step may be skipped. Caller-owned state:
// the engine itself never holds one across requests.
type Workflow struct {
	state State
}

// NewWorkflow starts at Idle.
func NewWorkflow() *Workflow {
	return &Workflow{state: StateIdle}
}

// State returns the current state.
func (w *Workflow) State() State {
	return w.state
}

// CanTransition reports whether moving to next is legal from the current state.
func (w *Workflow) CanTransition(next State) bool {
	for _, allowed := range transitions[w.state] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Transition advances the workflow or rejects the move.
//
// Errors: CodeConflict when next is not reachable from the current state,
// including any move out of a terminal state.
func (w *Workflow) Transition(next State) error {
	if !w.CanTransition(next) {
		return dErrors.New(dErrors.CodeConflict,
			"illegal workflow transition from "+string(w.state)+" to "+string(next))
	}
	w.state = next
	return nil
}

// Terminal reports whether the current state ends the invocation.
func (w *Workflow) Terminal() bool {
	return len(transitions[w.state]) == 0
}

package verification

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "docseal/pkg/domain-errors"
)

func TestWorkflowHappyPathToProof(t *testing.T) {
	w := NewWorkflow()
	assert.Equal(t, StateIdle, w.State())

	for _, next := range []State{
		StateResolving, StateVerifying, StateSealed,
		StateComparing, StateProofGenerating, StateProofVerified,
	} {
		require.NoError(t, w.Transition(next))
		assert.Equal(t, next, w.State())
	}
	assert.True(t, w.Terminal())
}

func TestWorkflowComparingIsOptional(t *testing.T) {
	w := NewWorkflow()
	require.NoError(t, w.Transition(StateResolving))
	require.NoError(t, w.Transition(StateVerifying))
	require.NoError(t, w.Transition(StateSealed))
	require.NoError(t, w.Transition(StateProofGenerating))
	require.NoError(t, w.Transition(StateProofVerified))
}

func TestWorkflowRejectsSkippedSteps(t *testing.T) {
	t.Run("no proof before sealed", func(t *testing.T) {
		w := NewWorkflow()
		err := w.Transition(StateProofGenerating)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
	})

	t.Run("no verifying from idle", func(t *testing.T) {
		w := NewWorkflow()
		assert.Error(t, w.Transition(StateVerifying))
	})

	t.Run("no comparing from tampered", func(t *testing.T) {
		w := NewWorkflow()
		require.NoError(t, w.Transition(StateResolving))
		require.NoError(t, w.Transition(StateVerifying))
		require.NoError(t, w.Transition(StateTampered))
		assert.Error(t, w.Transition(StateComparing), "comparing is only reachable from sealed")
	})
}

func TestWorkflowTerminalStates(t *testing.T) {
	for _, terminal := range []State{StateTampered, StateNotFound, StateError} {
		w := NewWorkflow()
		require.NoError(t, w.Transition(StateResolving))
		if terminal == StateError {
			require.NoError(t, w.Transition(StateError))
		} else {
			require.NoError(t, w.Transition(StateVerifying))
			require.NoError(t, w.Transition(terminal))
		}
		assert.True(t, w.Terminal())

		for _, next := range []State{StateIdle, StateResolving, StateSealed, StateComparing} {
			assert.Error(t, w.Transition(next), "terminal state %s must reject %s", terminal, next)
		}
	}
}

package audit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docseal/pkg/requestcontext"
)

func TestPublisherEmit(t *testing.T) {
	store := NewInMemoryStore()
	publisher := NewPublisher(store)

	ctx := requestcontext.WithRequestID(context.Background(), "req-1")
	ctx = requestcontext.WithUserID(ctx, "auditor@example.com")

	err := publisher.Emit(ctx, Event{
		Action:     ActionVerification,
		ArtifactID: "art-1",
		Outcome:    "sealed",
	})
	require.NoError(t, err)

	events := store.Events()
	require.Len(t, events, 1)
	assert.Equal(t, ActionVerification, events[0].Action)
	assert.Equal(t, "req-1", events[0].RequestID, "request id filled from context")
	assert.Equal(t, "auditor@example.com", events[0].Actor)
	assert.False(t, events[0].Timestamp.IsZero(), "timestamp stamped on emit")
}

func TestNilPublisherIsNoOp(t *testing.T) {
	var publisher *Publisher
	assert.NoError(t, publisher.Emit(context.Background(), Event{Action: ActionProofIssued}))
}

func TestWorkerPersistsFromInbox(t *testing.T) {
	store := NewInMemoryStore()
	inbox := make(chan Event, 1)
	worker := NewWorker(store, inbox)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- worker.Run(ctx) }()

	inbox <- Event{Action: ActionDuplicateScan, Outcome: "block"}

	require.Eventually(t, func() bool {
		return len(store.Events()) == 1
	}, time.Second, 10*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestQueueRejectsWhenFull(t *testing.T) {
	queue := NewQueue(1)

	require.NoError(t, queue.Append(context.Background(), Event{Action: ActionVerification}))
	assert.Error(t, queue.Append(context.Background(), Event{Action: ActionVerification}))
}

func TestQueueFeedsWorker(t *testing.T) {
	store := NewInMemoryStore()
	queue := NewQueue(4)
	worker := NewWorker(store, queue.Events())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = worker.Run(ctx) }()

	publisher := NewPublisher(queue)
	require.NoError(t, publisher.Emit(context.Background(), Event{Action: ActionProofChecked, Outcome: "verified"}))

	require.Eventually(t, func() bool {
		return len(store.Events()) == 1
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, ActionProofChecked, store.Events()[0].Action)
}

// Package audit records an append-only trail of engine actions. Services emit
// events through a Publisher; the configured Store decides where they land
// (memory for dev/tests, Kafka for production).
package audit

import (
	"context"
	"time"

	"docseal/pkg/requestcontext"
)

// Store is an append-only event sink.
type Store interface {
	Append(ctx context.Context, event Event) error
}

// Publisher captures structured audit events. It is append-only and uses the
// storage layer for persistence so tests can swap sinks easily.
type Publisher struct {
	store Store
}

func NewPublisher(store Store) *Publisher {
	return &Publisher{store: store}
}

// Emit stamps and appends one event. A nil publisher is a no-op so services
// can run without an audit trail wired.
func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if p == nil || p.store == nil {
		return nil
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}
	if event.Actor == "" {
		event.Actor = requestcontext.UserID(ctx)
	}
	return p.store.Append(ctx, event)
}

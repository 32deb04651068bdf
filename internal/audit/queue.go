package audit

import (
	"context"

	dErrors "docseal/pkg/domain-errors"
)

// Queue is a buffered Store that hands events to a Worker instead of hitting
// the sink on the request path. Appends never block: when the buffer is full
// the event is rejected and the emitter decides what to log.
type Queue struct {
	inbox chan Event
}

func NewQueue(buffer int) *Queue {
	return &Queue{inbox: make(chan Event, buffer)}
}

func (q *Queue) Append(_ context.Context, event Event) error {
	select {
	case q.inbox <- event:
		return nil
	default:
		return dErrors.New(dErrors.CodeInternal, "audit queue full")
	}
}

// Events exposes the consumer side for a Worker.
func (q *Queue) Events() <-chan Event {
	return q.inbox
}

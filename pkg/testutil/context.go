package testutil

import (
	"context"
	"io"
	"log/slog"
	"time"

	"docseal/pkg/requestcontext"
)

// Logger returns a slog.Logger that discards output, for injecting into
// services and handlers under test.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Context returns a background context carrying a deterministic request id
// and the given fixed time, mirroring what the middleware chain would set.
func Context(fixed time.Time) context.Context {
	ctx := requestcontext.WithRequestID(context.Background(), "test-request")
	return requestcontext.WithTime(ctx, fixed)
}

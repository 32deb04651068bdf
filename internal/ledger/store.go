// Package ledger defines the port to the external Ledger Store and its
// adapters: a remote HTTP client for production, an in-memory store for tests
// and local development, a PostgreSQL read mirror, and a Redis read-through
// cache. The engine never mutates a SealedRecord through this port.
package ledger

import (
	"context"
	"errors"

	"docseal/pkg/domain"
)

// ErrNotFound is returned by lookups that completed but matched no record.
// Adapters must never return it for transport or storage failures: "don't
// know" and "doesn't exist" are different answers.
var ErrNotFound = errors.New("ledger: record not found")

// Store is the lookup contract the verification engine, duplicate gate, and
// proof module consume. All implementations must be safe for concurrent use.
type Store interface {
	// LookupByHash finds the sealed record whose content hash equals the
	// digest exactly. Returns ErrNotFound when no record matches.
	LookupByHash(ctx context.Context, hash domain.Digest) (*SealedRecord, error)

	// LookupByIdentifier finds a sealed record by artifact id or loan id.
	// Returns ErrNotFound when no record matches either identifier space.
	LookupByIdentifier(ctx context.Context, identifier string) (*SealedRecord, error)

	// LookupByBorrowerIdentity finds all sealed records whose borrower
	// attributes match. An empty result is not an error.
	LookupByBorrowerIdentity(ctx context.Context, identity BorrowerIdentity) ([]SealedRecord, error)

	// FetchLedgerReference resolves the opaque external anchor for an
	// artifact. Returns ErrNotFound when the artifact is unknown.
	FetchLedgerReference(ctx context.Context, artifactID domain.ArtifactID) (string, error)
}

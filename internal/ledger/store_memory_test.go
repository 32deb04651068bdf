package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docseal/pkg/domain"
)

func seededStore() *InMemoryStore {
	store := NewInMemoryStore()
	store.Seal(SealedRecord{
		ArtifactID:  "art-1",
		LoanID:      "L1",
		ContentHash: domain.Digest("1111111111111111111111111111111111111111111111111111111111111111"),
		LedgerRef:   "tx-abc",
		Borrower:    BorrowerIdentity{Email: "ada@example.com", IDLast4: "6789"},
		CreatedAt:   time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC),
	})
	store.Seal(SealedRecord{
		ArtifactID:  "art-2",
		LoanID:      "L2",
		ContentHash: domain.Digest("2222222222222222222222222222222222222222222222222222222222222222"),
		Borrower:    BorrowerIdentity{Email: "grace@example.com"},
		CreatedAt:   time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC),
	})
	return store
}

func TestInMemoryStoreLookups(t *testing.T) {
	ctx := context.Background()
	store := seededStore()

	t.Run("lookup by hash", func(t *testing.T) {
		record, err := store.LookupByHash(ctx, "1111111111111111111111111111111111111111111111111111111111111111")
		require.NoError(t, err)
		assert.Equal(t, domain.ArtifactID("art-1"), record.ArtifactID)
	})

	t.Run("lookup by hash misses", func(t *testing.T) {
		_, err := store.LookupByHash(ctx, "ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("lookup by artifact id", func(t *testing.T) {
		record, err := store.LookupByIdentifier(ctx, "art-2")
		require.NoError(t, err)
		assert.Equal(t, domain.LoanID("L2"), record.LoanID)
	})

	t.Run("lookup by loan id", func(t *testing.T) {
		record, err := store.LookupByIdentifier(ctx, "L1")
		require.NoError(t, err)
		assert.Equal(t, domain.ArtifactID("art-1"), record.ArtifactID)
	})

	t.Run("lookup by borrower email", func(t *testing.T) {
		records, err := store.LookupByBorrowerIdentity(ctx, BorrowerIdentity{Email: "ada@example.com"})
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, domain.ArtifactID("art-1"), records[0].ArtifactID)
	})

	t.Run("lookup by id last4", func(t *testing.T) {
		records, err := store.LookupByBorrowerIdentity(ctx, BorrowerIdentity{IDLast4: "6789"})
		require.NoError(t, err)
		require.Len(t, records, 1)
	})

	t.Run("empty identity matches nothing", func(t *testing.T) {
		records, err := store.LookupByBorrowerIdentity(ctx, BorrowerIdentity{})
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("fetch ledger reference", func(t *testing.T) {
		ref, err := store.FetchLedgerReference(ctx, "art-1")
		require.NoError(t, err)
		assert.Equal(t, "tx-abc", ref)

		_, err = store.FetchLedgerReference(ctx, "art-unknown")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestBorrowerIdentityMatches(t *testing.T) {
	a := BorrowerIdentity{Email: "ada@example.com", IDLast4: "6789"}

	assert.True(t, a.Matches(BorrowerIdentity{Email: "ada@example.com"}))
	assert.True(t, a.Matches(BorrowerIdentity{IDLast4: "6789", Email: "other@example.com"}))
	assert.False(t, a.Matches(BorrowerIdentity{Email: "other@example.com"}))
	assert.False(t, BorrowerIdentity{}.Matches(BorrowerIdentity{}), "empty attributes never match")
}

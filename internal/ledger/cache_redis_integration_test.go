//go:build integration

package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"docseal/internal/canonical"
	"docseal/internal/ledger"
	"docseal/pkg/domain"
	"docseal/pkg/testutil/containers"
)

type RedisCacheSuite struct {
	suite.Suite
	redis  *containers.RedisContainer
	source *ledger.InMemoryStore
	cache  *ledger.RedisCache
}

func TestRedisCacheSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisCacheSuite))
}

func (s *RedisCacheSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.redis = mgr.GetRedis(s.T())
}

func (s *RedisCacheSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
	s.source = ledger.NewInMemoryStore()
	s.cache = ledger.NewRedisCache(s.source, s.redis.Client, 5*time.Minute, nil)
}

func (s *RedisCacheSuite) sealedRecord(artifactID string, hash domain.Digest) ledger.SealedRecord {
	record := ledger.SealedRecord{
		ArtifactID:  domain.ArtifactID(artifactID),
		LoanID:      "L1",
		ContentHash: hash,
		Document:    canonical.Document{"loan_id": "L1"},
		LedgerRef:   "tx-" + artifactID,
		CreatedAt:   time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	s.source.Seal(record)
	return record
}

const cachedHash = domain.Digest("cccccccccccccccccccccccccccccccccccccccccccccccccccccccccccccccc")

func (s *RedisCacheSuite) TestLookupByHashPopulatesCache() {
	ctx := context.Background()
	seeded := s.sealedRecord("art-1", cachedHash)

	found, err := s.cache.LookupByHash(ctx, cachedHash)
	s.Require().NoError(err)
	s.Equal(seeded.ArtifactID, found.ArtifactID)

	// Second read comes from the cache: removing the source record must not
	// change the answer, sealed records are immutable.
	s.source = ledger.NewInMemoryStore()
	s.cache = ledger.NewRedisCache(s.source, s.redis.Client, 5*time.Minute, nil)

	cached, err := s.cache.LookupByHash(ctx, cachedHash)
	s.Require().NoError(err)
	s.Equal(seeded.ArtifactID, cached.ArtifactID)
	s.Equal(seeded.ContentHash, cached.ContentHash)
}

func (s *RedisCacheSuite) TestLookupByHashMissIsNotCached() {
	ctx := context.Background()

	_, err := s.cache.LookupByHash(ctx, cachedHash)
	s.Require().ErrorIs(err, ledger.ErrNotFound)

	// Sealing afterwards must be visible immediately.
	s.sealedRecord("art-1", cachedHash)
	found, err := s.cache.LookupByHash(ctx, cachedHash)
	s.Require().NoError(err)
	s.Equal(domain.ArtifactID("art-1"), found.ArtifactID)
}

func (s *RedisCacheSuite) TestIdentifierLookupsPassThrough() {
	ctx := context.Background()
	s.sealedRecord("art-1", cachedHash)

	found, err := s.cache.LookupByIdentifier(ctx, "art-1")
	s.Require().NoError(err)
	s.Equal(domain.ArtifactID("art-1"), found.ArtifactID)

	records, err := s.cache.LookupByBorrowerIdentity(ctx, ledger.BorrowerIdentity{Email: "x@example.com"})
	s.Require().NoError(err)
	s.Empty(records)
}

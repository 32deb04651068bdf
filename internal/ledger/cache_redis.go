package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"docseal/pkg/domain"
)

// RedisCache is a read-through cache in front of another Store, keyed by
// content hash. Sealed records are immutable, so a positive cache entry can
// never go stale; the TTL only bounds memory. Identifier and borrower
// lookups pass through uncached because their answer can change as new
// records are sealed.
type RedisCache struct {
	next   Store
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewRedisCache(next Store, client *redis.Client, ttl time.Duration, logger *slog.Logger) *RedisCache {
	return &RedisCache{next: next, client: client, ttl: ttl, logger: logger}
}

func cacheKey(hash domain.Digest) string {
	return "docseal:sealed:" + hash.String()
}

func (c *RedisCache) LookupByHash(ctx context.Context, hash domain.Digest) (*SealedRecord, error) {
	cached, err := c.client.Get(ctx, cacheKey(hash)).Bytes()
	if err == nil {
		var record SealedRecord
		if err := json.Unmarshal(cached, &record); err == nil {
			return &record, nil
		}
		// Corrupt entry: fall through to the source and rewrite.
	} else if !errors.Is(err, redis.Nil) && c.logger != nil {
		// Cache unavailability must not fail the lookup.
		c.logger.WarnContext(ctx, "sealed record cache read failed", "error", err)
	}

	record, err := c.next.LookupByHash(ctx, hash)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(record); err == nil {
		if err := c.client.Set(ctx, cacheKey(hash), payload, c.ttl).Err(); err != nil && c.logger != nil {
			c.logger.WarnContext(ctx, "sealed record cache write failed", "error", err)
		}
	}
	return record, nil
}

func (c *RedisCache) LookupByIdentifier(ctx context.Context, identifier string) (*SealedRecord, error) {
	return c.next.LookupByIdentifier(ctx, identifier)
}

func (c *RedisCache) LookupByBorrowerIdentity(ctx context.Context, identity BorrowerIdentity) ([]SealedRecord, error) {
	return c.next.LookupByBorrowerIdentity(ctx, identity)
}

func (c *RedisCache) FetchLedgerReference(ctx context.Context, artifactID domain.ArtifactID) (string, error) {
	return c.next.FetchLedgerReference(ctx, artifactID)
}

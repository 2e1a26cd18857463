package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"video-ingest-service/ddd/domain/gateway"
)

const ownerListingKeyFmt = "videos:owner:%s"

// RedisListingCache implements gateway.ListingCache on Redis. Listings
// are stored as one JSON blob per owner.
type RedisListingCache struct {
	client *redis.Client
}

func NewRedisListingCache(client *redis.Client) *RedisListingCache {
	return &RedisListingCache{client: client}
}

func (c *RedisListingCache) SetOwnerListing(ctx context.Context, ownerUUID string, listing []gateway.CachedVideo, ttl time.Duration) error {
	if c.client == nil {
		return errors.New("redis client not configured")
	}
	payload, err := json.Marshal(listing)
	if err != nil {
		return fmt.Errorf("marshal listing: %w", err)
	}
	return c.client.Set(ctx, ownerListingKey(ownerUUID), payload, ttl).Err()
}

func (c *RedisListingCache) GetOwnerListing(ctx context.Context, ownerUUID string) ([]gateway.CachedVideo, bool, error) {
	if c.client == nil {
		return nil, false, errors.New("redis client not configured")
	}
	payload, err := c.client.Get(ctx, ownerListingKey(ownerUUID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var listing []gateway.CachedVideo
	if err := json.Unmarshal(payload, &listing); err != nil {
		// A corrupt entry is treated as a miss.
		return nil, false, fmt.Errorf("unmarshal listing: %w", err)
	}
	return listing, true, nil
}

func ownerListingKey(ownerUUID string) string {
	return fmt.Sprintf(ownerListingKeyFmt, ownerUUID)
}

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"stayhub/internal/models"
)

// ErrCacheMiss is returned when no cached entry exists for a listing.
var ErrCacheMiss = errors.New("cache miss")

// ListingCache is a read-through cache for single-listing lookups. Entries
// are invalidated on update, so a short TTL only bounds staleness after an
// out-of-band change.
type ListingCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewListingCache(client *redis.Client, ttl time.Duration) *ListingCache {
	return &ListingCache{client: client, ttl: ttl}
}

func (c *ListingCache) Get(ctx context.Context, id string) (models.Listing, error) {
	raw, err := c.client.Get(ctx, listingKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return models.Listing{}, ErrCacheMiss
		}
		return models.Listing{}, err
	}

	var listing models.Listing
	if err := json.Unmarshal(raw, &listing); err != nil {
		return models.Listing{}, ErrCacheMiss
	}
	return listing, nil
}

func (c *ListingCache) Set(ctx context.Context, listing models.Listing) error {
	raw, err := json.Marshal(listing)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, listingKey(listing.ID), raw, c.ttl).Err()
}

func (c *ListingCache) Invalidate(ctx context.Context, id string) error {
	return c.client.Del(ctx, listingKey(id)).Err()
}

func listingKey(id string) string {
	return "listing:" + id
}

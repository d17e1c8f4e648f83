package repositories

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"diraBack/internal/models"
)

const feedCacheKey = "apartments:feed"

// ApartmentCache keeps the whole listing collection in Redis so the feed and
// summary endpoints do not hit MySQL on every render. Any write to listings
// or like sets invalidates the key; the next read repopulates.
type ApartmentCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func (c *ApartmentCache) Get(ctx context.Context) ([]models.Apartment, bool) {
	if c == nil || c.Client == nil {
		return nil, false
	}
	payload, err := c.Client.Get(ctx, feedCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("feed cache get: %v", err)
		}
		return nil, false
	}
	var apartments []models.Apartment
	if err := json.Unmarshal(payload, &apartments); err != nil {
		log.Printf("feed cache decode: %v", err)
		return nil, false
	}
	return apartments, true
}

func (c *ApartmentCache) Set(ctx context.Context, apartments []models.Apartment) {
	if c == nil || c.Client == nil {
		return
	}
	payload, err := json.Marshal(apartments)
	if err != nil {
		log.Printf("feed cache encode: %v", err)
		return
	}
	if err := c.Client.Set(ctx, feedCacheKey, payload, c.TTL).Err(); err != nil {
		log.Printf("feed cache set: %v", err)
	}
}

func (c *ApartmentCache) Invalidate(ctx context.Context) error {
	if c == nil || c.Client == nil {
		return nil
	}
	return c.Client.Del(ctx, feedCacheKey).Err()
}

// Package redis caches full response bundles. Only clean (non-degraded)
// responses are stored by the caller, so a hit never replays an outage.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/SachinASIET26/Neethi-sub000/internal/core/domain"
)

type Cache struct {
	client *goredis.Client
	ttl    time.Duration
}

func New(addr, password string, db int, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &Cache{
		client: goredis.NewClient(&goredis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
		ttl: ttl,
	}
}

func (c *Cache) Get(ctx context.Context, key string) (*domain.ResponseBundle, bool, error) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get: %w", err)
	}

	var bundle domain.ResponseBundle
	if err := json.Unmarshal(payload, &bundle); err != nil {
		// An undecodable entry was written by an older build; drop it
		// and treat the lookup as a miss.
		_ = c.client.Del(ctx, key).Err()
		return nil, false, nil
	}
	return &bundle, true, nil
}

func (c *Cache) Set(ctx context.Context, key string, bundle *domain.ResponseBundle) error {
	payload, err := json.Marshal(bundle)
	if err != nil {
		return fmt.Errorf("marshal cached bundle: %w", err)
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *Cache) Close() error {
	return c.client.Close()
}

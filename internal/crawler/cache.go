package crawler

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const pageKeyPrefix = "enrich:page:"

// PageCache keeps fetched pages in redis so re-runs do not hit the network.
type PageCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func pageKey(url string) string {
	sum := sha256.Sum256([]byte(url))
	return pageKeyPrefix + hex.EncodeToString(sum[:])
}

func (c *PageCache) Get(ctx context.Context, url string) (string, bool, error) {
	val, err := c.Client.Get(ctx, pageKey(url)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (c *PageCache) Set(ctx context.Context, url, body string) error {
	return c.Client.Set(ctx, pageKey(url), body, c.TTL).Err()
}

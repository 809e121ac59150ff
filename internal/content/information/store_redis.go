// Copyright (c) 2026 Kisan Manch. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package information

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kisanmanch/kisanmanch/internal/platform/constants"
)

// # Feed Cache

// FeedCache is a read-through cache for the full grouped listing.
//
// The cache is strictly an accelerator: implementations report misses and
// swallow backend failures, they never surface an error to the request path.
type FeedCache interface {
	// Get returns the cached groups and whether the cache held them.
	Get(ctx context.Context) ([]*Group, bool)

	// Set stores the groups, replacing any previous snapshot.
	Set(ctx context.Context, groups []*Group)

	// Invalidate drops the snapshot after any write to the collection.
	Invalidate(ctx context.Context)
}

const feedCacheTTL = 5 * time.Minute

// RedisFeedCache caches the grouped listing as one JSON blob in Redis.
type RedisFeedCache struct {
	client *redis.Client
}

var _ FeedCache = (*RedisFeedCache)(nil)

// NewRedisFeedCache creates a Redis-backed feed cache.
func NewRedisFeedCache(client *redis.Client) *RedisFeedCache {
	return &RedisFeedCache{client: client}
}

func (cache *RedisFeedCache) key() string {
	return constants.RedisPrefixInformationFeed + "groups"
}

func (cache *RedisFeedCache) Get(ctx context.Context) ([]*Group, bool) {
	payload, err := cache.client.Get(ctx, cache.key()).Bytes()
	if err != nil {
		return nil, false
	}

	var groups []*Group
	if err := json.Unmarshal(payload, &groups); err != nil {
		// Poisoned entry, drop it rather than serve it again.
		cache.client.Del(ctx, cache.key())
		return nil, false
	}
	return groups, true
}

func (cache *RedisFeedCache) Set(ctx context.Context, groups []*Group) {
	payload, err := json.Marshal(groups)
	if err != nil {
		return
	}
	cache.client.Set(ctx, cache.key(), payload, feedCacheTTL)
}

func (cache *RedisFeedCache) Invalidate(ctx context.Context) {
	cache.client.Del(ctx, cache.key())
}

// Copyright (c) 2026 Plume. All rights reserved.

package post

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/plumeblog/plume/internal/platform/constants"
)

// RedisCache implements [Cache] on Redis with JSON values and a fixed TTL.
//
// Writes to a post never touch the cache. An entry stays until its TTL
// expires, so a reader may observe a view up to [constants.PostCacheTTL]
// old; a deleted post may still serve from cache for the same window.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache constructs the post read cache.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// key builds the namespaced cache key for a post id.
func (cache *RedisCache) key(id int64) string {
	return constants.RedisPrefixPostCache + strconv.FormatInt(id, 10)
}

/*
Get returns the cached post, or (nil, nil) on a miss.

Returns:
  - *Post: Decoded entity, nil when absent
  - error: Transport or decoding failures
*/
func (cache *RedisCache) Get(context context.Context, id int64) (*Post, error) {
	payload, err := cache.client.Get(context, cache.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("post_cache_get_failed: %w", err)
	}

	post := &Post{}
	if err := json.Unmarshal(payload, post); err != nil {
		return nil, fmt.Errorf("post_cache_decode_failed: %w", err)
	}

	return post, nil
}

/*
Set stores a post under its id for [constants.PostCacheTTL].
*/
func (cache *RedisCache) Set(context context.Context, post *Post) error {
	payload, err := json.Marshal(post)
	if err != nil {
		return fmt.Errorf("post_cache_encode_failed: %w", err)
	}

	if err := cache.client.Set(context, cache.key(post.ID), payload, constants.PostCacheTTL).Err(); err != nil {
		return fmt.Errorf("post_cache_set_failed: %w", err)
	}

	return nil
}

// Package redis provides Redis-based adapters for the kinderportal system.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/brightsprout/kinderportal/internal/domain/model"
)

type cacheMissError struct{}

func (cacheMissError) Error() string { return "article not cached" }

// ErrCacheMiss is returned when the requested article is not cached.
var ErrCacheMiss error = cacheMissError{}

// DefaultArticleTTL bounds staleness for cached articles between admin writes.
const DefaultArticleTTL = 10 * time.Minute

// ArticleCache is a read-through cache for article-by-slug lookups.
// Entries are invalidated on admin writes and otherwise expire by TTL.
type ArticleCache struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewArticleCache creates an article cache with the default key prefix and TTL.
func NewArticleCache(client redis.UniversalClient) *ArticleCache {
	return &ArticleCache{client: client, prefix: "article:", ttl: DefaultArticleTTL}
}

// NewArticleCacheWithTTL creates an article cache with a custom TTL.
func NewArticleCacheWithTTL(client redis.UniversalClient, ttl time.Duration) *ArticleCache {
	c := NewArticleCache(client)
	if ttl > 0 {
		c.ttl = ttl
	}
	return c
}

// Get returns the cached article for the slug, or ErrCacheMiss.
func (c *ArticleCache) Get(ctx context.Context, slug string) (*model.Article, error) {
	if slug == "" {
		return nil, ErrCacheMiss
	}

	data, err := c.client.Get(ctx, c.prefix+slug).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var article model.Article
	if unmarshalErr := json.Unmarshal([]byte(data), &article); unmarshalErr != nil {
		return nil, fmt.Errorf("unmarshal article: %w", unmarshalErr)
	}
	return &article, nil
}

// Set stores the article under its slug.
func (c *ArticleCache) Set(ctx context.Context, article *model.Article) error {
	if article == nil || article.Slug == "" {
		return errors.New("article slug cannot be empty")
	}

	data, err := json.Marshal(article)
	if err != nil {
		return fmt.Errorf("marshal article: %w", err)
	}
	return c.client.Set(ctx, c.prefix+article.Slug, data, c.ttl).Err()
}

// Invalidate removes the cached entry for the slug.
func (c *ArticleCache) Invalidate(ctx context.Context, slug string) error {
	if slug == "" {
		return nil
	}
	return c.client.Del(ctx, c.prefix+slug).Err()
}

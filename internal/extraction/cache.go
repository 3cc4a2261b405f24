package extraction

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"docsense/pkg/models"
	"docsense/pkg/utils"
)

// Cache stores extraction results keyed by document type and cleaned text
type Cache interface {
	Get(ctx context.Context, key string) (*models.Document, bool, error)
	Set(ctx context.Context, key string, doc models.Document) error
}

// CacheKey is stable for the same type and text
func CacheKey(docType models.DocumentType, text string) string {
	sum := sha256.Sum256([]byte(string(docType) + "|" + text))
	return "extraction:" + hex.EncodeToString(sum[:])
}

// NoopCache never hits
type NoopCache struct{}

func (NoopCache) Get(context.Context, string) (*models.Document, bool, error) { return nil, false, nil }

func (NoopCache) Set(context.Context, string, models.Document) error { return nil }

// RedisCache keeps extraction results in Redis as JSON
type RedisCache struct {
	client *utils.RedisClient
}

// NewRedisCache wraps a Redis client
func NewRedisCache(client *utils.RedisClient) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) Get(ctx context.Context, key string) (*models.Document, bool, error) {
	var doc models.Document
	if err := c.client.GetJSON(ctx, key, &doc); err != nil {
		if errors.Is(err, utils.ErrCacheMiss) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return &doc, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, doc models.Document) error {
	return c.client.SetJSON(ctx, key, doc)
}

package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/config"
	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/logging"
	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/models"
)

const (
	draftKeyPrefix  = "draft:"
	defaultCacheTTL = 30 * time.Minute
)

var _ DraftCache = (*RedisDraftCache)(nil)

// RedisDraftCache implements DraftCache using Redis.
type RedisDraftCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *logging.LoggerV2
}

// NewRedisClient builds a client from the terminal's Redis settings.
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// NewRedisDraftCache creates a Redis-based draft cache. A zero ttl uses the default.
func NewRedisDraftCache(client *redis.Client, ttl time.Duration) *RedisDraftCache {
	if ttl == 0 {
		ttl = defaultCacheTTL
	}

	return &RedisDraftCache{
		client: client,
		ttl:    ttl,
		logger: logging.NewLoggerV2("draft-cache"),
	}
}

// Get retrieves a draft from cache. A miss returns nil, nil.
func (c *RedisDraftCache) Get(ctx context.Context, id string) (*models.Draft, error) {
	data, err := c.client.Get(ctx, draftKeyPrefix+id).Bytes()
	if err == redis.Nil {
		c.logger.Debug("Cache miss", logging.Fields{"draft_id": id})
		return nil, nil
	}
	if err != nil {
		c.logger.Error("Cache get error", logging.Fields{
			"draft_id": id,
			"error":    err.Error(),
		})
		return nil, err
	}

	var draft models.Draft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, err
	}

	c.logger.Debug("Cache hit", logging.Fields{"draft_id": id})
	return &draft, nil
}

// Set stores a draft in cache.
func (c *RedisDraftCache) Set(ctx context.Context, draft *models.Draft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return err
	}

	if err := c.client.Set(ctx, draftKeyPrefix+draft.ID, data, c.ttl).Err(); err != nil {
		c.logger.Error("Cache set error", logging.Fields{
			"draft_id": draft.ID,
			"error":    err.Error(),
		})
		return err
	}
	return nil
}

// Delete removes a draft from cache.
func (c *RedisDraftCache) Delete(ctx context.Context, id string) error {
	if err := c.client.Del(ctx, draftKeyPrefix+id).Err(); err != nil {
		c.logger.Error("Cache delete error", logging.Fields{
			"draft_id": id,
			"error":    err.Error(),
		})
		return err
	}
	return nil
}

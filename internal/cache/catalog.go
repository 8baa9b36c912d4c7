package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/nurpe/tourbook/internal/config"
	"github.com/nurpe/tourbook/internal/model"
)

const catalogPrefix = "catalog:product:"

// NewRedisClient connects to Redis, or returns nil when no address is
// configured or the server does not answer. Callers treat nil as "no cache".
func NewRedisClient(cfg config.CacheConfig, log zerolog.Logger) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unavailable, catalog cache disabled")
		_ = client.Close()
		return nil
	}
	return client
}

// CatalogCache keeps product catalogs (tiers and options) in Redis. Cache
// failures are logged and treated as misses.
type CatalogCache struct {
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

func NewCatalogCache(client *redis.Client, ttl time.Duration, log zerolog.Logger) *CatalogCache {
	return &CatalogCache{client: client, ttl: ttl, log: log}
}

func (c *CatalogCache) Get(ctx context.Context, id uuid.UUID) (*model.Product, bool) {
	if c.client == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, catalogKey(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn().Err(err).Str("product_id", id.String()).Msg("catalog cache read failed")
		}
		return nil, false
	}
	var product model.Product
	if err := json.Unmarshal(raw, &product); err != nil {
		c.log.Warn().Err(err).Str("product_id", id.String()).Msg("catalog cache entry corrupt")
		return nil, false
	}
	return &product, true
}

func (c *CatalogCache) Set(ctx context.Context, product model.Product) {
	if c.client == nil {
		return
	}
	raw, err := json.Marshal(product)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, catalogKey(product.ID), raw, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("product_id", product.ID.String()).Msg("catalog cache write failed")
	}
}

func (c *CatalogCache) Invalidate(ctx context.Context, id uuid.UUID) {
	if c.client == nil {
		return
	}
	if err := c.client.Del(ctx, catalogKey(id)).Err(); err != nil {
		c.log.Warn().Err(err).Str("product_id", id.String()).Msg("catalog cache invalidate failed")
	}
}

func catalogKey(id uuid.UUID) string {
	return catalogPrefix + id.String()
}

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/nurpe/tourbook/internal/config"
	"github.com/nurpe/tourbook/internal/model"
)

func TestCatalogCacheWithoutRedis(t *testing.T) {
	c := NewCatalogCache(nil, time.Minute, zerolog.Nop())
	ctx := context.Background()
	product := model.Product{ID: uuid.New(), Name: "Gobi"}

	c.Set(ctx, product)
	_, ok := c.Get(ctx, product.ID)
	assert.False(t, ok)
	c.Invalidate(ctx, product.ID)
}

func TestNewRedisClientWithoutAddress(t *testing.T) {
	assert.Nil(t, NewRedisClient(config.CacheConfig{}, zerolog.Nop()))
}

func TestCatalogKey(t *testing.T) {
	id := uuid.MustParse("7f1d3c1e-0c55-4a51-9a53-2f0b1d5f8e11")
	assert.Equal(t, "catalog:product:7f1d3c1e-0c55-4a51-9a53-2f0b1d5f8e11", catalogKey(id))
}

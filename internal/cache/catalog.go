// Package cache keeps the last good job catalog in Redis so a store outage
// does not immediately degrade the board to the static seed.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/oasis/talentboard/internal/domain"
)

const catalogKey = "talentboard:catalog:v1"

type CatalogCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewCatalogCache(addr, password string, db int, ttl time.Duration, logger *zap.Logger) (*CatalogCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &CatalogCache{client: client, ttl: ttl, logger: logger}, nil
}

func (c *CatalogCache) Close() error {
	return c.client.Close()
}

// Put stores the catalog snapshot. Failures are logged, not propagated: the
// cache is an availability aid, never load-bearing.
func (c *CatalogCache) Put(ctx context.Context, jobs []domain.Job) {
	encoded, err := json.Marshal(jobs)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, catalogKey, encoded, c.ttl).Err(); err != nil {
		c.logger.Warn("catalog cache write failed", zap.Error(err))
	}
}

func (c *CatalogCache) Get(ctx context.Context) ([]domain.Job, bool) {
	raw, err := c.client.Get(ctx, catalogKey).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.logger.Warn("catalog cache read failed", zap.Error(err))
		return nil, false
	}
	var jobs []domain.Job
	if err := json.Unmarshal(raw, &jobs); err != nil {
		c.logger.Warn("catalog cache payload corrupt", zap.Error(err))
		return nil, false
	}
	return jobs, len(jobs) > 0
}

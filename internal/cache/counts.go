// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// counts.go caches the categories() aggregate — the fixed category set with
// live published-practice counts. Counts are derived, never stored: the
// cache just spares a GROUP BY per browse-page render and is invalidated
// whenever a practice is published or archived.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"practicehub/internal/models"
)

const (
	// countsKey is the Valkey key holding the serialized category counts.
	countsKey = "category_counts"

	// DefaultCountsTTL bounds staleness even without explicit invalidation.
	DefaultCountsTTL = 5 * time.Minute
)

// CategoryCountCache holds the categories aggregate in Valkey.
type CategoryCountCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCategoryCountCache creates a cache backed by the given Valkey client.
func NewCategoryCountCache(client *redis.Client, ttl time.Duration) *CategoryCountCache {
	if ttl == 0 {
		ttl = DefaultCountsTTL
	}
	return &CategoryCountCache{client: client, ttl: ttl}
}

// Get retrieves the cached category counts. Returns (nil, false) on miss.
func (c *CategoryCountCache) Get(ctx context.Context) ([]models.CategoryInfo, bool) {
	val, err := c.client.Get(ctx, countsKey).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("category count cache get error", "error", err)
		return nil, false
	}

	var cats []models.CategoryInfo
	if err := json.Unmarshal(val, &cats); err != nil {
		slog.Warn("category count cache unmarshal error", "error", err)
		return nil, false
	}
	return cats, true
}

// Set stores the category counts with the configured TTL.
func (c *CategoryCountCache) Set(ctx context.Context, cats []models.CategoryInfo) {
	payload, err := json.Marshal(cats)
	if err != nil {
		slog.Warn("category count cache marshal error", "error", err)
		return
	}
	if err := c.client.Set(ctx, countsKey, payload, c.ttl).Err(); err != nil {
		slog.Warn("category count cache set error", "error", err)
	}
}

// Invalidate drops the cached counts. Called after publish and archive,
// the two transitions that change a category's published count.
func (c *CategoryCountCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, countsKey).Err(); err != nil {
		slog.Warn("category count cache invalidate error", "error", err)
	}
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// categories.go caches the category and sub-category lists in Valkey.
// They change only through the sub-category procedures, which invalidate
// the affected keys, so the home and category pages skip the database on
// most requests.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"stockroom/internal/models"
)

const (
	// categoryKeyPrefix is the Valkey key prefix for cached category lists.
	categoryKeyPrefix = "categories:"

	// DefaultCategoryTTL is how long a category list stays cached.
	DefaultCategoryTTL = 5 * time.Minute
)

// CategorySource loads category lists from the database.
type CategorySource interface {
	TopLevel() ([]models.Category, error)
	Children(parentID uuid.UUID) ([]models.Category, error)
}

// CategoryCache serves category lists from Valkey, falling back to the
// source on a miss. Cache failures are logged and never fail a request.
type CategoryCache struct {
	client *redis.Client
	source CategorySource
	ttl    time.Duration
}

// NewCategoryCache creates a category cache backed by the given Valkey client.
func NewCategoryCache(client *redis.Client, source CategorySource, ttl time.Duration) *CategoryCache {
	if ttl == 0 {
		ttl = DefaultCategoryTTL
	}
	return &CategoryCache{client: client, source: source, ttl: ttl}
}

// TopLevelKey returns the cache key for the top-level list.
func TopLevelKey() string {
	return "top"
}

// ChildrenKey returns the cache key for the sub-categories of parentID.
func ChildrenKey(parentID uuid.UUID) string {
	return "children:" + parentID.String()
}

// TopLevel returns the active top-level categories.
func (cc *CategoryCache) TopLevel(ctx context.Context) ([]models.Category, error) {
	return cc.load(ctx, TopLevelKey(), cc.source.TopLevel)
}

// Children returns the active sub-categories of parentID.
func (cc *CategoryCache) Children(ctx context.Context, parentID uuid.UUID) ([]models.Category, error) {
	return cc.load(ctx, ChildrenKey(parentID), func() ([]models.Category, error) {
		return cc.source.Children(parentID)
	})
}

// InvalidateParent drops the cached children of parentID and the top-level
// list. Called after a sub-category is added or deactivated.
func (cc *CategoryCache) InvalidateParent(ctx context.Context, parentID uuid.UUID) {
	keys := []string{categoryKeyPrefix + ChildrenKey(parentID), categoryKeyPrefix + TopLevelKey()}
	if err := cc.client.Del(ctx, keys...).Err(); err != nil {
		slog.Warn("category cache invalidate error", "parent_id", parentID, "error", err)
		return
	}
	slog.Debug("category cache invalidated", "parent_id", parentID)
}

func (cc *CategoryCache) load(ctx context.Context, key string, fetch func() ([]models.Category, error)) ([]models.Category, error) {
	if cats, ok := cc.get(ctx, key); ok {
		return cats, nil
	}

	cats, err := fetch()
	if err != nil {
		return nil, err
	}
	cc.set(ctx, key, cats)
	return cats, nil
}

func (cc *CategoryCache) get(ctx context.Context, key string) ([]models.Category, bool) {
	val, err := cc.client.Get(ctx, categoryKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("category cache get error", "key", key, "error", err)
		return nil, false
	}

	var cats []models.Category
	if err := json.Unmarshal(val, &cats); err != nil {
		slog.Warn("category cache decode error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("category cache hit", "key", key)
	return cats, true
}

func (cc *CategoryCache) set(ctx context.Context, key string, cats []models.Category) {
	payload, err := json.Marshal(cats)
	if err != nil {
		slog.Warn("category cache encode error", "key", key, "error", err)
		return
	}
	if err := cc.client.Set(ctx, categoryKeyPrefix+key, payload, cc.ttl).Err(); err != nil {
		slog.Warn("category cache set error", "key", key, "error", err)
	}
}

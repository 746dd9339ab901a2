package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/joogo-hq/joogo-backend/internal/config"
	"github.com/joogo-hq/joogo-backend/internal/domain"
)

const (
	reorderKeyPrefix     = "reorder:stats"
	reorderScanBatchSize = 100
)

// ReorderKey identifies one cached reorder computation. Two requests share an
// entry only when every parameter that affects the math matches.
type ReorderKey struct {
	TenantID     string
	From         string
	To           string
	LeadTimeDays float64
	Z            float64
}

// ReorderCache is a best-effort TTL cache for the reorder aggregates. It is an
// optimization only: a miss always recomputes from the store.
type ReorderCache interface {
	Get(ctx context.Context, key ReorderKey) ([]domain.ReorderStat, bool, error)
	Set(ctx context.Context, key ReorderKey, stats []domain.ReorderStat) error
	InvalidateTenant(ctx context.Context, tenantID string) error
}

type redisReorderCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopReorderCache struct{}

func NewReorderCache(cfg config.CacheConfig) (ReorderCache, error) {
	if !cfg.Enabled {
		return &noopReorderCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisReorderCache{client: client, ttl: ttl}, nil
}

func NewNoopReorderCache() ReorderCache {
	return &noopReorderCache{}
}

func (c *redisReorderCache) Get(ctx context.Context, key ReorderKey) ([]domain.ReorderStat, bool, error) {
	payload, err := c.client.Get(ctx, buildReorderKey(key)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var stats []domain.ReorderStat
	if err := json.Unmarshal(payload, &stats); err != nil {
		return nil, false, fmt.Errorf("decode reorder cache: %w", err)
	}
	return stats, true, nil
}

func (c *redisReorderCache) Set(ctx context.Context, key ReorderKey, stats []domain.ReorderStat) error {
	payload, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("encode reorder cache: %w", err)
	}
	if err := c.client.Set(ctx, buildReorderKey(key), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisReorderCache) InvalidateTenant(ctx context.Context, tenantID string) error {
	prefix := fmt.Sprintf("%s:%s:", reorderKeyPrefix, tenantID)
	return deleteKeysWithPrefix(ctx, c.client, prefix, reorderScanBatchSize)
}

func (n *noopReorderCache) Get(ctx context.Context, key ReorderKey) ([]domain.ReorderStat, bool, error) {
	return nil, false, nil
}

func (n *noopReorderCache) Set(ctx context.Context, key ReorderKey, stats []domain.ReorderStat) error {
	return nil
}

func (n *noopReorderCache) InvalidateTenant(ctx context.Context, tenantID string) error {
	return nil
}

func buildReorderKey(key ReorderKey) string {
	raw := fmt.Sprintf("from=%s|to=%s|lead=%.4f|z=%.4f", key.From, key.To, key.LeadTimeDays, key.Z)
	sum := sha1.Sum([]byte(raw))
	return fmt.Sprintf("%s:%s:%s", reorderKeyPrefix, key.TenantID, hex.EncodeToString(sum[:]))
}

package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"project-config-api/internal/pricing"
)

const (
	keyPrefix     = "configurator:snapshot"
	generationKey = keyPrefix + ":generation"
)

// SnapshotCache stores wizard snapshots per project. Invalidate drops every
// cached snapshot at once by bumping a generation counter that is part of each key.
//
// Get reports the generation it looked under, also on a miss. A snapshot built
// after that miss is Set under the same generation, so an Invalidate that ran
// while it was being built keeps it out of later reads.
type SnapshotCache interface {
	Get(ctx context.Context, projectID uuid.UUID) (snapshot *pricing.Snapshot, generation int64, ok bool)
	Set(ctx context.Context, projectID uuid.UUID, generation int64, snapshot *pricing.Snapshot)
	Invalidate(ctx context.Context)
}

// NoGeneration is returned by Get when the generation could not be read.
// Set ignores snapshots built under it.
const NoGeneration int64 = -1

// RedisSnapshotCache is the redis implementation of SnapshotCache.
// Cache failures are logged and treated as misses.
type RedisSnapshotCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisSnapshotCache creates a snapshot cache backed by redis
func NewRedisSnapshotCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisSnapshotCache {
	return &RedisSnapshotCache{client: client, ttl: ttl, logger: logger}
}

func (c *RedisSnapshotCache) generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return gen, err
}

// SnapshotKey builds the cache key of a project snapshot for a generation
func SnapshotKey(generation int64, projectID uuid.UUID) string {
	return fmt.Sprintf("%s:%d:%s", keyPrefix, generation, projectID)
}

// Get returns the cached snapshot of a project and the generation it was looked up under
func (c *RedisSnapshotCache) Get(ctx context.Context, projectID uuid.UUID) (*pricing.Snapshot, int64, bool) {
	gen, err := c.generation(ctx)
	if err != nil {
		c.logger.Warn("Failed to read snapshot generation", zap.Error(err))
		return nil, NoGeneration, false
	}

	data, err := c.client.Get(ctx, SnapshotKey(gen, projectID)).Bytes()
	if err == redis.Nil {
		return nil, gen, false
	}
	if err != nil {
		c.logger.Warn("Failed to read snapshot", zap.String("project_id", projectID.String()), zap.Error(err))
		return nil, gen, false
	}

	var snapshot pricing.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		c.logger.Warn("Discarding undecodable snapshot", zap.String("project_id", projectID.String()), zap.Error(err))
		return nil, gen, false
	}
	return &snapshot, gen, true
}

// Set stores a snapshot under the generation its build started from.
// If the catalog was invalidated since, that key is never read again.
func (c *RedisSnapshotCache) Set(ctx context.Context, projectID uuid.UUID, generation int64, snapshot *pricing.Snapshot) {
	if generation == NoGeneration {
		return
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		c.logger.Warn("Failed to encode snapshot", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, SnapshotKey(generation, projectID), data, c.ttl).Err(); err != nil {
		c.logger.Warn("Failed to store snapshot", zap.String("project_id", projectID.String()), zap.Error(err))
	}
}

// Invalidate bumps the generation; old keys expire through their TTL
func (c *RedisSnapshotCache) Invalidate(ctx context.Context) {
	if err := c.client.Incr(ctx, generationKey).Err(); err != nil {
		c.logger.Warn("Failed to invalidate snapshots", zap.Error(err))
	}
}

// NoopSnapshotCache never caches. Used when redis is not configured.
type NoopSnapshotCache struct{}

func (NoopSnapshotCache) Get(context.Context, uuid.UUID) (*pricing.Snapshot, int64, bool) {
	return nil, NoGeneration, false
}
func (NoopSnapshotCache) Set(context.Context, uuid.UUID, int64, *pricing.Snapshot) {}
func (NoopSnapshotCache) Invalidate(context.Context)                               {}

package persistence

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/voting-service/internal/domain"
)

const tallyKey = "voting:results:tally"

// RedisTallyCache stores the computed results tally in Redis so repeated
// reads of GET /votes/results do not hit the candidates table. Cache
// failures are logged and treated as misses.
type RedisTallyCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisTallyCache builds the cache over an existing Redis wrapper.
// Returns nil when Redis is unconfigured; callers treat a nil cache as off.
func NewRedisTallyCache(r *Redis, ttl time.Duration, logger *zap.Logger) *RedisTallyCache {
	if r == nil || r.Client == nil {
		return nil
	}
	return &RedisTallyCache{client: r.Client, ttl: ttl, logger: logger}
}

// GetTally returns the cached tally and whether it was present.
func (c *RedisTallyCache) GetTally(ctx context.Context) ([]domain.CandidateTally, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, tallyKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("tally cache read failed", zap.Error(err))
		}
		return nil, false
	}
	var tally []domain.CandidateTally
	if err := json.Unmarshal(raw, &tally); err != nil {
		c.logger.Warn("tally cache payload corrupt", zap.Error(err))
		return nil, false
	}
	return tally, true
}

// SetTally stores the tally with the configured TTL.
func (c *RedisTallyCache) SetTally(ctx context.Context, tally []domain.CandidateTally) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(tally)
	if err != nil {
		c.logger.Warn("tally cache encode failed", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, tallyKey, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("tally cache write failed", zap.Error(err))
	}
}

// Invalidate drops the cached tally. Called after any vote cast or reset.
func (c *RedisTallyCache) Invalidate(ctx context.Context) {
	if c == nil {
		return
	}
	if err := c.client.Del(ctx, tallyKey).Err(); err != nil {
		c.logger.Warn("tally cache invalidate failed", zap.Error(err))
	}
}

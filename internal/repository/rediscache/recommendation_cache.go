package rediscache

import (
	"context"
	"encoding/json"
	"time"

	"go-griefcare-backend/internal/domain"
	"go-griefcare-backend/internal/usecase"
	"go-griefcare-backend/pkg/logger"

	"github.com/redis/go-redis/v9"
)

type recommendationCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRecommendationCache creates a best-effort shortlist cache. Every
// failure is swallowed after a debug log: the cache only trades staleness
// for latency, it never owns correctness.
func NewRecommendationCache(client *redis.Client, ttl time.Duration) usecase.RecommendationCache {
	return &recommendationCache{client: client, ttl: ttl}
}

func counselorKey(userID string) string {
	return "rec:counselors:" + userID
}

func groupKey(userID string) string {
	return "rec:groups:" + userID
}

func (c *recommendationCache) GetCounselors(ctx context.Context, userID string) ([]domain.ScoredCounselor, bool) {
	payload, err := c.client.Get(ctx, counselorKey(userID)).Bytes()
	if err != nil {
		return nil, false
	}

	var scored []domain.ScoredCounselor
	if err := json.Unmarshal(payload, &scored); err != nil {
		return nil, false
	}
	return scored, true
}

func (c *recommendationCache) SetCounselors(ctx context.Context, userID string, scored []domain.ScoredCounselor) {
	payload, err := json.Marshal(scored)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, counselorKey(userID), payload, c.ttl).Err(); err != nil {
		logger.Log.Debug("recommendation cache set failed", "key", counselorKey(userID), "error", err)
	}
}

func (c *recommendationCache) GetFamilyGroups(ctx context.Context, userID string) ([]domain.ScoredFamilyGroup, bool) {
	payload, err := c.client.Get(ctx, groupKey(userID)).Bytes()
	if err != nil {
		return nil, false
	}

	var scored []domain.ScoredFamilyGroup
	if err := json.Unmarshal(payload, &scored); err != nil {
		return nil, false
	}
	return scored, true
}

func (c *recommendationCache) SetFamilyGroups(ctx context.Context, userID string, scored []domain.ScoredFamilyGroup) {
	payload, err := json.Marshal(scored)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, groupKey(userID), payload, c.ttl).Err(); err != nil {
		logger.Log.Debug("recommendation cache set failed", "key", groupKey(userID), "error", err)
	}
}

// Invalidate drops both shortlists for the person, called after survey
// changes.
func (c *recommendationCache) Invalidate(ctx context.Context, userID string) {
	if err := c.client.Del(ctx, counselorKey(userID), groupKey(userID)).Err(); err != nil {
		logger.Log.Debug("recommendation cache invalidate failed", "user_id", userID, "error", err)
	}
}

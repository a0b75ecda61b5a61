package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/SergeiKhy/post-stats/internal/models"
)

// CacheRepository кэш анонимной статистики поста (cache-aside).
// Значение живёт недолго и удаляется при каждой записи счётчиков.
type CacheRepository interface {
	Get(ctx context.Context, slug string) (*models.PostStats, error)
	Set(ctx context.Context, slug string, stats *models.PostStats, ttl time.Duration) error
	Delete(ctx context.Context, slug string) error
}

type cacheRepository struct {
	redis *RedisDB
}

func NewCacheRepository(redis *RedisDB) CacheRepository {
	return &cacheRepository{redis: redis}
}

func (r *cacheRepository) Get(ctx context.Context, slug string) (*models.PostStats, error) {
	data, err := r.redis.Client.Get(ctx, r.key(slug)).Bytes()
	if err != nil {
		return nil, err
	}

	var stats models.PostStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, fmt.Errorf("failed to unmarshal post stats: %w", err)
	}

	return &stats, nil
}

func (r *cacheRepository) Set(ctx context.Context, slug string, stats *models.PostStats, ttl time.Duration) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to marshal post stats: %w", err)
	}

	return r.redis.Client.Set(ctx, r.key(slug), data, ttl).Err()
}

func (r *cacheRepository) Delete(ctx context.Context, slug string) error {
	return r.redis.Client.Del(ctx, r.key(slug)).Err()
}

func (r *cacheRepository) key(slug string) string {
	return "stats:" + slug
}

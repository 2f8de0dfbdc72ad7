package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/trip-planner/internal/domain"
	"github.com/trip-planner/internal/domain/repository"
	"go.uber.org/zap"
)

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCacheRepository(redis *Redis) repository.CacheRepository {
	return &cacheRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := r.client.Set(ctx, key, value, ttl).Err()
	if err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	err := r.client.Del(ctx, key).Err()
	if err != nil {
		r.logger.Error("Failed to delete from cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}

	r.logger.Debug("Cache deleted", zap.String("key", key))
	return nil
}

func (r *cacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	val, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		r.logger.Error("Failed to check cache existence", zap.String("key", key), zap.Error(err))
		return false, fmt.Errorf("cache exists error: %w", err)
	}

	return val > 0, nil
}

func fundingKey(customerID string) string {
	return fmt.Sprintf("booking:funding:%s", customerID)
}

func purposesKey(customerID string) string {
	return fmt.Sprintf("booking:purposes:%s", customerID)
}

// GetFundingSources получает источники оплаты клиента из кеша
func (r *cacheRepository) GetFundingSources(ctx context.Context, customerID string) ([]domain.FundingSource, error) {
	var sources []domain.FundingSource
	found, err := r.getJSON(ctx, fundingKey(customerID), &sources)
	if err != nil || !found {
		return nil, err
	}
	if sources == nil {
		sources = []domain.FundingSource{}
	}
	return sources, nil
}

// SetFundingSources сохраняет источники оплаты клиента в кеше
func (r *cacheRepository) SetFundingSources(ctx context.Context, customerID string, sources []domain.FundingSource, ttl time.Duration) error {
	return r.setJSON(ctx, fundingKey(customerID), sources, ttl)
}

// GetTripPurposes получает цели поездок клиента из кеша
func (r *cacheRepository) GetTripPurposes(ctx context.Context, customerID string) ([]domain.TripPurpose, error) {
	var purposes []domain.TripPurpose
	found, err := r.getJSON(ctx, purposesKey(customerID), &purposes)
	if err != nil || !found {
		return nil, err
	}
	if purposes == nil {
		purposes = []domain.TripPurpose{}
	}
	return purposes, nil
}

// SetTripPurposes сохраняет цели поездок клиента в кеше
func (r *cacheRepository) SetTripPurposes(ctx context.Context, customerID string, purposes []domain.TripPurpose, ttl time.Duration) error {
	return r.setJSON(ctx, purposesKey(customerID), purposes, ttl)
}

func (r *cacheRepository) getJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := r.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if data == nil {
		return false, nil // Cache miss
	}

	if err := json.Unmarshal(data, dest); err != nil {
		r.logger.Error("Failed to unmarshal cached value", zap.String("key", key), zap.Error(err))
		return false, fmt.Errorf("unmarshal %s: %w", key, err)
	}
	return true, nil
}

func (r *cacheRepository) setJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		r.logger.Error("Failed to marshal cache value", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("marshal %s: %w", key, err)
	}

	return r.Set(ctx, key, data, ttl)
}

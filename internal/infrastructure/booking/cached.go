package booking

import (
	"context"
	"time"

	"github.com/trip-planner/internal/domain"
	"github.com/trip-planner/internal/domain/repository"
	"go.uber.org/zap"
)

type cachedClient struct {
	inner  repository.BookingRepository
	cache  repository.CacheRepository
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedClient кеширует ответы системы бронирования в Redis.
// Ошибки кеша не мешают запросу к системе бронирования.
func NewCachedClient(
	inner repository.BookingRepository,
	cache repository.CacheRepository,
	ttl time.Duration,
	logger *zap.Logger,
) repository.BookingRepository {
	return &cachedClient{
		inner:  inner,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *cachedClient) FundingSources(ctx context.Context, customerID string) ([]domain.FundingSource, error) {
	cached, err := c.cache.GetFundingSources(ctx, customerID)
	if err != nil {
		c.logger.Warn("Funding cache read failed", zap.String("customer_id", customerID), zap.Error(err))
	} else if cached != nil {
		return cached, nil
	}

	sources, err := c.inner.FundingSources(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if err := c.cache.SetFundingSources(ctx, customerID, sources, c.ttl); err != nil {
		c.logger.Warn("Funding cache write failed", zap.String("customer_id", customerID), zap.Error(err))
	}
	return sources, nil
}

func (c *cachedClient) TripPurposes(ctx context.Context, customerID string) ([]domain.TripPurpose, error) {
	cached, err := c.cache.GetTripPurposes(ctx, customerID)
	if err != nil {
		c.logger.Warn("Trip purpose cache read failed", zap.String("customer_id", customerID), zap.Error(err))
	} else if cached != nil {
		return cached, nil
	}

	purposes, err := c.inner.TripPurposes(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if err := c.cache.SetTripPurposes(ctx, customerID, purposes, c.ttl); err != nil {
		c.logger.Warn("Trip purpose cache write failed", zap.String("customer_id", customerID), zap.Error(err))
	}
	return purposes, nil
}

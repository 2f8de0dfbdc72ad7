package repository

import (
	"context"
	"time"

	"github.com/trip-planner/internal/domain"
)

// CacheRepository определяет методы для работы с кешем
type CacheRepository interface {
	// Get получает значение из кеша по ключу
	Get(ctx context.Context, key string) ([]byte, error)

	// Set сохраняет значение в кеше с TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete удаляет значение из кеша
	Delete(ctx context.Context, key string) error

	// Exists проверяет существование ключа
	Exists(ctx context.Context, key string) (bool, error)

	// GetFundingSources получает источники оплаты клиента, nil при промахе
	GetFundingSources(ctx context.Context, customerID string) ([]domain.FundingSource, error)

	// SetFundingSources сохраняет источники оплаты клиента
	SetFundingSources(ctx context.Context, customerID string, sources []domain.FundingSource, ttl time.Duration) error

	// GetTripPurposes получает цели поездок клиента, nil при промахе
	GetTripPurposes(ctx context.Context, customerID string) ([]domain.TripPurpose, error)

	// SetTripPurposes сохраняет цели поездок клиента
	SetTripPurposes(ctx context.Context, customerID string, purposes []domain.TripPurpose, ttl time.Duration) error
}

package repository

import (
	"context"

	"github.com/trip-planner/internal/domain"
)

// BookingRepository - внешняя система бронирования
type BookingRepository interface {
	// FundingSources возвращает источники оплаты клиента с допустимыми целями
	FundingSources(ctx context.Context, customerID string) ([]domain.FundingSource, error)

	// TripPurposes возвращает цели поездок клиента с периодом действия
	TripPurposes(ctx context.Context, customerID string) ([]domain.TripPurpose, error)
}

package repository

import (
	"context"

	"github.com/trip-planner/internal/domain"
)

type ServiceRepository interface {
	// ListPublished возвращает неархивные сервисы заданных типов вместе с расписаниями
	ListPublished(ctx context.Context, types []domain.TripType) ([]domain.Service, error)
}

type TripRepository interface {
	// Save сохраняет поездку и заменяет ее маршруты целиком
	Save(ctx context.Context, trip *domain.Trip) error

	GetByID(ctx context.Context, id string) (*domain.Trip, error)
}

type TravelPatternRepository interface {
	// ListByAgency возвращает travel patterns агентства со всеми связями
	ListByAgency(ctx context.Context, agencyID int64) ([]domain.TravelPattern, error)

	// ExistsByName - занято ли имя внутри агентства
	ExistsByName(ctx context.Context, agencyID int64, name string) (bool, error)

	Create(ctx context.Context, pattern *domain.TravelPattern) error
}

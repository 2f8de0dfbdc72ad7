package repository

import (
	"context"

	"github.com/trip-planner/internal/domain"
)

// Router - результаты роутера для одного прогона планирования
type Router interface {
	// GetItineraries возвращает нормализованные маршруты для типа поездки
	GetItineraries(tripType domain.TripType) []domain.Itinerary

	// Errors возвращает ошибку запроса к роутеру для типа поездки, nil если ее не было
	Errors(tripType domain.TripType) error

	// GetDuration - длительность первого маршрута в секундах, 0 если маршрутов нет
	GetDuration(tripType domain.TripType) float64

	// GetDistance - расстояние первого маршрута в метрах, 0 если маршрутов нет
	GetDistance(tripType domain.TripType) float64
}

// RouterProvider создает Router: регистрирует запросы по видам транспорта
// и дожидается ответов (или таймаута)
type RouterProvider interface {
	NewRouter(
		ctx context.Context,
		trip *domain.Trip,
		tripTypes []domain.TripType,
		services []domain.Service,
	) Router
}

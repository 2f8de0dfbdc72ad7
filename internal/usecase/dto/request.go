package dto

import (
	"time"

	"github.com/trip-planner/internal/domain"
)

// Point - координаты точки
type Point struct {
	Lat float64 `json:"lat" validate:"min=-90,max=90"`
	Lon float64 `json:"lon" validate:"min=-180,max=180"`
}

func (p Point) Domain() domain.Point {
	return domain.Point{Lat: p.Lat, Lon: p.Lon}
}

// TravelerRequest - потребности пассажира
type TravelerRequest struct {
	Accommodations []string `json:"accommodations,omitempty"`
	Eligibilities  []string `json:"eligibilities,omitempty"`
}

// PlanTripRequest - запрос на планирование поездки
type PlanTripRequest struct {
	Origin        Point            `json:"origin" validate:"required"`
	Destination   Point            `json:"destination" validate:"required"`
	TripTime      time.Time        `json:"trip_time" validate:"required"`
	ArriveBy      bool             `json:"arrive_by"`
	TripTypes     []string         `json:"trip_types" validate:"required,min=1,dive,oneof=transit paratransit taxi car walk bicycle car_park uber lyft"`
	Purpose       *string          `json:"purpose,omitempty" validate:"omitempty,min=1"`
	Traveler      *TravelerRequest `json:"traveler,omitempty"`
	OnlyFilters   []string         `json:"only_filters,omitempty" validate:"omitempty,dive,oneof=geography schedule purpose eligibility accommodation funding_source"`
	ExceptFilters []string         `json:"except_filters,omitempty" validate:"omitempty,dive,oneof=geography schedule purpose eligibility accommodation funding_source"`
	// FundingSources включает предикат funding_source для сервисов
	FundingSources []string `json:"funding_sources,omitempty"`
	// Async - поставить в очередь worker вместо синхронного планирования
	Async bool `json:"async,omitempty"`
}

// Trip собирает доменную поездку из запроса
func (r *PlanTripRequest) Trip() *domain.Trip {
	trip := &domain.Trip{
		Origin:      r.Origin.Domain(),
		Destination: r.Destination.Domain(),
		TripTime:    r.TripTime,
		ArriveBy:    r.ArriveBy,
		TripTypes:   domain.ParseTripTypes(r.TripTypes),
		Purpose:     r.Purpose,
	}
	if r.Traveler != nil {
		trip.Traveler = &domain.Traveler{
			Accommodations: r.Traveler.Accommodations,
			Eligibilities:  r.Traveler.Eligibilities,
		}
	}
	return trip
}

// TravelPatternQuery - фильтры поиска travel patterns
type TravelPatternQuery struct {
	AgencyID    int64      `query:"agency_id" validate:"required"`
	CustomerID  string     `query:"customer_id"`
	Purpose     string     `query:"purpose"`
	Date        *time.Time `query:"-"`
	StartTime   *int       `query:"start_time" validate:"omitempty,min=0,max=86400"`
	EndTime     *int       `query:"end_time" validate:"omitempty,min=0,max=86400"`
	Origin      *Point     `query:"-"`
	Destination *Point     `query:"-"`
}

package domain

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
	"sort"
)

const metersToMiles = 0.000621371

type FareType string

const (
	FareTypeFlat           FareType = "flat"
	FareTypeMileage        FareType = "mileage"
	FareTypeZone           FareType = "zone"
	FareTypeTaxiFareFinder FareType = "taxi_fare_finder"
	FareTypeEmpty          FareType = "empty"
)

// DistanceEstimator отдает расстояние маршрута в метрах по типу поездки
type DistanceEstimator interface {
	GetDistance(tripType TripType) float64
}

// TaxiFareEstimator возвращает счетчик такси для поездки
type TaxiFareEstimator interface {
	MeteredFare(ctx context.Context, trip *Trip, city string) (float64, bool)
}

// FareContext - внешние источники, нужные для расчета тарифа
type FareContext struct {
	Router     DistanceEstimator
	FareFinder TaxiFareEstimator
}

// FareStructure - тарифное правило сервиса. Поля, кроме Type, зависят от типа.
type FareStructure struct {
	Type FareType `json:"type"`

	BaseFare    float64 `json:"base_fare,omitempty"`
	MileageRate float64 `json:"mileage_rate,omitempty"`
	// TripType - чье расстояние брать у роутера для mileage тарифа
	TripType TripType `json:"trip_type,omitempty"`

	Zones     map[string]*Area              `json:"zones,omitempty"`
	FareTable map[string]map[string]float64 `json:"fare_table,omitempty"`

	TaxiFareFinderCity string `json:"taxi_fare_finder_city,omitempty"`
}

// Compute считает стоимость поездки. ok=false означает "тарифа нет".
func (f FareStructure) Compute(ctx context.Context, trip *Trip, fc FareContext) (float64, bool) {
	switch f.Type {
	case FareTypeFlat:
		return f.BaseFare, true
	case FareTypeMileage:
		if fc.Router == nil {
			return 0, false
		}
		meters := fc.Router.GetDistance(f.TripType)
		return roundMoney(f.BaseFare + f.MileageRate*meters*metersToMiles), true
	case FareTypeZone:
		return f.zoneFare(trip)
	case FareTypeTaxiFareFinder:
		if fc.FareFinder == nil {
			return 0, false
		}
		return fc.FareFinder.MeteredFare(ctx, trip, f.TaxiFareFinderCity)
	case FareTypeEmpty, "":
		return 0, true
	}
	return 0, false
}

func (f FareStructure) zoneFare(trip *Trip) (float64, bool) {
	from := f.ZoneFor(trip.Origin)
	to := f.ZoneFor(trip.Destination)
	if from == "" || to == "" {
		return 0, false
	}
	row, ok := f.FareTable[from]
	if !ok {
		return 0, false
	}
	fare, ok := row[to]
	return fare, ok
}

// ZoneFor возвращает первую по имени зону, содержащую точку
func (f FareStructure) ZoneFor(p Point) string {
	names := make([]string, 0, len(f.Zones))
	for name := range f.Zones {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if f.Zones[name].Contains(p) {
			return name
		}
	}
	return ""
}

// Scan/Value хранят тариф в jsonb
func (f *FareStructure) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*f = FareStructure{Type: FareTypeEmpty}
		return nil
	case []byte:
		return json.Unmarshal(v, f)
	case string:
		return json.Unmarshal([]byte(v), f)
	}
	return fmt.Errorf("cannot scan %T into FareStructure", src)
}

func (f FareStructure) Value() (driver.Value, error) {
	b, err := json.Marshal(f)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

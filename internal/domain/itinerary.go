package domain

import (
	"time"

	"github.com/google/uuid"
)

// Place - точка начала или конца сегмента
type Place struct {
	Name string     `json:"name"`
	Lat  float64    `json:"lat"`
	Lon  float64    `json:"lon"`
	Time *time.Time `json:"time,omitempty"`
}

type FareProduct struct {
	ID       string  `json:"id,omitempty"`
	Name     string  `json:"name,omitempty"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency,omitempty"`
}

// LegService - сервис, к которому привязан сегмент
type LegService struct {
	ID       *int64 `json:"id,omitempty"`
	Name     string `json:"name,omitempty"`
	FareInfo string `json:"fare_info,omitempty"`
	LogoURL  string `json:"logo_url,omitempty"`
}

type Leg struct {
	Mode         string        `json:"mode"`
	From         Place         `json:"from"`
	To           Place         `json:"to"`
	Distance     float64       `json:"distance"`
	Duration     float64       `json:"duration"`
	TransitLeg   bool          `json:"transit_leg"`
	AgencyID     string        `json:"agency_id,omitempty"`
	AgencyName   string        `json:"agency_name,omitempty"`
	Route        string        `json:"route,omitempty"`
	FareProducts []FareProduct `json:"fare_products,omitempty"`
	Service      *LegService   `json:"service,omitempty"`
}

// Ambiguous - сегмент назвал сервис, но сопоставить его не удалось
func (l *Leg) Ambiguous() bool {
	return l.Service != nil && l.Service.Name != "" && l.Service.ID == nil
}

type Itinerary struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	TripID       uuid.UUID  `json:"trip_id" db:"trip_id"`
	TripType     TripType   `json:"trip_type" db:"trip_type"`
	StartTime    *time.Time `json:"start_time,omitempty" db:"start_time"`
	EndTime      *time.Time `json:"end_time,omitempty" db:"end_time"`
	Duration     float64    `json:"duration" db:"duration"`
	TransitTime  float64    `json:"transit_time" db:"transit_time"`
	WalkTime     float64    `json:"walk_time" db:"walk_time"`
	WaitTime     float64    `json:"wait_time" db:"wait_time"`
	WalkDistance float64    `json:"walk_distance" db:"walk_distance"`
	// Cost == nil - тариф не определен
	Cost      *float64 `json:"cost" db:"cost"`
	Legs      []Leg    `json:"legs"`
	ServiceID *int64   `json:"service_id,omitempty" db:"service_id"`
	Error     string   `json:"error,omitempty" db:"error"`
}

// Distance - сумма расстояний сегментов в метрах
func (i *Itinerary) Distance() float64 {
	var total float64
	for _, leg := range i.Legs {
		total += leg.Distance
	}
	return total
}

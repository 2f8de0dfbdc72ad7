package domain

import (
	"time"

	"github.com/google/uuid"
)

// Stream names
const (
	StreamTripPlan    = "stream:trip:plan"
	StreamTripPlanned = "stream:trip:planned"
)

// TripPlanEvent - входящее событие на планирование поездки
type TripPlanEvent struct {
	TripID        uuid.UUID `json:"trip_id"`
	Traveler      *Traveler `json:"traveler,omitempty"`
	Origin        Point     `json:"origin"`
	Destination   Point     `json:"destination"`
	TripTime      time.Time `json:"trip_time"`
	ArriveBy      bool      `json:"arrive_by"`
	TripTypes     []string  `json:"trip_types"`
	Purpose       *string   `json:"purpose,omitempty"`
	OnlyFilters   []string  `json:"only_filters,omitempty"`
	ExceptFilters []string  `json:"except_filters,omitempty"`
	// FundingSources включает предикат funding_source
	FundingSources []string `json:"funding_sources,omitempty"`
}

// Trip собирает поездку из события
func (e *TripPlanEvent) Trip() *Trip {
	id := e.TripID
	if id == uuid.Nil {
		id = uuid.New()
	}
	return &Trip{
		ID:          id,
		Traveler:    e.Traveler,
		Origin:      e.Origin,
		Destination: e.Destination,
		TripTime:    e.TripTime,
		ArriveBy:    e.ArriveBy,
		TripTypes:   ParseTripTypes(e.TripTypes),
		Purpose:     e.Purpose,
	}
}

// TripPlannedEvent - результат планирования
type TripPlannedEvent struct {
	TripID         uuid.UUID         `json:"trip_id"`
	ItineraryCount int               `json:"itinerary_count"`
	Errors         map[string]string `json:"errors,omitempty"`
	Error          string            `json:"error,omitempty"`
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}

package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/trip-planner/internal/domain"
)

// PlanTripResponse - результат планирования
type PlanTripResponse struct {
	TripID      uuid.UUID          `json:"trip_id"`
	Status      string             `json:"status"`
	Itineraries []domain.Itinerary `json:"itineraries,omitempty"`
	Errors      map[string]string  `json:"errors,omitempty"`
}

// TripResponse - сохраненная поездка
type TripResponse struct {
	Trip *domain.Trip `json:"trip"`
}

// BookingWindowDTO - окно бронирования на момент запроса
type BookingWindowDTO struct {
	Name     string `json:"name,omitempty"`
	Earliest string `json:"earliest"`
	Latest   string `json:"latest"`
}

// TravelPatternDTO - travel pattern с разрешенным календарем
type TravelPatternDTO struct {
	ID                        int64            `json:"id"`
	AgencyID                  int64            `json:"agency_id"`
	Name                      string           `json:"name"`
	Description               string           `json:"description,omitempty"`
	OriginZone                string           `json:"origin_zone"`
	DestinationZone           string           `json:"destination_zone"`
	AllowReverseSequenceTrips bool             `json:"allow_reverse_sequence_trips"`
	BookingWindow             BookingWindowDTO `json:"booking_window"`
	Purposes                  []string         `json:"purposes"`
	FundingSources            []string         `json:"funding_sources"`
	Calendar                  domain.Calendar  `json:"to_calendar"`
}

type TravelPatternResponse struct {
	TravelPatterns []TravelPatternDTO `json:"travel_patterns"`
}

// NewBookingWindowDTO фиксирует окно бронирования на момент now
func NewBookingWindowDTO(w *domain.BookingWindow, now time.Time) BookingWindowDTO {
	return BookingWindowDTO{
		Name:     w.Name,
		Earliest: w.EarliestBooking(now).Format("2006-01-02"),
		Latest:   w.LatestBooking(now).Format("2006-01-02"),
	}
}

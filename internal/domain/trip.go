package domain

import (
	"time"

	"github.com/google/uuid"
)

// Traveler - пассажир и его потребности
type Traveler struct {
	UserID uuid.UUID `json:"user_id"`
	// Accommodations - что пассажиру нужно (wheelchair, ...)
	Accommodations []string `json:"accommodations,omitempty"`
	// Eligibilities - подтвержденные признаки (veteran, over_65, ...)
	Eligibilities []string `json:"eligibilities,omitempty"`
}

func (t *Traveler) Needs(accommodation string) bool {
	return t != nil && contains(t.Accommodations, accommodation)
}

func (t *Traveler) IsEligible(code string) bool {
	return t != nil && contains(t.Eligibilities, code)
}

type Trip struct {
	ID          uuid.UUID   `json:"id" db:"id"`
	Traveler    *Traveler   `json:"traveler,omitempty"`
	Origin      Point       `json:"origin"`
	Destination Point       `json:"destination"`
	TripTime    time.Time   `json:"trip_time" db:"trip_time"`
	ArriveBy    bool        `json:"arrive_by" db:"arrive_by"`
	TripTypes   []TripType  `json:"trip_types"`
	Purpose     *string     `json:"purpose,omitempty" db:"purpose"`
	Itineraries []Itinerary `json:"itineraries"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at" db:"updated_at"`
}

// Reversed возвращает копию поездки с переставленными началом и концом
func (t *Trip) Reversed() *Trip {
	cp := *t
	cp.Origin, cp.Destination = t.Destination, t.Origin
	return &cp
}

func (t *Trip) HasPurpose() bool {
	return t.Purpose != nil && *t.Purpose != ""
}

// SecondsSinceMidnight - время поездки в секундах от начала дня в ее часовом поясе
func (t *Trip) SecondsSinceMidnight() int {
	h, m, s := t.TripTime.Clock()
	return h*3600 + m*60 + s
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

package otp

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrNoItineraryList = errors.New("router response has no itinerary list")

type planResponse struct {
	Data *struct {
		Plan *rawPlan `json:"plan"`
	} `json:"data"`
	Plan   *rawPlan       `json:"plan"`
	Errors []graphQLError `json:"errors"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type rawPlan struct {
	Itineraries *[]rawItinerary `json:"itineraries"`
}

type rawItinerary struct {
	StartTime    int64     `json:"startTime"`
	EndTime      int64     `json:"endTime"`
	Duration     float64   `json:"duration"`
	WalkTime     float64   `json:"walkTime"`
	WaitingTime  float64   `json:"waitingTime"`
	WalkDistance float64   `json:"walkDistance"`
	Fares        []rawFare `json:"fares"`
	Legs         []rawLeg  `json:"legs"`
}

type rawFare struct {
	Type     string `json:"type"`
	Cents    int    `json:"cents"`
	Currency string `json:"currency"`
}

type rawPlace struct {
	Name          string  `json:"name"`
	Lat           float64 `json:"lat"`
	Lon           float64 `json:"lon"`
	DepartureTime int64   `json:"departureTime"`
	ArrivalTime   int64   `json:"arrivalTime"`
}

type rawAgency struct {
	GtfsID string `json:"gtfsId"`
	Name   string `json:"name"`
}

type rawRoute struct {
	ShortName string `json:"shortName"`
	LongName  string `json:"longName"`
}

type rawBookingInfo struct {
	ContactInfo *struct {
		PhoneNumber string `json:"phoneNumber"`
	} `json:"contactInfo"`
}

type rawFareProduct struct {
	ID      string `json:"id"`
	Product struct {
		Name  string `json:"name"`
		Price *struct {
			Amount   float64 `json:"amount"`
			Currency struct {
				Code string `json:"code"`
			} `json:"currency"`
		} `json:"price"`
	} `json:"product"`
}

type rawLeg struct {
	Mode       string     `json:"mode"`
	StartTime  int64      `json:"startTime"`
	EndTime    int64      `json:"endTime"`
	Duration   float64    `json:"duration"`
	Distance   float64    `json:"distance"`
	TransitLeg bool       `json:"transitLeg"`
	BoardRule  string     `json:"boardRule"`
	From       rawPlace   `json:"from"`
	To         rawPlace   `json:"to"`
	Agency     *rawAgency `json:"agency"`
	// agencyId/agencyName - плоские поля старого REST API
	AgencyID          string           `json:"agencyId"`
	AgencyName        string           `json:"agencyName"`
	Route             *rawRoute        `json:"route"`
	PickupBookingInfo *rawBookingInfo  `json:"pickupBookingInfo"`
	FareProducts      []rawFareProduct `json:"fareProducts"`
}

func (l *rawLeg) agencyID() string {
	if l.Agency != nil && l.Agency.GtfsID != "" {
		return l.Agency.GtfsID
	}
	return l.AgencyID
}

func (l *rawLeg) agencyName() string {
	if l.Agency != nil && l.Agency.Name != "" {
		return l.Agency.Name
	}
	return l.AgencyName
}

func (l *rawLeg) routeName() string {
	if l.Route == nil {
		return ""
	}
	if l.Route.ShortName != "" {
		return l.Route.ShortName
	}
	return l.Route.LongName
}

// phoneBooked - сегмент требует звонка для посадки
func (l *rawLeg) phoneBooked() bool {
	if l.BoardRule == "mustPhone" {
		return true
	}
	return l.PickupBookingInfo != nil &&
		l.PickupBookingInfo.ContactInfo != nil &&
		l.PickupBookingInfo.ContactInfo.PhoneNumber != ""
}

// parsePlan достает список маршрутов из {"data":{"plan":...}} или {"plan":...}
func parsePlan(body []byte) ([]rawItinerary, error) {
	var resp planResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode router response: %w", err)
	}

	plan := resp.Plan
	if resp.Data != nil && resp.Data.Plan != nil {
		plan = resp.Data.Plan
	}

	if plan == nil || plan.Itineraries == nil {
		if len(resp.Errors) > 0 {
			messages := make([]string, 0, len(resp.Errors))
			for _, e := range resp.Errors {
				messages = append(messages, e.Message)
			}
			return nil, fmt.Errorf("%w: %s", ErrNoItineraryList, strings.Join(messages, "; "))
		}
		return nil, ErrNoItineraryList
	}

	return *plan.Itineraries, nil
}

func millisToTime(ms int64) *time.Time {
	if ms == 0 {
		return nil
	}
	t := time.UnixMilli(ms).UTC()
	return &t
}

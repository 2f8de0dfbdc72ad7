package otp

import (
	"encoding/json"
	"strings"

	"github.com/trip-planner/internal/domain"
	"github.com/trip-planner/internal/pkg/utils"
)

const planQuery = `query Plan(
  $fromLat: Float!, $fromLon: Float!, $toLat: Float!, $toLon: Float!,
  $date: String!, $time: String!, $arriveBy: Boolean!,
  $modes: [TransportMode], $wheelchair: Boolean,
  $walkSpeed: Float, $maxWalkDistance: Float, $numItineraries: Int
) {
  plan(
    from: {lat: $fromLat, lon: $fromLon}
    to: {lat: $toLat, lon: $toLon}
    date: $date
    time: $time
    arriveBy: $arriveBy
    transportModes: $modes
    wheelchair: $wheelchair
    walkSpeed: $walkSpeed
    maxWalkDistance: $maxWalkDistance
    numItineraries: $numItineraries
  ) {
    itineraries {
      startTime
      endTime
      duration
      walkTime
      waitingTime
      walkDistance
      fares { type cents currency }
      legs {
        mode
        startTime
        endTime
        duration
        distance
        transitLeg
        boardRule
        from { name lat lon departureTime }
        to { name lat lon arrivalTime }
        agency { gtfsId name }
        route { shortName longName }
        pickupBookingInfo { contactInfo { phoneNumber } }
        fareProducts {
          id
          product {
            name
            ... on DefaultFareProduct { price { amount currency { code } } }
          }
        }
      }
    }
  }
}`

type graphQLRequest struct {
	Query     string        `json:"query"`
	Variables planVariables `json:"variables"`
}

type transportMode struct {
	Mode      string `json:"mode"`
	Qualifier string `json:"qualifier,omitempty"`
}

type planVariables struct {
	FromLat         float64         `json:"fromLat"`
	FromLon         float64         `json:"fromLon"`
	ToLat           float64         `json:"toLat"`
	ToLon           float64         `json:"toLon"`
	Date            string          `json:"date"`
	Time            string          `json:"time"`
	ArriveBy        bool            `json:"arriveBy"`
	Modes           []transportMode `json:"modes"`
	Wheelchair      bool            `json:"wheelchair"`
	WalkSpeed       float64         `json:"walkSpeed"`
	MaxWalkDistance float64         `json:"maxWalkDistance"` // meters
	NumItineraries  int             `json:"numItineraries"`
}

// parseModes разбирает "TRANSIT,WALK,FLEX_ACCESS" в список режимов GraphQL
func parseModes(modes string) []transportMode {
	var result []transportMode
	for _, token := range strings.Split(modes, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		switch {
		case strings.HasPrefix(token, "FLEX_"):
			result = append(result, transportMode{Mode: "FLEX", Qualifier: strings.TrimPrefix(token, "FLEX_")})
		case token == "CAR_PARK":
			result = append(result, transportMode{Mode: "CAR", Qualifier: "PARK"})
		default:
			result = append(result, transportMode{Mode: token})
		}
	}
	return result
}

func buildPlanBody(cfg Config, trip *domain.Trip, modes string, numItineraries int) ([]byte, error) {
	req := graphQLRequest{
		Query: planQuery,
		Variables: planVariables{
			FromLat:         trip.Origin.Lat,
			FromLon:         trip.Origin.Lon,
			ToLat:           trip.Destination.Lat,
			ToLon:           trip.Destination.Lon,
			Date:            trip.TripTime.Format("2006-01-02"),
			Time:            trip.TripTime.Format("15:04"),
			ArriveBy:        trip.ArriveBy,
			Modes:           parseModes(modes),
			Wheelchair:      cfg.Wheelchair || trip.Traveler.Needs("wheelchair"),
			WalkSpeed:       cfg.walkSpeed(),
			MaxWalkDistance: cfg.maxWalkDistance() * utils.MilesToMeters,
			NumItineraries:  numItineraries,
		},
	}
	return json.Marshal(req)
}

package domain

import "time"

// Schedule - окно работы сервиса в конкретный день недели, время в секундах от полуночи
type Schedule struct {
	Day       time.Weekday `json:"day" db:"day"`
	StartTime int          `json:"start_time" db:"start_time"`
	EndTime   int          `json:"end_time" db:"end_time"`
}

// Covers проверяет, что день и время попадают в окно (границы включительно)
func (s Schedule) Covers(day time.Weekday, seconds int) bool {
	return s.Day == day && s.StartTime <= seconds && seconds <= s.EndTime
}

type Service struct {
	ID             int64         `json:"id" db:"id"`
	Name           string        `json:"name" db:"name"`
	Type           TripType      `json:"type" db:"type"`
	GTFSAgencyID   string        `json:"gtfs_agency_id,omitempty" db:"gtfs_agency_id"`
	LogoURL        string        `json:"logo_url,omitempty" db:"logo_url"`
	URL            string        `json:"url,omitempty" db:"url"`
	StartOrEndArea *Area         `json:"start_or_end_area,omitempty" db:"start_or_end_area"`
	TripWithinArea *Area         `json:"trip_within_area,omitempty" db:"trip_within_area"`
	Schedules      []Schedule    `json:"schedules,omitempty"`
	Fare           FareStructure `json:"fare" db:"fare"`
	Accommodations []string      `json:"accommodations,omitempty" db:"accommodations"`
	Eligibilities  []string      `json:"eligibilities,omitempty" db:"eligibilities"`
	Purposes       []string      `json:"purposes,omitempty" db:"purposes"`
	FundingSources []string      `json:"funding_sources,omitempty" db:"funding_sources"`
	Archived       bool          `json:"archived" db:"archived"`
}

func (s *Service) Accommodates(code string) bool {
	return contains(s.Accommodations, code)
}

func (s *Service) ServesPurpose(code string) bool {
	return contains(s.Purposes, code)
}

// FareInfo - краткое описание тарифа для аннотации сегментов
func (s *Service) FareInfo() string {
	if s.URL != "" {
		return s.URL
	}
	return string(s.Fare.Type)
}

// Published - не архивный сервис
func (s *Service) Published() bool {
	return !s.Archived
}

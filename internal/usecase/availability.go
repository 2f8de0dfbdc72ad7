package usecase

import (
	"github.com/trip-planner/internal/domain"
)

// AvailabilityFilter - имя предиката доступности сервиса
type AvailabilityFilter string

const (
	FilterGeography     AvailabilityFilter = "geography"
	FilterSchedule      AvailabilityFilter = "schedule"
	FilterPurpose       AvailabilityFilter = "purpose"
	FilterEligibility   AvailabilityFilter = "eligibility"
	FilterAccommodation AvailabilityFilter = "accommodation"
	FilterFundingSource AvailabilityFilter = "funding_source"
)

// AllFilters - все предикаты в порядке применения
func AllFilters() []AvailabilityFilter {
	return []AvailabilityFilter{
		FilterGeography,
		FilterSchedule,
		FilterPurpose,
		FilterEligibility,
		FilterAccommodation,
		FilterFundingSource,
	}
}

// ResolveFilters возвращает only (или все, если only пуст) за вычетом except.
// Неизвестные имена игнорируются.
func ResolveFilters(only, except []string) []AvailabilityFilter {
	excluded := make(map[AvailabilityFilter]bool, len(except))
	for _, name := range except {
		excluded[AvailabilityFilter(name)] = true
	}

	requested := AllFilters()
	if len(only) > 0 {
		wanted := make(map[AvailabilityFilter]bool, len(only))
		for _, name := range only {
			wanted[AvailabilityFilter(name)] = true
		}
		requested = nil
		for _, f := range AllFilters() {
			if wanted[f] {
				requested = append(requested, f)
			}
		}
	}

	result := make([]AvailabilityFilter, 0, len(requested))
	for _, f := range requested {
		if !excluded[f] {
			result = append(result, f)
		}
	}
	return result
}

// AvailabilityOptions - набор активных предикатов и данные для funding_source
type AvailabilityOptions struct {
	Filters []AvailabilityFilter
	// FundingSources - коды источников, допустимых для цели поездки.
	// nil - предикат funding_source не применяется.
	FundingSources []string
}

// FilterServices оставляет сервисы, прошедшие все активные предикаты.
// Функция не меняет входные данные.
func FilterServices(trip *domain.Trip, services []domain.Service, opts AvailabilityOptions) []domain.Service {
	result := make([]domain.Service, 0, len(services))
	for i := range services {
		if serviceAvailable(trip, &services[i], opts) {
			result = append(result, services[i])
		}
	}
	return result
}

// ServicesByTripType группирует сервисы по типу поездки
func ServicesByTripType(services []domain.Service) map[domain.TripType][]domain.Service {
	result := make(map[domain.TripType][]domain.Service)
	for _, s := range services {
		result[s.Type] = append(result[s.Type], s)
	}
	return result
}

func serviceAvailable(trip *domain.Trip, s *domain.Service, opts AvailabilityOptions) bool {
	for _, f := range opts.Filters {
		var ok bool
		switch f {
		case FilterGeography:
			ok = AvailableByGeography(s, trip)
		case FilterSchedule:
			ok = AvailableBySchedule(s, trip)
		case FilterPurpose:
			ok = AvailableByPurpose(s, trip)
		case FilterEligibility:
			ok = AvailableByEligibility(s, trip)
		case FilterAccommodation:
			ok = AvailableByAccommodation(s, trip)
		case FilterFundingSource:
			ok = opts.FundingSources == nil || AvailableByFundingSource(s.FundingSources, opts.FundingSources)
		default:
			ok = true
		}
		if !ok {
			return false
		}
	}
	return true
}

// AvailableByGeography: без зон - доступен везде; start-or-end - хотя бы один конец в зоне;
// trip-within - оба конца в зоне; обе зоны - оба условия.
func AvailableByGeography(s *domain.Service, trip *domain.Trip) bool {
	if !s.StartOrEndArea.IsEmpty() {
		if !s.StartOrEndArea.Contains(trip.Origin) && !s.StartOrEndArea.Contains(trip.Destination) {
			return false
		}
	}
	if !s.TripWithinArea.IsEmpty() {
		if !s.TripWithinArea.Contains(trip.Origin) || !s.TripWithinArea.Contains(trip.Destination) {
			return false
		}
	}
	return true
}

// AvailableBySchedule: без расписаний - доступен всегда
func AvailableBySchedule(s *domain.Service, trip *domain.Trip) bool {
	if len(s.Schedules) == 0 {
		return true
	}
	day := trip.TripTime.Weekday()
	seconds := trip.SecondsSinceMidnight()
	for _, sch := range s.Schedules {
		if sch.Covers(day, seconds) {
			return true
		}
	}
	return false
}

// AvailableByPurpose: без ограничений по цели - доступен; иначе цель поездки должна быть разрешена
func AvailableByPurpose(s *domain.Service, trip *domain.Trip) bool {
	if len(s.Purposes) == 0 {
		return true
	}
	return trip.HasPurpose() && s.ServesPurpose(*trip.Purpose)
}

// AvailableByEligibility: пассажир должен иметь все требуемые признаки
func AvailableByEligibility(s *domain.Service, trip *domain.Trip) bool {
	for _, code := range s.Eligibilities {
		if !trip.Traveler.IsEligible(code) {
			return false
		}
	}
	return true
}

// AvailableByAccommodation: сервис предоставляет все, что нужно пассажиру
func AvailableByAccommodation(s *domain.Service, trip *domain.Trip) bool {
	if trip.Traveler == nil {
		return true
	}
	for _, need := range trip.Traveler.Accommodations {
		if !s.Accommodates(need) {
			return false
		}
	}
	return true
}

// AvailableByFundingSource - пересекаются ли объявленные и допустимые источники оплаты
func AvailableByFundingSource(declared, valid []string) bool {
	set := make(map[string]struct{}, len(valid))
	for _, code := range valid {
		set[code] = struct{}{}
	}
	for _, code := range declared {
		if _, ok := set[code]; ok {
			return true
		}
	}
	return false
}

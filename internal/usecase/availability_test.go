package usecase_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/trip-planner/internal/domain"
	"github.com/trip-planner/internal/usecase"
)

// понедельник 10:00
var mondayMorning = time.Date(2026, time.October, 19, 10, 0, 0, 0, time.UTC)

func newTrip(origin, destination domain.Point) *domain.Trip {
	return &domain.Trip{
		Origin:      origin,
		Destination: destination,
		TripTime:    mondayMorning,
		TripTypes:   []domain.TripType{domain.TripTypeParatransit},
	}
}

var (
	inside  = domain.Point{Lat: 42.0, Lon: -71.0}
	inside2 = domain.Point{Lat: 42.05, Lon: -71.05}
	outside = domain.Point{Lat: 40.0, Lon: -75.0}
)

func TestAvailableByGeography(t *testing.T) {
	zone := square(42.0, -71.0, 0.1)

	t.Run("service without areas is available anywhere", func(t *testing.T) {
		svc := &domain.Service{}
		assert.True(t, usecase.AvailableByGeography(svc, newTrip(outside, outside)))
	})

	t.Run("start or end area is symmetric", func(t *testing.T) {
		svc := &domain.Service{StartOrEndArea: zone}
		assert.True(t, usecase.AvailableByGeography(svc, newTrip(inside, outside)))
		assert.True(t, usecase.AvailableByGeography(svc, newTrip(outside, inside)))
		assert.False(t, usecase.AvailableByGeography(svc, newTrip(outside, outside)))
	})

	t.Run("trip within area requires both endpoints", func(t *testing.T) {
		svc := &domain.Service{TripWithinArea: zone}
		assert.True(t, usecase.AvailableByGeography(svc, newTrip(inside, inside2)))
		assert.False(t, usecase.AvailableByGeography(svc, newTrip(inside, outside)))
	})

	t.Run("both areas set and destination outside trip within", func(t *testing.T) {
		svc := &domain.Service{StartOrEndArea: zone, TripWithinArea: square(42.0, -71.0, 0.01)}
		assert.False(t, usecase.AvailableByGeography(svc, newTrip(inside, inside2)))
		assert.True(t, usecase.AvailableByGeography(svc, newTrip(inside, inside)))
	})

	t.Run("empty area behaves as unset", func(t *testing.T) {
		svc := &domain.Service{StartOrEndArea: domain.NewArea()}
		assert.True(t, usecase.AvailableByGeography(svc, newTrip(outside, outside)))
	})
}

func TestAvailableBySchedule(t *testing.T) {
	trip := newTrip(inside, inside)

	tests := []struct {
		name      string
		schedules []domain.Schedule
		want      bool
	}{
		{"no schedules", nil, true},
		{"covering window", []domain.Schedule{{Day: time.Monday, StartTime: hours(8), EndTime: hours(12)}}, true},
		{"inclusive start", []domain.Schedule{{Day: time.Monday, StartTime: hours(10), EndTime: hours(12)}}, true},
		{"inclusive end", []domain.Schedule{{Day: time.Monday, StartTime: hours(6), EndTime: hours(10)}}, true},
		{"other weekday", []domain.Schedule{{Day: time.Tuesday, StartTime: 0, EndTime: hours(24)}}, false},
		{"too late", []domain.Schedule{{Day: time.Monday, StartTime: hours(11), EndTime: hours(14)}}, false},
		{"any window matches", []domain.Schedule{
			{Day: time.Sunday, StartTime: 0, EndTime: hours(24)},
			{Day: time.Monday, StartTime: hours(9), EndTime: hours(11)},
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &domain.Service{Schedules: tt.schedules}
			assert.Equal(t, tt.want, usecase.AvailableBySchedule(svc, trip))
		})
	}
}

func TestAvailableByPurpose(t *testing.T) {
	restricted := &domain.Service{Purposes: []string{"medical"}}
	open := &domain.Service{}

	trip := newTrip(inside, inside)
	assert.True(t, usecase.AvailableByPurpose(open, trip))
	assert.False(t, usecase.AvailableByPurpose(restricted, trip))

	trip.Purpose = strPtr("medical")
	assert.True(t, usecase.AvailableByPurpose(restricted, trip))

	trip.Purpose = strPtr("shopping")
	assert.False(t, usecase.AvailableByPurpose(restricted, trip))
}

func TestAvailableByEligibility(t *testing.T) {
	svc := &domain.Service{Eligibilities: []string{"over_65", "veteran"}}

	trip := newTrip(inside, inside)
	assert.False(t, usecase.AvailableByEligibility(svc, trip), "nil traveler")

	trip.Traveler = &domain.Traveler{Eligibilities: []string{"over_65"}}
	assert.False(t, usecase.AvailableByEligibility(svc, trip))

	trip.Traveler.Eligibilities = append(trip.Traveler.Eligibilities, "veteran")
	assert.True(t, usecase.AvailableByEligibility(svc, trip))

	assert.True(t, usecase.AvailableByEligibility(&domain.Service{}, newTrip(inside, inside)))
}

func TestAvailableByAccommodation(t *testing.T) {
	svc := &domain.Service{Accommodations: []string{"wheelchair"}}

	trip := newTrip(inside, inside)
	assert.True(t, usecase.AvailableByAccommodation(svc, trip), "nil traveler needs nothing")

	trip.Traveler = &domain.Traveler{Accommodations: []string{"wheelchair"}}
	assert.True(t, usecase.AvailableByAccommodation(svc, trip))

	trip.Traveler.Accommodations = []string{"wheelchair", "stretcher"}
	assert.False(t, usecase.AvailableByAccommodation(svc, trip))
}

func TestAvailableByFundingSource(t *testing.T) {
	assert.True(t, usecase.AvailableByFundingSource([]string{"MEDICAID", "ADA"}, []string{"ADA"}))
	assert.False(t, usecase.AvailableByFundingSource([]string{"MEDICAID"}, []string{"ADA"}))
	assert.False(t, usecase.AvailableByFundingSource(nil, []string{"ADA"}))
	assert.False(t, usecase.AvailableByFundingSource([]string{"ADA"}, nil))
}

func TestResolveFilters(t *testing.T) {
	t.Run("all by default", func(t *testing.T) {
		assert.Equal(t, usecase.AllFilters(), usecase.ResolveFilters(nil, nil))
	})

	t.Run("only keeps canonical order", func(t *testing.T) {
		got := usecase.ResolveFilters([]string{"schedule", "geography", "bogus"}, nil)
		assert.Equal(t, []usecase.AvailabilityFilter{usecase.FilterGeography, usecase.FilterSchedule}, got)
	})

	t.Run("except removes", func(t *testing.T) {
		got := usecase.ResolveFilters(nil, []string{"schedule", "funding_source"})
		assert.NotContains(t, got, usecase.FilterSchedule)
		assert.NotContains(t, got, usecase.FilterFundingSource)
		assert.Len(t, got, 4)
	})

	t.Run("only and except", func(t *testing.T) {
		got := usecase.ResolveFilters([]string{"purpose", "schedule"}, []string{"schedule"})
		assert.Equal(t, []usecase.AvailabilityFilter{usecase.FilterPurpose}, got)
	})
}

func TestFilterServices(t *testing.T) {
	zone := square(42.0, -71.0, 0.1)
	services := []domain.Service{
		{ID: 1, Type: domain.TripTypeParatransit},
		{ID: 2, Type: domain.TripTypeParatransit, StartOrEndArea: zone},
		{ID: 3, Type: domain.TripTypeTaxi, Schedules: []domain.Schedule{{Day: time.Sunday, EndTime: hours(24)}}},
		{ID: 4, Type: domain.TripTypeParatransit, FundingSources: []string{"ADA"}},
	}
	trip := newTrip(outside, outside)

	ids := func(list []domain.Service) []int64 {
		out := make([]int64, 0, len(list))
		for _, s := range list {
			out = append(out, s.ID)
		}
		return out
	}

	t.Run("all filters, funding not requested", func(t *testing.T) {
		got := usecase.FilterServices(trip, services, usecase.AvailabilityOptions{Filters: usecase.AllFilters()})
		assert.Equal(t, []int64{1, 4}, ids(got))
	})

	t.Run("funding sources requested", func(t *testing.T) {
		got := usecase.FilterServices(trip, services, usecase.AvailabilityOptions{
			Filters:        usecase.AllFilters(),
			FundingSources: []string{"ADA"},
		})
		assert.Equal(t, []int64{4}, ids(got))
	})

	t.Run("except geography and schedule", func(t *testing.T) {
		got := usecase.FilterServices(trip, services, usecase.AvailabilityOptions{
			Filters: usecase.ResolveFilters(nil, []string{"geography", "schedule"}),
		})
		assert.Equal(t, []int64{1, 2, 3, 4}, ids(got))
	})

	t.Run("input is not modified", func(t *testing.T) {
		before := len(services)
		usecase.FilterServices(trip, services, usecase.AvailabilityOptions{Filters: usecase.AllFilters()})
		assert.Len(t, services, before)
		assert.Equal(t, int64(2), services[1].ID)
	})

	t.Run("grouped by trip type", func(t *testing.T) {
		byType := usecase.ServicesByTripType(services)
		assert.Len(t, byType[domain.TripTypeParatransit], 3)
		assert.Len(t, byType[domain.TripTypeTaxi], 1)
	})
}

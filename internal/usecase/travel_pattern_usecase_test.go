package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/trip-planner/internal/domain"
	apperrors "github.com/trip-planner/internal/pkg/errors"
	"github.com/trip-planner/internal/usecase"
	"github.com/trip-planner/internal/usecase/dto"
)

const agencyID int64 = 7

// понедельник 19 октября, 08:00
var patternNow = time.Date(2026, time.October, 19, 8, 0, 0, 0, time.UTC)

var (
	originPoint      = dto.Point{Lat: 42.0, Lon: -71.0}
	destinationPoint = dto.Point{Lat: 42.5, Lon: -71.5}
	nowherePoint     = dto.Point{Lat: 30.0, Lon: -90.0}
)

func weekdaysPattern() domain.TravelPattern {
	var subs []domain.SubSchedule
	for d := time.Monday; d <= time.Friday; d++ {
		subs = append(subs, domain.SubSchedule{Day: weekday(d), StartTime: hours(8), EndTime: hours(18)})
	}
	return domain.TravelPattern{
		ID:              11,
		AgencyID:        agencyID,
		Name:            "Downtown medical",
		OriginZone:      &domain.OdZone{Name: "Suburbs", Area: square(42.0, -71.0, 0.1)},
		DestinationZone: &domain.OdZone{Name: "Downtown", Area: square(42.5, -71.5, 0.1)},
		BookingWindow:   &domain.BookingWindow{Name: "Week ahead", MinimumDaysNotice: 1, MaximumDaysNotice: 7},
		ServiceSchedules: []domain.ServiceSchedule{
			{Name: "Weekdays", Type: domain.ScheduleTypeWeekly, SubSchedules: subs},
		},
		Purposes:       []string{"medical"},
		FundingSources: []string{"ADA"},
	}
}

func newTravelPatternUseCase(patterns ...domain.TravelPattern) (*usecase.TravelPatternUseCase, *MockTravelPatternRepository, *MockBookingRepository) {
	repo := &MockTravelPatternRepository{}
	if len(patterns) > 0 {
		repo.On("ListByAgency", mock.Anything, agencyID).Return(patterns, nil)
	}
	booking := &MockBookingRepository{}

	uc := usecase.NewTravelPatternUseCase(repo, booking, zap.NewNop()).
		WithClock(func() time.Time { return patternNow })
	return uc, repo, booking
}

func baseQuery() dto.TravelPatternQuery {
	return dto.TravelPatternQuery{AgencyID: agencyID, Purpose: "medical"}
}

func TestTravelPatternUseCase_PurposeRequired(t *testing.T) {
	uc, repo, _ := newTravelPatternUseCase(weekdaysPattern())

	q := baseQuery()
	q.Purpose = ""
	_, err := uc.Available(context.Background(), q)
	assert.ErrorIs(t, err, apperrors.ErrPurposeRequired)
	repo.AssertNotCalled(t, "ListByAgency", mock.Anything, mock.Anything)
}

func TestTravelPatternUseCase_Calendar(t *testing.T) {
	uc, _, booking := newTravelPatternUseCase(weekdaysPattern())

	resp, err := uc.Available(context.Background(), baseQuery())
	require.NoError(t, err)
	require.Len(t, resp.TravelPatterns, 1)

	p := resp.TravelPatterns[0]
	assert.Equal(t, "Suburbs", p.OriginZone)
	assert.Equal(t, "Downtown", p.DestinationZone)
	assert.Equal(t, "2026-10-20", p.BookingWindow.Earliest)
	assert.Equal(t, "2026-10-26", p.BookingWindow.Latest)

	// вт 20 - пн 26 включительно, выходные без окна
	require.Len(t, p.Calendar, 7)
	assert.Equal(t, "2026-10-20", p.Calendar[0].Date.Format("2006-01-02"))
	assert.Equal(t, "2026-10-26", p.Calendar[6].Date.Format("2006-01-02"))
	assert.False(t, p.Calendar[4].HasWindow(), "saturday")
	assert.False(t, p.Calendar[5].HasWindow(), "sunday")
	assert.Equal(t, hours(8), *p.Calendar[0].StartTime)
	assert.Equal(t, hours(18), *p.Calendar[0].EndTime)

	// без customer_id внешняя система не вызывается
	booking.AssertNotCalled(t, "FundingSources", mock.Anything, mock.Anything)
}

func TestTravelPatternUseCase_CutoffHourShiftsEarliest(t *testing.T) {
	pattern := weekdaysPattern()
	pattern.BookingWindow.MinimumNoticeCutoffHour = 7

	uc, _, _ := newTravelPatternUseCase(pattern)

	resp, err := uc.Available(context.Background(), baseQuery())
	require.NoError(t, err)
	p := resp.TravelPatterns[0]
	assert.Equal(t, "2026-10-21", p.BookingWindow.Earliest)
	assert.Len(t, p.Calendar, 6)
}

func TestTravelPatternUseCase_Zones(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		reverse     bool
		origin      *dto.Point
		destination *dto.Point
		found       bool
	}{
		{"forward", false, &originPoint, &destinationPoint, true},
		{"origin only", false, &originPoint, nil, true},
		{"reverse not allowed", false, &destinationPoint, &originPoint, false},
		{"reverse allowed", true, &destinationPoint, &originPoint, true},
		{"origin outside zones", true, &nowherePoint, nil, false},
		{"destination outside zones", false, nil, &nowherePoint, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pattern := weekdaysPattern()
			pattern.AllowReverseSequenceTrips = tt.reverse
			uc, _, _ := newTravelPatternUseCase(pattern)

			q := baseQuery()
			q.Origin = tt.origin
			q.Destination = tt.destination

			resp, err := uc.Available(ctx, q)
			if tt.found {
				require.NoError(t, err)
				assert.Len(t, resp.TravelPatterns, 1)
			} else {
				assert.ErrorIs(t, err, apperrors.ErrTravelPatternsNotFound)
			}
		})
	}
}

func TestTravelPatternUseCase_Purpose(t *testing.T) {
	uc, _, _ := newTravelPatternUseCase(weekdaysPattern())

	q := baseQuery()
	q.Purpose = "shopping"
	_, err := uc.Available(context.Background(), q)
	assert.ErrorIs(t, err, apperrors.ErrTravelPatternsNotFound)

	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, "Not found", appErr.Message)
}

func TestTravelPatternUseCase_FundingSources(t *testing.T) {
	ctx := context.Background()

	t.Run("funding source allows purpose", func(t *testing.T) {
		uc, _, booking := newTravelPatternUseCase(weekdaysPattern())
		booking.On("FundingSources", ctx, "cust-1").Return([]domain.FundingSource{
			{Code: "ADA", AllowedPurposes: []string{"medical", "work"}},
		}, nil)
		booking.On("TripPurposes", ctx, "cust-1").Return([]domain.TripPurpose{}, nil)

		q := baseQuery()
		q.CustomerID = "cust-1"
		resp, err := uc.Available(ctx, q)
		require.NoError(t, err)
		assert.Len(t, resp.TravelPatterns, 1)
		booking.AssertExpectations(t)
	})

	t.Run("funding source does not allow purpose", func(t *testing.T) {
		uc, _, booking := newTravelPatternUseCase(weekdaysPattern())
		booking.On("FundingSources", ctx, "cust-2").Return([]domain.FundingSource{
			{Code: "ADA", AllowedPurposes: []string{"work"}},
			{Code: "MEDICAID", AllowedPurposes: []string{"medical"}},
		}, nil)
		booking.On("TripPurposes", ctx, "cust-2").Return([]domain.TripPurpose{}, nil)

		q := baseQuery()
		q.CustomerID = "cust-2"
		_, err := uc.Available(ctx, q)
		assert.ErrorIs(t, err, apperrors.ErrTravelPatternsNotFound)
	})

	t.Run("booking system error", func(t *testing.T) {
		uc, _, booking := newTravelPatternUseCase(weekdaysPattern())
		booking.On("FundingSources", ctx, "cust-3").Return(nil, apperrors.ErrBookingUnavailable)

		q := baseQuery()
		q.CustomerID = "cust-3"
		_, err := uc.Available(ctx, q)
		assert.ErrorIs(t, err, apperrors.ErrBookingUnavailable)
	})
}

func TestTravelPatternUseCase_PurposeValidity(t *testing.T) {
	ctx := context.Background()
	funding := []domain.FundingSource{{Code: "ADA", AllowedPurposes: []string{"medical"}}}

	from := date(2026, time.October, 22)
	until := date(2026, time.October, 23)
	later := date(2026, time.October, 25)

	t.Run("calendar clipped to validity range", func(t *testing.T) {
		uc, _, booking := newTravelPatternUseCase(weekdaysPattern())
		booking.On("FundingSources", ctx, "c").Return(funding, nil)
		booking.On("TripPurposes", ctx, "c").Return([]domain.TripPurpose{
			{Code: "medical", ValidFrom: &later},
			{Code: "medical", ValidFrom: &from, ValidUntil: &until},
			{Code: "work"},
		}, nil)

		q := baseQuery()
		q.CustomerID = "c"
		resp, err := uc.Available(ctx, q)
		require.NoError(t, err)

		cal := resp.TravelPatterns[0].Calendar
		require.Len(t, cal, 2)
		assert.Equal(t, "2026-10-22", cal[0].Date.Format("2006-01-02"))
		assert.Equal(t, "2026-10-23", cal[1].Date.Format("2006-01-02"))
	})

	t.Run("no date range means no restriction", func(t *testing.T) {
		uc, _, booking := newTravelPatternUseCase(weekdaysPattern())
		booking.On("FundingSources", ctx, "c").Return(funding, nil)
		booking.On("TripPurposes", ctx, "c").Return([]domain.TripPurpose{{Code: "medical"}}, nil)

		q := baseQuery()
		q.CustomerID = "c"
		resp, err := uc.Available(ctx, q)
		require.NoError(t, err)
		assert.Len(t, resp.TravelPatterns[0].Calendar, 7)
	})

	t.Run("validity leaves only weekend", func(t *testing.T) {
		sat := date(2026, time.October, 24)
		sun := date(2026, time.October, 25)

		uc, _, booking := newTravelPatternUseCase(weekdaysPattern())
		booking.On("FundingSources", ctx, "c").Return(funding, nil)
		booking.On("TripPurposes", ctx, "c").Return([]domain.TripPurpose{
			{Code: "medical", ValidFrom: &sat, ValidUntil: &sun},
		}, nil)

		q := baseQuery()
		q.CustomerID = "c"
		_, err := uc.Available(ctx, q)
		assert.ErrorIs(t, err, apperrors.ErrTravelPatternsNotFound)
	})
}

func TestTravelPatternUseCase_DateAndTime(t *testing.T) {
	ctx := context.Background()
	wednesday := date(2026, time.October, 21)
	saturday := date(2026, time.October, 24)
	beyond := date(2026, time.October, 30)

	tests := []struct {
		name  string
		date  *time.Time
		start *int
		end   *int
		found bool
	}{
		{"weekday in window", &wednesday, nil, nil, true},
		{"weekend", &saturday, nil, nil, false},
		{"beyond booking window", &beyond, nil, nil, false},
		{"time within service", &wednesday, intPtr(hours(9)), intPtr(hours(10)), true},
		{"time after service", &wednesday, intPtr(hours(19)), intPtr(hours(20)), false},
		{"start only", &wednesday, intPtr(hours(17)), nil, true},
		{"time without date", nil, intPtr(hours(9)), intPtr(hours(17)), true},
		{"time without date outside", nil, intPtr(hours(6)), intPtr(hours(9)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _, _ := newTravelPatternUseCase(weekdaysPattern())

			q := baseQuery()
			q.Date = tt.date
			q.StartTime = tt.start
			q.EndTime = tt.end

			resp, err := uc.Available(ctx, q)
			if tt.found {
				require.NoError(t, err)
				assert.Len(t, resp.TravelPatterns, 1)
			} else {
				assert.ErrorIs(t, err, apperrors.ErrTravelPatternsNotFound)
			}
		})
	}
}

func TestTravelPatternUseCase_ClockWestOfUTC(t *testing.T) {
	edt := time.FixedZone("EDT", -4*3600)

	tests := []struct {
		name     string
		now      time.Time
		earliest string
	}{
		{"morning", time.Date(2026, time.October, 19, 10, 0, 0, 0, edt), "2026-10-20"},
		// в UTC уже 20-е, по местным часам еще 19-е
		{"late evening", time.Date(2026, time.October, 19, 22, 30, 0, 0, edt), "2026-10-20"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _, _ := newTravelPatternUseCase(weekdaysPattern())
			uc.WithClock(func() time.Time { return tt.now })

			q := baseQuery()
			tuesday := date(2026, time.October, 20)
			q.Date = &tuesday

			resp, err := uc.Available(context.Background(), q)
			require.NoError(t, err)
			require.Len(t, resp.TravelPatterns, 1)

			p := resp.TravelPatterns[0]
			assert.Equal(t, tt.earliest, p.BookingWindow.Earliest)
			require.NotEmpty(t, p.Calendar)
			assert.Equal(t, tt.earliest, p.Calendar[0].Date.Format("2006-01-02"))
		})
	}
}

func TestTravelPatternUseCase_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("created", func(t *testing.T) {
		uc, repo, _ := newTravelPatternUseCase()
		pattern := weekdaysPattern()
		pattern.ID = 0

		repo.On("ExistsByName", ctx, agencyID, pattern.Name).Return(false, nil)
		repo.On("Create", ctx, mock.AnythingOfType("*domain.TravelPattern")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*domain.TravelPattern).ID = 99
			}).
			Return(nil)

		created, err := uc.Create(ctx, &pattern)
		require.NoError(t, err)
		assert.Equal(t, int64(99), created.ID)
		repo.AssertExpectations(t)
	})

	t.Run("name taken", func(t *testing.T) {
		uc, repo, _ := newTravelPatternUseCase()
		pattern := weekdaysPattern()

		repo.On("ExistsByName", ctx, agencyID, pattern.Name).Return(true, nil)

		_, err := uc.Create(ctx, &pattern)
		assert.ErrorIs(t, err, apperrors.ErrTravelPatternNameTaken)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("weekly sub-schedule without weekday", func(t *testing.T) {
		uc, repo, _ := newTravelPatternUseCase()
		pattern := weekdaysPattern()
		pattern.ServiceSchedules[0].SubSchedules[0].Day = nil

		_, err := uc.Create(ctx, &pattern)
		require.ErrorIs(t, err, apperrors.ErrInvalidTravelPattern)
		repo.AssertNotCalled(t, "ExistsByName", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing zones and purposes", func(t *testing.T) {
		uc, _, _ := newTravelPatternUseCase()
		pattern := weekdaysPattern()
		pattern.OriginZone = nil
		pattern.Purposes = nil

		_, err := uc.Create(ctx, &pattern)
		require.ErrorIs(t, err, apperrors.ErrInvalidTravelPattern)

		appErr, ok := apperrors.As(err)
		require.True(t, ok)
		assert.Len(t, appErr.Details["errors"], 2)
	})

	t.Run("end before start", func(t *testing.T) {
		uc, _, _ := newTravelPatternUseCase()
		pattern := weekdaysPattern()
		pattern.ServiceSchedules[0].SubSchedules[1].EndTime = hours(7)

		_, err := uc.Create(ctx, &pattern)
		assert.ErrorIs(t, err, apperrors.ErrInvalidTravelPattern)
	})
}

package domain

import (
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weekdayPtr(d time.Weekday) *time.Weekday {
	return &d
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func validPattern() TravelPattern {
	return TravelPattern{
		AgencyID:        1,
		Name:            "Downtown shuttle",
		OriginZone:      &OdZone{Name: "north", Area: square(28.6, -81.4, 0.05)},
		DestinationZone: &OdZone{Name: "south", Area: square(28.4, -81.4, 0.05)},
		BookingWindow:   &BookingWindow{MinimumDaysNotice: 1, MaximumDaysNotice: 14},
		ServiceSchedules: []ServiceSchedule{{
			Type: ScheduleTypeWeekly,
			SubSchedules: []SubSchedule{{
				Day:       weekdayPtr(time.Monday),
				StartTime: 6 * 3600,
				EndTime:   22 * 3600,
			}},
		}},
		Purposes:       []string{"medical"},
		FundingSources: []string{"ADA"},
	}
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterStructValidation(ServiceScheduleStructLevel, ServiceSchedule{})
	return v
}

func TestTravelPattern_Validation(t *testing.T) {
	v := newValidator()

	tests := []struct {
		name    string
		mutate  func(p *TravelPattern)
		wantErr bool
	}{
		{"valid", func(p *TravelPattern) {}, false},
		{"missing name", func(p *TravelPattern) { p.Name = "" }, true},
		{"missing origin zone", func(p *TravelPattern) { p.OriginZone = nil }, true},
		{"missing booking window", func(p *TravelPattern) { p.BookingWindow = nil }, true},
		{"no schedules", func(p *TravelPattern) { p.ServiceSchedules = nil }, true},
		{"no purposes", func(p *TravelPattern) { p.Purposes = nil }, true},
		{"no funding sources", func(p *TravelPattern) { p.FundingSources = []string{} }, true},
		{"degenerate window", func(p *TravelPattern) {
			p.ServiceSchedules[0].SubSchedules[0].EndTime = p.ServiceSchedules[0].SubSchedules[0].StartTime
		}, true},
		{"weekly without day", func(p *TravelPattern) {
			p.ServiceSchedules[0].SubSchedules[0].Day = nil
		}, true},
		{"reduced without date", func(p *TravelPattern) {
			p.ServiceSchedules[0].Type = ScheduleTypeReduced
		}, true},
		{"unknown schedule type", func(p *TravelPattern) {
			p.ServiceSchedules[0].Type = "monthly"
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPattern()
			tt.mutate(&p)
			err := v.Struct(p)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTravelPattern_Zones(t *testing.T) {
	p := validPattern()
	north := Point{Lat: 28.6, Lon: -81.4}
	south := Point{Lat: 28.4, Lon: -81.4}

	assert.True(t, p.ServesOrigin(north))
	assert.False(t, p.ServesOrigin(south))
	assert.True(t, p.ServesDestination(south))

	p.AllowReverseSequenceTrips = true
	assert.True(t, p.ServesOrigin(south))
	assert.True(t, p.ServesDestination(north))
}

func TestBookingWindow(t *testing.T) {
	w := &BookingWindow{MinimumDaysNotice: 1, MaximumDaysNotice: 7, MinimumNoticeCutoffHour: 15}

	morning := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)
	evening := time.Date(2024, 3, 4, 16, 0, 0, 0, time.UTC)

	assert.Equal(t, *datePtr(2024, 3, 5), w.EarliestBooking(morning))
	assert.Equal(t, *datePtr(2024, 3, 6), w.EarliestBooking(evening))
	assert.Equal(t, *datePtr(2024, 3, 11), w.LatestBooking(morning))

	assert.True(t, w.Includes(morning, *datePtr(2024, 3, 5)))
	assert.True(t, w.Includes(morning, *datePtr(2024, 3, 11)))
	assert.False(t, w.Includes(morning, *datePtr(2024, 3, 4)))
	assert.False(t, w.Includes(morning, *datePtr(2024, 3, 12)))
}

func TestBookingWindow_ClockOutsideUTC(t *testing.T) {
	w := &BookingWindow{MinimumDaysNotice: 1, MaximumDaysNotice: 7}
	edt := time.FixedZone("EDT", -4*3600)

	// 19 октября по местным часам, в UTC уже тоже 19-е
	morning := time.Date(2026, 10, 19, 10, 0, 0, 0, edt)
	assert.Equal(t, *datePtr(2026, 10, 20), w.EarliestBooking(morning))
	assert.Equal(t, *datePtr(2026, 10, 26), w.LatestBooking(morning))
	assert.True(t, w.Includes(morning, *datePtr(2026, 10, 20)))
	assert.False(t, w.Includes(morning, *datePtr(2026, 10, 19)))

	// 22:00 местного = 02:00 UTC следующего дня; дата берется по часам клиента
	late := time.Date(2026, 10, 19, 22, 0, 0, 0, edt)
	assert.Equal(t, *datePtr(2026, 10, 20), w.EarliestBooking(late))
	assert.True(t, w.Includes(late, *datePtr(2026, 10, 20)))
	assert.True(t, w.Includes(late, time.Date(2026, 10, 20, 0, 0, 0, 0, edt)))
}

func TestCalendar_ClipZonedBounds(t *testing.T) {
	cal := Calendar{
		{Date: *datePtr(2026, 10, 20)},
		{Date: *datePtr(2026, 10, 21)},
		{Date: *datePtr(2026, 10, 22)},
		{Date: *datePtr(2026, 10, 23)},
	}
	pst := time.FixedZone("PST", -8*3600)
	from := time.Date(2026, 10, 21, 0, 0, 0, 0, pst)
	until := time.Date(2026, 10, 22, 23, 30, 0, 0, pst)

	clipped := cal.Clip(&from, &until)
	require.Len(t, clipped, 2)
	assert.Equal(t, *datePtr(2026, 10, 21), clipped[0].Date)
	assert.Equal(t, *datePtr(2026, 10, 22), clipped[1].Date)

	assert.Len(t, cal.Clip(nil, nil), 4)
}

func TestServiceSchedule_ActiveOn(t *testing.T) {
	s := ServiceSchedule{StartDate: datePtr(2024, 3, 1), EndDate: datePtr(2024, 3, 31)}

	assert.True(t, s.ActiveOn(*datePtr(2024, 3, 1)))
	assert.True(t, s.ActiveOn(time.Date(2024, 3, 31, 23, 0, 0, 0, time.UTC)))
	assert.False(t, s.ActiveOn(*datePtr(2024, 2, 29)))
	assert.False(t, s.ActiveOn(*datePtr(2024, 4, 1)))

	open := ServiceSchedule{}
	assert.True(t, open.ActiveOn(*datePtr(1999, 1, 1)))
}

func TestSubSchedule(t *testing.T) {
	sub := SubSchedule{Day: weekdayPtr(time.Monday), StartTime: 9 * 3600, EndTime: 10 * 3600}

	assert.True(t, sub.OnWeekday(*datePtr(2024, 3, 4)))
	assert.False(t, sub.OnWeekday(*datePtr(2024, 3, 5)))
	assert.False(t, sub.OnDate(*datePtr(2024, 3, 4)))
	assert.True(t, sub.Fits(9*3600, 10*3600))
	assert.False(t, sub.Fits(8*3600, 10*3600))
}

func TestValidFundingCodes(t *testing.T) {
	sources := []FundingSource{
		{Code: "ADA", AllowedPurposes: []string{"medical", "grocery"}},
		{Code: "TD", AllowedPurposes: []string{"work"}},
	}

	codes := ValidFundingCodes(sources, "medical")
	require.Len(t, codes, 1)
	assert.Equal(t, "ADA", codes[0])
	assert.Empty(t, ValidFundingCodes(sources, "school"))
}

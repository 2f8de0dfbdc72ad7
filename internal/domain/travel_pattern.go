package domain

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// ScheduleType - вид расписания travel pattern
type ScheduleType string

const (
	ScheduleTypeWeekly  ScheduleType = "weekly"
	ScheduleTypeExtra   ScheduleType = "extra"
	ScheduleTypeReduced ScheduleType = "reduced"
)

// OdZone - зона отправления или прибытия
type OdZone struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name" validate:"required"`
	Area *Area  `json:"area" db:"area" validate:"required"`
}

func (z *OdZone) Contains(p Point) bool {
	return z != nil && z.Area.Contains(p)
}

// BookingWindow - за сколько дней можно бронировать поездку
type BookingWindow struct {
	ID                int64  `json:"id" db:"id"`
	Name              string `json:"name" db:"name"`
	MinimumDaysNotice int    `json:"minimum_days_notice" db:"minimum_days_notice" validate:"gte=0"`
	MaximumDaysNotice int    `json:"maximum_days_notice" db:"maximum_days_notice" validate:"gtefield=MinimumDaysNotice"`
	// MinimumNoticeCutoffHour - после этого часа текущий день не считается днем уведомления
	MinimumNoticeCutoffHour int `json:"minimum_notice_cutoff_hour" db:"minimum_notice_cutoff_hour" validate:"gte=0,lte=24"`
}

// EarliestBooking - первая дата, на которую можно забронировать поездку сейчас
func (w *BookingWindow) EarliestBooking(now time.Time) time.Time {
	days := w.MinimumDaysNotice
	if w.MinimumNoticeCutoffHour > 0 && now.Hour() >= w.MinimumNoticeCutoffHour {
		days++
	}
	return DateOf(now).AddDate(0, 0, days)
}

// LatestBooking - последняя дата, на которую можно забронировать поездку сейчас
func (w *BookingWindow) LatestBooking(now time.Time) time.Time {
	return DateOf(now).AddDate(0, 0, w.MaximumDaysNotice)
}

// Includes - дата внутри окна бронирования (включительно)
func (w *BookingWindow) Includes(now, date time.Time) bool {
	d := DateOf(date)
	return !d.Before(w.EarliestBooking(now)) && !d.After(w.LatestBooking(now))
}

// SubSchedule - конкретное окно времени. Day для weekly, CalendarDate для extra/reduced.
type SubSchedule struct {
	ID           int64         `json:"id" db:"id"`
	Day          *time.Weekday `json:"day,omitempty" db:"day"`
	CalendarDate *time.Time    `json:"calendar_date,omitempty" db:"calendar_date"`
	StartTime    int           `json:"start_time" db:"start_time" validate:"gte=0,lte=86400"`
	EndTime      int           `json:"end_time" db:"end_time" validate:"gtfield=StartTime,lte=86400"`
}

// OnDate - сегмент привязан к этой календарной дате
func (s *SubSchedule) OnDate(date time.Time) bool {
	return s.CalendarDate != nil && SameDate(*s.CalendarDate, date)
}

// OnWeekday - сегмент привязан к дню недели этой даты
func (s *SubSchedule) OnWeekday(date time.Time) bool {
	return s.Day != nil && *s.Day == date.Weekday()
}

// Fits - окно [start, end] целиком внутри окна сегмента
func (s *SubSchedule) Fits(start, end int) bool {
	return s.StartTime <= start && s.EndTime >= end
}

type ServiceSchedule struct {
	ID           int64         `json:"id" db:"id"`
	Name         string        `json:"name" db:"name"`
	Type         ScheduleType  `json:"type" db:"type" validate:"required,oneof=weekly extra reduced"`
	StartDate    *time.Time    `json:"start_date,omitempty" db:"start_date"`
	EndDate      *time.Time    `json:"end_date,omitempty" db:"end_date"`
	SubSchedules []SubSchedule `json:"sub_schedules" validate:"min=1,dive"`
}

// ActiveOn - дата внутри необязательных границ расписания (включительно)
func (s *ServiceSchedule) ActiveOn(date time.Time) bool {
	d := DateOf(date)
	if s.StartDate != nil && d.Before(DateOf(*s.StartDate)) {
		return false
	}
	if s.EndDate != nil && d.After(DateOf(*s.EndDate)) {
		return false
	}
	return true
}

type TravelPattern struct {
	ID                        int64             `json:"id" db:"id"`
	AgencyID                  int64             `json:"agency_id" db:"agency_id" validate:"required"`
	Name                      string            `json:"name" db:"name" validate:"required,max=255"`
	Description               string            `json:"description,omitempty" db:"description"`
	OriginZone                *OdZone           `json:"origin_zone" validate:"required"`
	DestinationZone           *OdZone           `json:"destination_zone" validate:"required"`
	AllowReverseSequenceTrips bool              `json:"allow_reverse_sequence_trips" db:"allow_reverse_sequence_trips"`
	BookingWindow             *BookingWindow    `json:"booking_window" validate:"required"`
	ServiceSchedules          []ServiceSchedule `json:"service_schedules" validate:"min=1,dive"`
	Purposes                  []string          `json:"purposes" db:"purposes" validate:"min=1,dive,required"`
	FundingSources            []string          `json:"funding_sources" db:"funding_sources" validate:"min=1,dive,required"`
}

// ServesOrigin - начало поездки в зоне отправления, либо, если разрешен обратный порядок, в зоне прибытия
func (p *TravelPattern) ServesOrigin(pt Point) bool {
	return p.OriginZone.Contains(pt) || (p.AllowReverseSequenceTrips && p.DestinationZone.Contains(pt))
}

func (p *TravelPattern) ServesDestination(pt Point) bool {
	return p.DestinationZone.Contains(pt) || (p.AllowReverseSequenceTrips && p.OriginZone.Contains(pt))
}

func (p *TravelPattern) HasPurpose(purpose string) bool {
	return contains(p.Purposes, purpose)
}

// SchedulesOf возвращает расписания заданного вида
func (p *TravelPattern) SchedulesOf(t ScheduleType) []ServiceSchedule {
	var result []ServiceSchedule
	for _, s := range p.ServiceSchedules {
		if s.Type == t {
			result = append(result, s)
		}
	}
	return result
}

// ServiceScheduleStructLevel проверяет, что у weekly сегментов есть день недели, а у extra/reduced - дата
func ServiceScheduleStructLevel(sl validator.StructLevel) {
	s := sl.Current().Interface().(ServiceSchedule)
	for _, sub := range s.SubSchedules {
		switch s.Type {
		case ScheduleTypeWeekly:
			if sub.Day == nil {
				sl.ReportError(s.SubSchedules, "SubSchedules", "SubSchedules", "weekday_required", "")
				return
			}
		case ScheduleTypeExtra, ScheduleTypeReduced:
			if sub.CalendarDate == nil {
				sl.ReportError(s.SubSchedules, "SubSchedules", "SubSchedules", "calendar_date_required", "")
				return
			}
		}
	}
}

// DateOf - календарная дата t (в ее часовом поясе) как полночь UTC.
// Все сравнения дат идут по этим значениям, пояс исходного времени не важен.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

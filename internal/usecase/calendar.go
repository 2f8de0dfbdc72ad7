package usecase

import (
	"time"

	"github.com/trip-planner/internal/domain"
)

// ResolveCalendar строит календарь на каждую дату [from, to] включительно.
// Reduced расписание на дату полностью заменяет weekly и extra.
// Иначе окно - [min start, max end] по всем подходящим weekly и extra сегментам.
func ResolveCalendar(pattern *domain.TravelPattern, from, to time.Time) domain.Calendar {
	from = domain.DateOf(from)
	to = domain.DateOf(to)
	if to.Before(from) {
		return domain.Calendar{}
	}

	var calendar domain.Calendar
	for date := from; !date.After(to); date = date.AddDate(0, 0, 1) {
		calendar = append(calendar, resolveDay(pattern, date))
	}
	return calendar
}

func resolveDay(pattern *domain.TravelPattern, date time.Time) domain.CalendarDay {
	day := domain.CalendarDay{Date: date}

	reduced, overridden := reducedWindow(pattern, date)
	if overridden {
		start, end := reduced.StartTime, reduced.EndTime
		day.StartTime, day.EndTime = &start, &end
		return day
	}

	for _, sub := range regularWindows(pattern, date) {
		start, end := sub.StartTime, sub.EndTime
		if day.StartTime == nil || start < *day.StartTime {
			day.StartTime = &start
		}
		if day.EndTime == nil || end > *day.EndTime {
			day.EndTime = &end
		}
	}
	return day
}

// ServiceWindowsFor возвращает сегменты, действующие на дату, с учетом приоритета reduced
func ServiceWindowsFor(pattern *domain.TravelPattern, date time.Time) []domain.SubSchedule {
	if reduced, ok := reducedWindow(pattern, date); ok {
		return []domain.SubSchedule{reduced}
	}
	return regularWindows(pattern, date)
}

// RunsAt - окно [start, end] (секунды от полуночи) целиком внутри одного действующего сегмента
func RunsAt(pattern *domain.TravelPattern, date time.Time, start, end int) bool {
	for _, sub := range ServiceWindowsFor(pattern, date) {
		if sub.Fits(start, end) {
			return true
		}
	}
	return false
}

func reducedWindow(pattern *domain.TravelPattern, date time.Time) (domain.SubSchedule, bool) {
	for _, sch := range pattern.SchedulesOf(domain.ScheduleTypeReduced) {
		if !sch.ActiveOn(date) {
			continue
		}
		for _, sub := range sch.SubSchedules {
			if sub.OnDate(date) {
				return sub, true
			}
		}
	}
	return domain.SubSchedule{}, false
}

func regularWindows(pattern *domain.TravelPattern, date time.Time) []domain.SubSchedule {
	var result []domain.SubSchedule
	for _, sch := range pattern.ServiceSchedules {
		if !sch.ActiveOn(date) {
			continue
		}
		for _, sub := range sch.SubSchedules {
			switch sch.Type {
			case domain.ScheduleTypeWeekly:
				if sub.OnWeekday(date) {
					result = append(result, sub)
				}
			case domain.ScheduleTypeExtra:
				if sub.OnDate(date) {
					result = append(result, sub)
				}
			}
		}
	}
	return result
}

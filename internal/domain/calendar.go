package domain

import (
	"encoding/json"
	"time"
)

// CalendarDay - окно бронирования на дату. nil StartTime/EndTime - окна нет.
type CalendarDay struct {
	Date      time.Time
	StartTime *int
	EndTime   *int
}

// HasWindow - у даты есть окно (возможно нулевой длины)
func (d CalendarDay) HasWindow() bool {
	return d.StartTime != nil && d.EndTime != nil
}

// Bookable - окно неотрицательное и невырожденное
func (d CalendarDay) Bookable() bool {
	return d.HasWindow() && *d.StartTime >= 0 && *d.EndTime > *d.StartTime
}

func (d CalendarDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Date      string `json:"date"`
		StartTime *int   `json:"start_time"`
		EndTime   *int   `json:"end_time"`
	}{
		Date:      d.Date.Format("2006-01-02"),
		StartTime: d.StartTime,
		EndTime:   d.EndTime,
	})
}

// Calendar - дни по возрастанию даты
type Calendar []CalendarDay

func (c Calendar) HasBookableDay() bool {
	for _, d := range c {
		if d.Bookable() {
			return true
		}
	}
	return false
}

// Clip оставляет дни внутри [from, until]; nil граница не ограничивает
func (c Calendar) Clip(from, until *time.Time) Calendar {
	result := make(Calendar, 0, len(c))
	for _, d := range c {
		if from != nil && d.Date.Before(DateOf(*from)) {
			continue
		}
		if until != nil && d.Date.After(DateOf(*until)) {
			continue
		}
		result = append(result, d)
	}
	return result
}

package postgres

import (
	"database/sql"
	stderrors "errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/trip-planner/internal/domain"
)

// uniqueViolation - SQLSTATE нарушения уникального индекса
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return stderrors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func tripTypesToStrings(types []domain.TripType) []string {
	result := make([]string, len(types))
	for i, t := range types {
		result[i] = string(t)
	}
	return result
}

func stringsToTripTypes(raw []string) []domain.TripType {
	result := make([]domain.TripType, len(raw))
	for i, s := range raw {
		result[i] = domain.TripType(s)
	}
	return result
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

func nullWeekday(d *time.Weekday) sql.NullInt16 {
	if d == nil {
		return sql.NullInt16{}
	}
	return sql.NullInt16{Int16: int16(*d), Valid: true}
}

func weekdayPtr(v sql.NullInt16) *time.Weekday {
	if !v.Valid {
		return nil
	}
	d := time.Weekday(v.Int16)
	return &d
}

package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/trip-planner/internal/domain"
	"github.com/trip-planner/internal/domain/repository"
	"github.com/trip-planner/internal/pkg/errors"
	"go.uber.org/zap"
)

type travelPatternRepository struct {
	db     *DB
	logger *zap.Logger
}

func NewTravelPatternRepository(db *DB) repository.TravelPatternRepository {
	return &travelPatternRepository{
		db:     db,
		logger: db.logger,
	}
}

type travelPatternRow struct {
	ID                        int64          `db:"id"`
	AgencyID                  int64          `db:"agency_id"`
	Name                      string         `db:"name"`
	Description               string         `db:"description"`
	AllowReverseSequenceTrips bool           `db:"allow_reverse_sequence_trips"`
	Purposes                  pq.StringArray `db:"purposes"`
	FundingSources            pq.StringArray `db:"funding_sources"`

	OriginZoneID   int64        `db:"origin_zone_id"`
	OriginZoneName string       `db:"origin_zone_name"`
	OriginZoneArea *domain.Area `db:"origin_zone_area"`

	DestinationZoneID   int64        `db:"destination_zone_id"`
	DestinationZoneName string       `db:"destination_zone_name"`
	DestinationZoneArea *domain.Area `db:"destination_zone_area"`

	BookingWindowID         int64  `db:"booking_window_id"`
	BookingWindowName       string `db:"booking_window_name"`
	MinimumDaysNotice       int    `db:"minimum_days_notice"`
	MaximumDaysNotice       int    `db:"maximum_days_notice"`
	MinimumNoticeCutoffHour int    `db:"minimum_notice_cutoff_hour"`
}

type scheduleRow struct {
	TravelPatternID int64               `db:"travel_pattern_id"`
	ID              int64               `db:"id"`
	Name            string              `db:"name"`
	Type            domain.ScheduleType `db:"type"`
	StartDate       sql.NullTime        `db:"start_date"`
	EndDate         sql.NullTime        `db:"end_date"`
}

type subScheduleRow struct {
	ID                int64         `db:"id"`
	ServiceScheduleID int64         `db:"service_schedule_id"`
	Day               sql.NullInt16 `db:"day"`
	CalendarDate      sql.NullTime  `db:"calendar_date"`
	StartTime         int           `db:"start_time"`
	EndTime           int           `db:"end_time"`
}

func (r *travelPatternRepository) ListByAgency(ctx context.Context, agencyID int64) ([]domain.TravelPattern, error) {
	query := `
		SELECT
			tp.id, tp.agency_id, tp.name, tp.description,
			tp.allow_reverse_sequence_trips, tp.purposes, tp.funding_sources,
			oz.id AS origin_zone_id, oz.name AS origin_zone_name, oz.area AS origin_zone_area,
			dz.id AS destination_zone_id, dz.name AS destination_zone_name, dz.area AS destination_zone_area,
			bw.id AS booking_window_id, bw.name AS booking_window_name,
			bw.minimum_days_notice, bw.maximum_days_notice, bw.minimum_notice_cutoff_hour
		FROM travel_patterns tp
		JOIN od_zones oz ON oz.id = tp.origin_zone_id
		JOIN od_zones dz ON dz.id = tp.destination_zone_id
		JOIN booking_windows bw ON bw.id = tp.booking_window_id
		WHERE tp.agency_id = $1
		ORDER BY tp.id
	`

	var rows []travelPatternRow
	if err := r.db.SelectContext(ctx, &rows, query, agencyID); err != nil {
		r.logger.Error("Failed to list travel patterns", zap.Int64("agency_id", agencyID), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	if len(rows) == 0 {
		return []domain.TravelPattern{}, nil
	}

	patterns := make([]domain.TravelPattern, len(rows))
	index := make(map[int64]int, len(rows))
	ids := make([]int64, len(rows))
	for i, row := range rows {
		patterns[i] = row.toDomain()
		index[row.ID] = i
		ids[i] = row.ID
	}

	schedules, err := r.loadSchedules(ctx, ids)
	if err != nil {
		r.logger.Error("Failed to load service schedules", zap.Int64("agency_id", agencyID), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	for _, s := range schedules {
		i := index[s.patternID]
		patterns[i].ServiceSchedules = append(patterns[i].ServiceSchedules, s.schedule)
	}

	return patterns, nil
}

type patternSchedule struct {
	patternID int64
	schedule  domain.ServiceSchedule
}

func (r *travelPatternRepository) loadSchedules(ctx context.Context, patternIDs []int64) ([]patternSchedule, error) {
	var rows []scheduleRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT tpss.travel_pattern_id, ss.id, ss.name, ss.type, ss.start_date, ss.end_date
		FROM travel_pattern_service_schedules tpss
		JOIN service_schedules ss ON ss.id = tpss.service_schedule_id
		WHERE tpss.travel_pattern_id = ANY($1)
		ORDER BY tpss.travel_pattern_id, tpss.position, ss.id
	`, pq.Array(patternIDs))
	if err != nil {
		return nil, fmt.Errorf("select schedules: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	scheduleIDs := make([]int64, 0, len(rows))
	for _, row := range rows {
		scheduleIDs = append(scheduleIDs, row.ID)
	}

	var subs []subScheduleRow
	err = r.db.SelectContext(ctx, &subs, `
		SELECT id, service_schedule_id, day, calendar_date, start_time, end_time
		FROM service_sub_schedules
		WHERE service_schedule_id = ANY($1)
		ORDER BY service_schedule_id, id
	`, pq.Array(scheduleIDs))
	if err != nil {
		return nil, fmt.Errorf("select sub schedules: %w", err)
	}

	bySchedule := make(map[int64][]domain.SubSchedule)
	for _, s := range subs {
		bySchedule[s.ServiceScheduleID] = append(bySchedule[s.ServiceScheduleID], domain.SubSchedule{
			ID:           s.ID,
			Day:          weekdayPtr(s.Day),
			CalendarDate: timePtr(s.CalendarDate),
			StartTime:    s.StartTime,
			EndTime:      s.EndTime,
		})
	}

	result := make([]patternSchedule, 0, len(rows))
	for _, row := range rows {
		result = append(result, patternSchedule{
			patternID: row.TravelPatternID,
			schedule: domain.ServiceSchedule{
				ID:           row.ID,
				Name:         row.Name,
				Type:         row.Type,
				StartDate:    timePtr(row.StartDate),
				EndDate:      timePtr(row.EndDate),
				SubSchedules: bySchedule[row.ID],
			},
		})
	}
	return result, nil
}

func (r *travelPatternRepository) ExistsByName(ctx context.Context, agencyID int64, name string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `
		SELECT EXISTS (
			SELECT 1 FROM travel_patterns
			WHERE agency_id = $1 AND lower(name) = lower($2)
		)
	`, agencyID, name)
	if err != nil {
		r.logger.Error("Failed to check travel pattern name", zap.String("name", name), zap.Error(err))
		return false, errors.ErrDatabaseError
	}
	return exists, nil
}

// Create сохраняет travel pattern со всеми связями в одной транзакции.
// Зоны, окно бронирования и расписания с ненулевым ID переиспользуются.
func (r *travelPatternRepository) Create(ctx context.Context, p *domain.TravelPattern) error {
	err := r.db.withTx(ctx, func(tx *sqlx.Tx) error {
		for _, zone := range []*domain.OdZone{p.OriginZone, p.DestinationZone} {
			if zone.ID != 0 {
				continue
			}
			if err := tx.GetContext(ctx, &zone.ID, `
				INSERT INTO od_zones (agency_id, name, area) VALUES ($1, $2, $3) RETURNING id
			`, p.AgencyID, zone.Name, zone.Area); err != nil {
				return fmt.Errorf("insert zone %q: %w", zone.Name, err)
			}
		}

		if w := p.BookingWindow; w.ID == 0 {
			if err := tx.GetContext(ctx, &w.ID, `
				INSERT INTO booking_windows (
					agency_id, name, minimum_days_notice, maximum_days_notice, minimum_notice_cutoff_hour
				) VALUES ($1, $2, $3, $4, $5) RETURNING id
			`, p.AgencyID, w.Name, w.MinimumDaysNotice, w.MaximumDaysNotice, w.MinimumNoticeCutoffHour); err != nil {
				return fmt.Errorf("insert booking window: %w", err)
			}
		}

		for i := range p.ServiceSchedules {
			if err := insertSchedule(ctx, tx, p.AgencyID, &p.ServiceSchedules[i]); err != nil {
				return err
			}
		}

		if err := tx.GetContext(ctx, &p.ID, `
			INSERT INTO travel_patterns (
				agency_id, name, description, origin_zone_id, destination_zone_id,
				allow_reverse_sequence_trips, booking_window_id, purposes, funding_sources
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id
		`,
			p.AgencyID, p.Name, p.Description, p.OriginZone.ID, p.DestinationZone.ID,
			p.AllowReverseSequenceTrips, p.BookingWindow.ID, pq.Array(p.Purposes), pq.Array(p.FundingSources),
		); err != nil {
			return fmt.Errorf("insert travel pattern: %w", err)
		}

		for i, s := range p.ServiceSchedules {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO travel_pattern_service_schedules (travel_pattern_id, service_schedule_id, position)
				VALUES ($1, $2, $3)
			`, p.ID, s.ID, i); err != nil {
				return fmt.Errorf("link schedule %d: %w", s.ID, err)
			}
		}
		return nil
	})

	if isUniqueViolation(err) {
		return errors.ErrTravelPatternNameTaken
	}
	if err != nil {
		r.logger.Error("Failed to create travel pattern", zap.String("name", p.Name), zap.Error(err))
		return errors.ErrDatabaseError
	}
	return nil
}

func insertSchedule(ctx context.Context, tx *sqlx.Tx, agencyID int64, s *domain.ServiceSchedule) error {
	if s.ID != 0 {
		return nil
	}
	if err := tx.GetContext(ctx, &s.ID, `
		INSERT INTO service_schedules (agency_id, name, type, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5) RETURNING id
	`, agencyID, s.Name, string(s.Type), nullTime(s.StartDate), nullTime(s.EndDate)); err != nil {
		return fmt.Errorf("insert schedule %q: %w", s.Name, err)
	}

	for i := range s.SubSchedules {
		sub := &s.SubSchedules[i]
		if err := tx.GetContext(ctx, &sub.ID, `
			INSERT INTO service_sub_schedules (service_schedule_id, day, calendar_date, start_time, end_time)
			VALUES ($1, $2, $3, $4, $5) RETURNING id
		`, s.ID, nullWeekday(sub.Day), nullTime(sub.CalendarDate), sub.StartTime, sub.EndTime); err != nil {
			return fmt.Errorf("insert sub schedule: %w", err)
		}
	}
	return nil
}

func (row travelPatternRow) toDomain() domain.TravelPattern {
	return domain.TravelPattern{
		ID:                        row.ID,
		AgencyID:                  row.AgencyID,
		Name:                      row.Name,
		Description:               row.Description,
		AllowReverseSequenceTrips: row.AllowReverseSequenceTrips,
		Purposes:                  row.Purposes,
		FundingSources:            row.FundingSources,
		OriginZone: &domain.OdZone{
			ID:   row.OriginZoneID,
			Name: row.OriginZoneName,
			Area: row.OriginZoneArea,
		},
		DestinationZone: &domain.OdZone{
			ID:   row.DestinationZoneID,
			Name: row.DestinationZoneName,
			Area: row.DestinationZoneArea,
		},
		BookingWindow: &domain.BookingWindow{
			ID:                      row.BookingWindowID,
			Name:                    row.BookingWindowName,
			MinimumDaysNotice:       row.MinimumDaysNotice,
			MaximumDaysNotice:       row.MaximumDaysNotice,
			MinimumNoticeCutoffHour: row.MinimumNoticeCutoffHour,
		},
	}
}

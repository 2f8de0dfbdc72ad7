package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/trip-planner/internal/domain"
	"github.com/trip-planner/internal/domain/repository"
	"github.com/trip-planner/internal/pkg/errors"
	"go.uber.org/zap"
)

type serviceRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewServiceRepository(db *DB) repository.ServiceRepository {
	return &serviceRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

type serviceRow struct {
	domain.Service
	Accommodations pq.StringArray `db:"accommodations"`
	Eligibilities  pq.StringArray `db:"eligibilities"`
	Purposes       pq.StringArray `db:"purposes"`
	FundingSources pq.StringArray `db:"funding_sources"`
}

type serviceHoursRow struct {
	ServiceID int64 `db:"service_id"`
	domain.Schedule
}

func (r *serviceRepository) ListPublished(ctx context.Context, types []domain.TripType) ([]domain.Service, error) {
	query := `
		SELECT
			id, name, type, gtfs_agency_id, logo_url, url,
			start_or_end_area, trip_within_area, fare,
			accommodations, eligibilities, purposes, funding_sources, archived
		FROM services
		WHERE NOT archived
		  AND type = ANY($1)
		ORDER BY id
	`

	var rows []serviceRow
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(tripTypesToStrings(types))); err != nil {
		r.logger.Error("Failed to list services", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	services := make([]domain.Service, len(rows))
	ids := make([]int64, len(rows))
	index := make(map[int64]int, len(rows))
	for i, row := range rows {
		svc := row.Service
		svc.Accommodations = row.Accommodations
		svc.Eligibilities = row.Eligibilities
		svc.Purposes = row.Purposes
		svc.FundingSources = row.FundingSources
		services[i] = svc
		ids[i] = svc.ID
		index[svc.ID] = i
	}

	if len(ids) == 0 {
		return services, nil
	}

	var hours []serviceHoursRow
	err := r.db.SelectContext(ctx, &hours, `
		SELECT service_id, day, start_time, end_time
		FROM service_hours
		WHERE service_id = ANY($1)
		ORDER BY service_id, day, start_time
	`, pq.Array(ids))
	if err != nil {
		r.logger.Error("Failed to load service hours", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	for _, h := range hours {
		i := index[h.ServiceID]
		services[i].Schedules = append(services[i].Schedules, h.Schedule)
	}

	r.logger.Debug("Services loaded",
		zap.Int("count", len(services)),
		zap.Int("schedules", len(hours)))

	return services, nil
}

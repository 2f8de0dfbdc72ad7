package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/trip-planner/internal/domain"
	"github.com/trip-planner/internal/domain/repository"
	"github.com/trip-planner/internal/pkg/errors"
	"go.uber.org/zap"
)

type tripRepository struct {
	db     *DB
	logger *zap.Logger
}

func NewTripRepository(db *DB) repository.TripRepository {
	return &tripRepository{
		db:     db,
		logger: db.logger,
	}
}

type tripRow struct {
	ID             uuid.UUID      `db:"id"`
	Traveler       []byte         `db:"traveler"`
	OriginLat      float64        `db:"origin_lat"`
	OriginLon      float64        `db:"origin_lon"`
	DestinationLat float64        `db:"destination_lat"`
	DestinationLon float64        `db:"destination_lon"`
	TripTime       time.Time      `db:"trip_time"`
	ArriveBy       bool           `db:"arrive_by"`
	TripTypes      pq.StringArray `db:"trip_types"`
	Purpose        sql.NullString `db:"purpose"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

type itineraryRow struct {
	domain.Itinerary
	Cost sql.NullFloat64 `db:"cost"`
	Legs []byte          `db:"legs"`
}

// Save сохраняет поездку и полностью заменяет набор ее маршрутов
func (r *tripRepository) Save(ctx context.Context, trip *domain.Trip) error {
	var traveler interface{}
	if trip.Traveler != nil {
		data, err := json.Marshal(trip.Traveler)
		if err != nil {
			return fmt.Errorf("marshal traveler: %w", err)
		}
		traveler = string(data)
	}

	var purpose sql.NullString
	if trip.HasPurpose() {
		purpose = sql.NullString{String: *trip.Purpose, Valid: true}
	}

	err := r.db.withTx(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO trips (
				id, traveler, origin_lat, origin_lon, destination_lat, destination_lon,
				trip_time, arrive_by, trip_types, purpose
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			ON CONFLICT (id) DO UPDATE SET
				traveler = EXCLUDED.traveler,
				origin_lat = EXCLUDED.origin_lat,
				origin_lon = EXCLUDED.origin_lon,
				destination_lat = EXCLUDED.destination_lat,
				destination_lon = EXCLUDED.destination_lon,
				trip_time = EXCLUDED.trip_time,
				arrive_by = EXCLUDED.arrive_by,
				trip_types = EXCLUDED.trip_types,
				purpose = EXCLUDED.purpose,
				updated_at = NOW()
		`,
			trip.ID, traveler,
			trip.Origin.Lat, trip.Origin.Lon, trip.Destination.Lat, trip.Destination.Lon,
			trip.TripTime, trip.ArriveBy, pq.Array(tripTypesToStrings(trip.TripTypes)), purpose,
		)
		if err != nil {
			return fmt.Errorf("upsert trip: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM itineraries WHERE trip_id = $1`, trip.ID); err != nil {
			return fmt.Errorf("delete itineraries: %w", err)
		}

		for i := range trip.Itineraries {
			if err := insertItinerary(ctx, tx, trip.ID, i, &trip.Itineraries[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		r.logger.Error("Failed to save trip", zap.String("trip_id", trip.ID.String()), zap.Error(err))
		return errors.ErrDatabaseError
	}

	r.logger.Debug("Trip saved",
		zap.String("trip_id", trip.ID.String()),
		zap.Int("itineraries", len(trip.Itineraries)))
	return nil
}

func insertItinerary(ctx context.Context, tx *sqlx.Tx, tripID uuid.UUID, position int, itin *domain.Itinerary) error {
	if itin.ID == uuid.Nil {
		itin.ID = uuid.New()
	}
	itin.TripID = tripID

	legs := itin.Legs
	if legs == nil {
		legs = []domain.Leg{}
	}
	legsJSON, err := json.Marshal(legs)
	if err != nil {
		return fmt.Errorf("marshal legs: %w", err)
	}

	var cost sql.NullFloat64
	if itin.Cost != nil {
		cost = sql.NullFloat64{Float64: *itin.Cost, Valid: true}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO itineraries (
			id, trip_id, position, trip_type, start_time, end_time,
			duration, transit_time, walk_time, wait_time, walk_distance,
			cost, legs, service_id, error
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`,
		itin.ID, tripID, position, string(itin.TripType), itin.StartTime, itin.EndTime,
		itin.Duration, itin.TransitTime, itin.WalkTime, itin.WaitTime, itin.WalkDistance,
		cost, string(legsJSON), itin.ServiceID, itin.Error,
	)
	if err != nil {
		return fmt.Errorf("insert itinerary %d: %w", position, err)
	}
	return nil
}

func (r *tripRepository) GetByID(ctx context.Context, id string) (*domain.Trip, error) {
	var row tripRow
	err := r.db.GetContext(ctx, &row, `
		SELECT
			id, traveler, origin_lat, origin_lon, destination_lat, destination_lon,
			trip_time, arrive_by, trip_types, purpose, created_at, updated_at
		FROM trips
		WHERE id = $1
	`, id)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.ErrTripNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get trip", zap.String("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	trip := &domain.Trip{
		ID:          row.ID,
		Origin:      domain.Point{Lat: row.OriginLat, Lon: row.OriginLon},
		Destination: domain.Point{Lat: row.DestinationLat, Lon: row.DestinationLon},
		TripTime:    row.TripTime,
		ArriveBy:    row.ArriveBy,
		TripTypes:   stringsToTripTypes(row.TripTypes),
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
	if row.Purpose.Valid {
		purpose := row.Purpose.String
		trip.Purpose = &purpose
	}
	if len(row.Traveler) > 0 {
		var traveler domain.Traveler
		if err := json.Unmarshal(row.Traveler, &traveler); err != nil {
			r.logger.Warn("Invalid traveler payload", zap.String("id", id), zap.Error(err))
		} else {
			trip.Traveler = &traveler
		}
	}

	var itineraries []itineraryRow
	err = r.db.SelectContext(ctx, &itineraries, `
		SELECT
			id, trip_id, trip_type, start_time, end_time,
			duration, transit_time, walk_time, wait_time, walk_distance,
			cost, legs, service_id, error
		FROM itineraries
		WHERE trip_id = $1
		ORDER BY position
	`, id)
	if err != nil {
		r.logger.Error("Failed to get itineraries", zap.String("trip_id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	trip.Itineraries = make([]domain.Itinerary, 0, len(itineraries))
	for _, ir := range itineraries {
		itin := ir.Itinerary
		if ir.Cost.Valid {
			cost := ir.Cost.Float64
			itin.Cost = &cost
		}
		if err := json.Unmarshal(ir.Legs, &itin.Legs); err != nil {
			r.logger.Warn("Invalid legs payload", zap.String("itinerary_id", itin.ID.String()), zap.Error(err))
		}
		trip.Itineraries = append(trip.Itineraries, itin)
	}

	return trip, nil
}

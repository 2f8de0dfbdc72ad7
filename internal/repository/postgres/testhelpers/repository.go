package testhelpers

import (
	"github.com/jmoiron/sqlx"
	"github.com/trip-planner/internal/domain/repository"
	"github.com/trip-planner/internal/repository/postgres"
	"go.uber.org/zap"
)

// NewDBForTest creates a postgres.DB with test database and logger
func NewDBForTest(db *sqlx.DB, logger *zap.Logger) *postgres.DB {
	return postgres.NewDBForTest(db, logger)
}

// NewServiceRepositoryForTest creates a service repository with test database and logger
func NewServiceRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.ServiceRepository {
	return postgres.NewServiceRepository(NewDBForTest(db, logger))
}

// NewTripRepositoryForTest creates a trip repository with test database and logger
func NewTripRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.TripRepository {
	return postgres.NewTripRepository(NewDBForTest(db, logger))
}

// NewTravelPatternRepositoryForTest creates a travel pattern repository with test database and logger
func NewTravelPatternRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.TravelPatternRepository {
	return postgres.NewTravelPatternRepository(NewDBForTest(db, logger))
}

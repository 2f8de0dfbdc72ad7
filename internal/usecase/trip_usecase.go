package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/trip-planner/internal/domain"
	"github.com/trip-planner/internal/domain/repository"
	"github.com/trip-planner/internal/pkg/errors"
	"github.com/trip-planner/internal/pkg/utils"
	"github.com/trip-planner/internal/usecase/dto"
	"go.uber.org/zap"
)

type TripUseCase struct {
	planner    *TripPlanner
	tripRepo   repository.TripRepository
	streamRepo repository.StreamRepository
	logger     *zap.Logger
}

func NewTripUseCase(
	planner *TripPlanner,
	tripRepo repository.TripRepository,
	streamRepo repository.StreamRepository,
	logger *zap.Logger,
) *TripUseCase {
	return &TripUseCase{
		planner:    planner,
		tripRepo:   tripRepo,
		streamRepo: streamRepo,
		logger:     logger,
	}
}

// Plan планирует поездку синхронно, либо ставит ее в очередь при req.Async
func (uc *TripUseCase) Plan(ctx context.Context, req dto.PlanTripRequest) (*dto.PlanTripResponse, error) {
	if !utils.ValidateCoordinates(req.Origin.Lat, req.Origin.Lon) ||
		!utils.ValidateCoordinates(req.Destination.Lat, req.Destination.Lon) {
		return nil, errors.ErrInvalidCoordinates
	}

	trip := req.Trip()
	trip.ID = uuid.New()

	if req.Async {
		return uc.enqueue(ctx, trip, req)
	}

	result, err := uc.planner.PlanTrip(ctx, trip, PlanOptions{
		OnlyFilters:    req.OnlyFilters,
		ExceptFilters:  req.ExceptFilters,
		FundingSources: req.FundingSources,
	})
	if err != nil {
		return nil, err
	}

	if len(result.Trip.Itineraries) == 0 {
		return nil, errors.ErrNoItineraries.WithDetails(map[string]interface{}{
			"trip_id": trip.ID.String(),
			"errors":  result.ErrorMessages(),
		})
	}

	return &dto.PlanTripResponse{
		TripID:      trip.ID,
		Status:      "planned",
		Itineraries: result.Trip.Itineraries,
		Errors:      result.ErrorMessages(),
	}, nil
}

func (uc *TripUseCase) enqueue(ctx context.Context, trip *domain.Trip, req dto.PlanTripRequest) (*dto.PlanTripResponse, error) {
	event := domain.TripPlanEvent{
		TripID:         trip.ID,
		Traveler:       trip.Traveler,
		Origin:         trip.Origin,
		Destination:    trip.Destination,
		TripTime:       trip.TripTime,
		ArriveBy:       trip.ArriveBy,
		TripTypes:      req.TripTypes,
		Purpose:        trip.Purpose,
		OnlyFilters:    req.OnlyFilters,
		ExceptFilters:  req.ExceptFilters,
		FundingSources: req.FundingSources,
	}

	if err := uc.streamRepo.PublishToStream(ctx, domain.StreamTripPlan, event); err != nil {
		uc.logger.Error("Failed to enqueue trip", zap.String("trip_id", trip.ID.String()), zap.Error(err))
		return nil, errors.ErrCacheError
	}

	return &dto.PlanTripResponse{TripID: trip.ID, Status: "queued"}, nil
}

func (uc *TripUseCase) GetTrip(ctx context.Context, id string) (*dto.TripResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{"id": "must be a UUID"})
	}

	trip, err := uc.tripRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &dto.TripResponse{Trip: trip}, nil
}

package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc/pool"
	"github.com/trip-planner/internal/domain"
	"github.com/trip-planner/internal/domain/repository"
	"github.com/trip-planner/internal/pkg/errors"
	"go.uber.org/zap"
)

// PlanOptions - параметры одного прогона планирования
type PlanOptions struct {
	// TripTypes переопределяет trip.TripTypes
	TripTypes     []domain.TripType
	OnlyFilters   []string
	ExceptFilters []string
	// FundingSources включает предикат funding_source; nil - не проверять
	FundingSources []string
}

// PlanResult - поездка с новым набором маршрутов и ошибки роутера по типам
type PlanResult struct {
	Trip   *domain.Trip
	Errors map[domain.TripType]error
}

// ErrorMessages - ошибки роутера в виде строк для ответа
func (r *PlanResult) ErrorMessages() map[string]string {
	if len(r.Errors) == 0 {
		return nil
	}
	result := make(map[string]string, len(r.Errors))
	for tt, err := range r.Errors {
		result[string(tt)] = err.Error()
	}
	return result
}

// TripPlanner: NARROW_SERVICES -> BUILD_ITINERARIES -> FILTER -> DONE
type TripPlanner struct {
	serviceRepo     repository.ServiceRepository
	tripRepo        repository.TripRepository
	routers         repository.RouterProvider
	fareFinder      domain.TaxiFareEstimator
	maxWalkDistance float64 // meters
	logger          *zap.Logger
}

func NewTripPlanner(
	serviceRepo repository.ServiceRepository,
	tripRepo repository.TripRepository,
	routers repository.RouterProvider,
	fareFinder domain.TaxiFareEstimator,
	maxWalkDistance float64,
	logger *zap.Logger,
) *TripPlanner {
	return &TripPlanner{
		serviceRepo:     serviceRepo,
		tripRepo:        tripRepo,
		routers:         routers,
		fareFinder:      fareFinder,
		maxWalkDistance: maxWalkDistance,
		logger:          logger,
	}
}

// PlanTrip заменяет маршруты поездки целиком и сохраняет ее.
// Ошибка роутера по одному типу не прерывает планирование остальных.
func (p *TripPlanner) PlanTrip(ctx context.Context, trip *domain.Trip, opts PlanOptions) (*PlanResult, error) {
	tripTypes := opts.TripTypes
	if len(tripTypes) == 0 {
		tripTypes = trip.TripTypes
	}
	tripTypes = knownTripTypes(tripTypes)
	if len(tripTypes) == 0 {
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"trip_types": "no supported trip types requested",
		})
	}
	if trip.ID == uuid.Nil {
		trip.ID = uuid.New()
	}
	trip.TripTypes = tripTypes

	// NARROW_SERVICES
	services, err := p.serviceRepo.ListPublished(ctx, tripTypes)
	if err != nil {
		p.logger.Error("Failed to load services", zap.Error(err))
		return nil, err
	}
	available := FilterServices(trip, publishedOnly(services), AvailabilityOptions{
		Filters:        ResolveFilters(opts.OnlyFilters, opts.ExceptFilters),
		FundingSources: opts.FundingSources,
	})
	byType := ServicesByTripType(available)

	p.logger.Debug("Services narrowed",
		zap.String("trip_id", trip.ID.String()),
		zap.Int("loaded", len(services)),
		zap.Int("available", len(available)))

	// BUILD_ITINERARIES
	// роутеру нужны только сервисы, которые он сопоставляет с агентствами
	routed := make([]domain.Service, 0, len(byType[domain.TripTypeTransit])+len(byType[domain.TripTypeParatransit]))
	routed = append(routed, byType[domain.TripTypeTransit]...)
	routed = append(routed, byType[domain.TripTypeParatransit]...)
	router := p.routers.NewRouter(ctx, trip, tripTypes, routed)

	built := make([][]domain.Itinerary, len(tripTypes))
	workers := pool.New().WithMaxGoroutines(len(tripTypes))
	for i, tt := range tripTypes {
		workers.Go(func() {
			built[i] = p.buildMode(ctx, trip, tt, byType[tt], router)
		})
	}
	workers.Wait()

	var itineraries []domain.Itinerary
	for _, list := range built {
		itineraries = append(itineraries, list...)
	}

	// FILTER
	itineraries = p.filterItineraries(itineraries)

	// DONE
	for i := range itineraries {
		itineraries[i].ID = uuid.New()
		itineraries[i].TripID = trip.ID
	}
	trip.Itineraries = itineraries

	result := &PlanResult{Trip: trip, Errors: make(map[domain.TripType]error)}
	for _, tt := range tripTypes {
		if err := router.Errors(tt); err != nil {
			result.Errors[tt] = err
		}
	}

	if err := p.tripRepo.Save(ctx, trip); err != nil {
		p.logger.Error("Failed to save trip", zap.String("trip_id", trip.ID.String()), zap.Error(err))
		return nil, err
	}

	p.logger.Info("Trip planned",
		zap.String("trip_id", trip.ID.String()),
		zap.Int("itineraries", len(itineraries)),
		zap.Int("router_errors", len(result.Errors)))

	return result, nil
}

// buildMode собирает маршруты одного типа. Паника не выходит за пределы типа.
func (p *TripPlanner) buildMode(
	ctx context.Context,
	trip *domain.Trip,
	tripType domain.TripType,
	services []domain.Service,
	router repository.Router,
) (itineraries []domain.Itinerary) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("Panic while building itineraries",
				zap.String("trip_type", string(tripType)),
				zap.Any("panic", r))
			itineraries = nil
		}
	}()

	if tripType.DirectlyPriced() {
		for i := range services {
			if itin, ok := p.serviceItinerary(ctx, trip, tripType, &services[i], router); ok {
				itineraries = append(itineraries, itin)
			}
		}
	}

	if tripType.RouterBacked() {
		itineraries = append(itineraries, router.GetItineraries(tripType)...)
	}

	return itineraries
}

// serviceItinerary - маршрут сервиса с собственным тарифом, без участия роутера в цене
func (p *TripPlanner) serviceItinerary(
	ctx context.Context,
	trip *domain.Trip,
	tripType domain.TripType,
	svc *domain.Service,
	router repository.Router,
) (itin domain.Itinerary, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("Panic while pricing service",
				zap.Int64("service_id", svc.ID),
				zap.Any("panic", r))
			ok = false
		}
	}()

	fare := svc.Fare
	if fare.TripType == "" {
		fare.TripType = svc.Type
	}
	fc := domain.FareContext{Router: router, FareFinder: p.fareFinder}

	var cost *float64
	if amount, priced := fare.Compute(ctx, trip, fc); priced {
		cost = &amount
	}

	id := svc.ID
	duration := router.GetDuration(tripType)
	return domain.Itinerary{
		TripType:    tripType,
		Duration:    duration,
		TransitTime: duration,
		Cost:        cost,
		ServiceID:   &id,
	}, true
}

// filterItineraries убирает пешие маршруты длиннее допустимого
func (p *TripPlanner) filterItineraries(itineraries []domain.Itinerary) []domain.Itinerary {
	result := make([]domain.Itinerary, 0, len(itineraries))
	for _, itin := range itineraries {
		if itin.TripType == domain.TripTypeWalk && p.maxWalkDistance > 0 && itin.WalkDistance > p.maxWalkDistance {
			p.logger.Debug("Walk itinerary exceeds max walk distance",
				zap.Float64("walk_distance", itin.WalkDistance),
				zap.Float64("max", p.maxWalkDistance))
			continue
		}
		result = append(result, itin)
	}
	return result
}

func knownTripTypes(types []domain.TripType) []domain.TripType {
	raw := make([]string, len(types))
	for i, t := range types {
		raw[i] = string(t)
	}
	return domain.ParseTripTypes(raw)
}

func publishedOnly(services []domain.Service) []domain.Service {
	result := make([]domain.Service, 0, len(services))
	for _, s := range services {
		if s.Published() {
			result = append(result, s)
		}
	}
	return result
}

package usecase_test

import (
	"context"
	"sync"
	"time"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/mock"

	"github.com/trip-planner/internal/domain"
	"github.com/trip-planner/internal/domain/repository"
)

// MockServiceRepository - мок для ServiceRepository
type MockServiceRepository struct {
	mock.Mock
}

func (m *MockServiceRepository) ListPublished(ctx context.Context, types []domain.TripType) ([]domain.Service, error) {
	args := m.Called(ctx, types)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Service), args.Error(1)
}

// MockTripRepository - мок для TripRepository
type MockTripRepository struct {
	mock.Mock
}

func (m *MockTripRepository) Save(ctx context.Context, trip *domain.Trip) error {
	args := m.Called(ctx, trip)
	return args.Error(0)
}

func (m *MockTripRepository) GetByID(ctx context.Context, id string) (*domain.Trip, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Trip), args.Error(1)
}

// MockTravelPatternRepository - мок для TravelPatternRepository
type MockTravelPatternRepository struct {
	mock.Mock
}

func (m *MockTravelPatternRepository) ListByAgency(ctx context.Context, agencyID int64) ([]domain.TravelPattern, error) {
	args := m.Called(ctx, agencyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TravelPattern), args.Error(1)
}

func (m *MockTravelPatternRepository) ExistsByName(ctx context.Context, agencyID int64, name string) (bool, error) {
	args := m.Called(ctx, agencyID, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockTravelPatternRepository) Create(ctx context.Context, pattern *domain.TravelPattern) error {
	args := m.Called(ctx, pattern)
	return args.Error(0)
}

// MockBookingRepository - мок для BookingRepository
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) FundingSources(ctx context.Context, customerID string) ([]domain.FundingSource, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FundingSource), args.Error(1)
}

func (m *MockBookingRepository) TripPurposes(ctx context.Context, customerID string) ([]domain.TripPurpose, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TripPurpose), args.Error(1)
}

// MockStreamRepository - мок для StreamRepository
type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func (m *MockStreamRepository) ConsumeBatch(ctx context.Context, stream, group, consumer string, count int) ([]domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessages(ctx context.Context, stream, group string, messageIDs ...string) error {
	args := m.Called(ctx, stream, group, messageIDs)
	return args.Error(0)
}

func (m *MockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	args := m.Called(ctx, stream, data)
	return args.Error(0)
}

// fakeRouter - заранее заданные ответы роутера по типам поездки
type fakeRouter struct {
	itineraries map[domain.TripType][]domain.Itinerary
	errs        map[domain.TripType]error
	durations   map[domain.TripType]float64
	distances   map[domain.TripType]float64
}

func newFakeRouter() *fakeRouter {
	return &fakeRouter{
		itineraries: make(map[domain.TripType][]domain.Itinerary),
		errs:        make(map[domain.TripType]error),
		durations:   make(map[domain.TripType]float64),
		distances:   make(map[domain.TripType]float64),
	}
}

func (r *fakeRouter) GetItineraries(tt domain.TripType) []domain.Itinerary {
	src := r.itineraries[tt]
	out := make([]domain.Itinerary, len(src))
	copy(out, src)
	return out
}

func (r *fakeRouter) Errors(tt domain.TripType) error        { return r.errs[tt] }
func (r *fakeRouter) GetDuration(tt domain.TripType) float64 { return r.durations[tt] }
func (r *fakeRouter) GetDistance(tt domain.TripType) float64 { return r.distances[tt] }

// fakeProvider возвращает один и тот же роутер и запоминает, с какими сервисами его создали
type fakeProvider struct {
	router repository.Router

	mu       sync.Mutex
	services []domain.Service
	types    []domain.TripType
}

func (p *fakeProvider) NewRouter(_ context.Context, _ *domain.Trip, tripTypes []domain.TripType, services []domain.Service) repository.Router {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.services = services
	p.types = tripTypes
	return p.router
}

func (p *fakeProvider) lastServices() []domain.Service {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.services
}

type fakeFareFinder struct {
	fare float64
	ok   bool
}

func (f fakeFareFinder) MeteredFare(context.Context, *domain.Trip, string) (float64, bool) {
	return f.fare, f.ok
}

// square строит квадратную зону по центру и полуширине в градусах
func square(lat, lon, half float64) *domain.Area {
	ring := orb.Ring{
		{lon - half, lat - half},
		{lon + half, lat - half},
		{lon + half, lat + half},
		{lon - half, lat + half},
		{lon - half, lat - half},
	}
	return domain.NewArea(orb.Polygon{ring})
}

func strPtr(s string) *string {
	return &s
}

func intPtr(i int) *int {
	return &i
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func weekday(d time.Weekday) *time.Weekday {
	return &d
}

func hours(h int) int {
	return h * 3600
}

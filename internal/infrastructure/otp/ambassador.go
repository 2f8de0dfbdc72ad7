package otp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/trip-planner/internal/domain"
	"github.com/trip-planner/internal/infrastructure/bundler"
	"go.uber.org/zap"
)

var ErrNotRequested = errors.New("router was not queried for this trip type")

// Ambassador переводит поездку в запросы к роутеру (один на режим)
// и нормализует ответы в маршруты, привязанные к известным сервисам
type Ambassador struct {
	cfg      Config
	trip     *domain.Trip
	modes    map[domain.TripType]string
	services []domain.Service
	bundler  *bundler.Bundler
	logger   *zap.Logger

	results map[string]bundler.Result
}

// NewAmbassador регистрирует по одному запросу на каждую уникальную строку режимов.
// Типы поездки без режима в словаре пропускаются.
func NewAmbassador(
	cfg Config,
	trip *domain.Trip,
	tripTypes []domain.TripType,
	services []domain.Service,
	b *bundler.Bundler,
	logger *zap.Logger,
) *Ambassador {
	a := &Ambassador{
		cfg:      cfg,
		trip:     trip,
		modes:    make(map[domain.TripType]string, len(tripTypes)),
		services: services,
		bundler:  b,
		logger:   logger,
	}

	var labels []string
	quotas := make(map[string]int)
	for _, tt := range tripTypes {
		mode, ok := cfg.ModeFor(tt)
		if !ok {
			logger.Warn("No router mode for trip type, skipping", zap.String("trip_type", string(tt)))
			continue
		}
		a.modes[tt] = mode
		if _, seen := quotas[mode]; !seen {
			labels = append(labels, mode)
		}
		quotas[mode] = max(quotas[mode], cfg.quotaFor(tt))
	}

	url := strings.TrimRight(cfg.BaseURL, "/") + graphQLPath
	for _, mode := range labels {
		body, err := buildPlanBody(cfg, trip, mode, quotas[mode])
		if err != nil {
			logger.Error("Failed to build router request", zap.String("mode", mode), zap.Error(err))
			continue
		}
		b.Add(bundler.Request{
			Label:   mode,
			URL:     url,
			Method:  http.MethodPost,
			Body:    body,
			Headers: map[string]string{"Content-Type": "application/json"},
		})
	}

	return a
}

// Plan выполняет все зарегистрированные запросы и ждет их (или таймаута)
func (a *Ambassador) Plan(ctx context.Context) {
	a.results = a.bundler.MakeCalls(ctx)
}

func (a *Ambassador) response(tripType domain.TripType) ([]rawItinerary, error) {
	mode, ok := a.modes[tripType]
	if !ok {
		return nil, ErrNotRequested
	}
	res, ok := a.results[mode]
	if !ok {
		return nil, ErrNotRequested
	}
	if res.Err != nil {
		return nil, res.Err
	}
	if !res.Success() {
		return nil, fmt.Errorf("router returned status %d for %s", res.StatusCode, mode)
	}
	return parsePlan(res.Body)
}

// GetItineraries возвращает маршруты для типа поездки. При ошибке роутера - пустой список.
func (a *Ambassador) GetItineraries(tripType domain.TripType) []domain.Itinerary {
	raws, err := a.response(tripType)
	if err != nil {
		if !errors.Is(err, ErrNotRequested) {
			a.logger.Warn("Router returned no itineraries",
				zap.String("trip_type", string(tripType)),
				zap.Error(err))
		}
		return nil
	}

	itineraries := make([]domain.Itinerary, 0, len(raws))
	for i := range raws {
		itin, ok := a.convertItinerary(tripType, &raws[i])
		if !ok {
			continue
		}
		itineraries = append(itineraries, itin)
	}
	return itineraries
}

// Errors возвращает ошибку запроса для типа поездки.
// Для типов без режима в словаре ошибки нет: они просто не запрашивались.
func (a *Ambassador) Errors(tripType domain.TripType) error {
	if _, ok := a.modes[tripType]; !ok {
		return nil
	}
	_, err := a.response(tripType)
	return err
}

func (a *Ambassador) GetDuration(tripType domain.TripType) float64 {
	itineraries := a.GetItineraries(tripType)
	if len(itineraries) == 0 {
		return 0
	}
	return itineraries[0].Duration
}

func (a *Ambassador) GetDistance(tripType domain.TripType) float64 {
	itineraries := a.GetItineraries(tripType)
	if len(itineraries) == 0 {
		return 0
	}
	return itineraries[0].Distance()
}

func (a *Ambassador) convertItinerary(tripType domain.TripType, raw *rawItinerary) (domain.Itinerary, bool) {
	itin := domain.Itinerary{
		TripType:     tripType,
		StartTime:    millisToTime(raw.StartTime),
		EndTime:      millisToTime(raw.EndTime),
		Duration:     raw.Duration,
		WaitTime:     raw.WaitingTime,
		WalkDistance: raw.WalkDistance,
		Legs:         make([]domain.Leg, 0, len(raw.Legs)),
	}
	if itin.Duration == 0 && raw.EndTime > raw.StartTime {
		itin.Duration = float64(raw.EndTime-raw.StartTime) / 1000
	}

	var transitTime float64
	for i := range raw.Legs {
		leg := a.convertLeg(&raw.Legs[i])
		if leg.Ambiguous() {
			return domain.Itinerary{}, false
		}
		if leg.TransitLeg {
			transitTime += leg.Duration
		}
		if itin.ServiceID == nil && leg.Service != nil && leg.Service.ID != nil {
			id := *leg.Service.ID
			itin.ServiceID = &id
		}
		itin.Legs = append(itin.Legs, leg)
	}

	if tripType.DriveLike() {
		itin.TransitTime = raw.WalkTime
		itin.WalkTime = 0
	} else {
		itin.TransitTime = transitTime
		itin.WalkTime = raw.WalkTime
	}

	cost := 0.0
	if tripType.FareBearing() {
		cost = itineraryCost(raw)
	}
	itin.Cost = &cost

	return itin, true
}

func (a *Ambassador) convertLeg(raw *rawLeg) domain.Leg {
	leg := domain.Leg{
		Mode: raw.Mode,
		From: domain.Place{
			Name: raw.From.Name,
			Lat:  raw.From.Lat,
			Lon:  raw.From.Lon,
			Time: millisToTime(raw.From.DepartureTime),
		},
		To: domain.Place{
			Name: raw.To.Name,
			Lat:  raw.To.Lat,
			Lon:  raw.To.Lon,
			Time: millisToTime(raw.To.ArrivalTime),
		},
		Distance:   raw.Distance,
		Duration:   raw.Duration,
		TransitLeg: raw.TransitLeg,
		AgencyID:   raw.agencyID(),
		AgencyName: raw.agencyName(),
		Route:      raw.routeName(),
	}
	if leg.Duration == 0 && raw.EndTime > raw.StartTime {
		leg.Duration = float64(raw.EndTime-raw.StartTime) / 1000
	}
	if leg.From.Time == nil {
		leg.From.Time = millisToTime(raw.StartTime)
	}
	if leg.To.Time == nil {
		leg.To.Time = millisToTime(raw.EndTime)
	}

	for _, fp := range raw.FareProducts {
		product := domain.FareProduct{ID: fp.ID, Name: fp.Product.Name}
		if fp.Product.Price != nil {
			product.Amount = fp.Product.Price.Amount
			product.Currency = fp.Product.Price.Currency.Code
		}
		leg.FareProducts = append(leg.FareProducts, product)
	}

	if raw.phoneBooked() {
		leg.Mode = PhoneAccessMode
	}

	if leg.AgencyID == "" && leg.AgencyName == "" {
		return leg
	}

	if svc := a.matchService(leg.AgencyID, leg.AgencyName); svc != nil {
		id := svc.ID
		leg.Service = &domain.LegService{
			ID:       &id,
			Name:     svc.Name,
			FareInfo: svc.FareInfo(),
			LogoURL:  svc.LogoURL,
		}
	} else if leg.AgencyName != "" {
		leg.Service = &domain.LegService{Name: leg.AgencyName}
	}

	return leg
}

// matchService ищет сервис сначала по agency id, затем по имени, только среди переданных сервисов
func (a *Ambassador) matchService(agencyID, agencyName string) *domain.Service {
	if agencyID != "" {
		for i := range a.services {
			if agencyIDMatches(a.services[i].GTFSAgencyID, agencyID) {
				return &a.services[i]
			}
		}
	}
	if agencyName != "" {
		for i := range a.services {
			if strings.EqualFold(a.services[i].Name, agencyName) {
				return &a.services[i]
			}
		}
	}
	return nil
}

// agencyIDMatches сравнивает id агентства, допуская префикс фида "1:MTA"
func agencyIDMatches(serviceAgencyID, legAgencyID string) bool {
	if serviceAgencyID == "" {
		return false
	}
	if serviceAgencyID == legAgencyID {
		return true
	}
	_, id, found := strings.Cut(legAgencyID, ":")
	return found && id == serviceAgencyID
}

// itineraryCost: сначала тариф маршрута, затем сумма тарифов сегментов, иначе 0
func itineraryCost(raw *rawItinerary) float64 {
	if len(raw.Fares) > 0 {
		fare := raw.Fares[0]
		for _, f := range raw.Fares {
			if f.Type == "regular" {
				fare = f
				break
			}
		}
		return float64(fare.Cents) / 100
	}

	var total float64
	var found bool
	for _, leg := range raw.Legs {
		for _, fp := range leg.FareProducts {
			if fp.Product.Price != nil {
				total += fp.Product.Price.Amount
				found = true
			}
		}
	}
	if found {
		return total
	}
	return 0
}

package usecase

import (
	"context"
	"time"

	"github.com/sourcegraph/conc/iter"
	"github.com/trip-planner/internal/domain"
	"github.com/trip-planner/internal/domain/repository"
	"github.com/trip-planner/internal/pkg/errors"
	"github.com/trip-planner/internal/pkg/validator"
	"github.com/trip-planner/internal/usecase/dto"
	"go.uber.org/zap"
)

type TravelPatternUseCase struct {
	repo    repository.TravelPatternRepository
	booking repository.BookingRepository
	logger  *zap.Logger
	now     func() time.Time
}

func NewTravelPatternUseCase(
	repo repository.TravelPatternRepository,
	booking repository.BookingRepository,
	logger *zap.Logger,
) *TravelPatternUseCase {
	return &TravelPatternUseCase{
		repo:    repo,
		booking: booking,
		logger:  logger,
		now:     time.Now,
	}
}

// WithClock подменяет текущее время (для тестов и воспроизводимых ответов)
func (uc *TravelPatternUseCase) WithClock(now func() time.Time) *TravelPatternUseCase {
	uc.now = now
	return uc
}

// Available возвращает travel patterns, подходящие под запрос, с календарем бронирования
func (uc *TravelPatternUseCase) Available(
	ctx context.Context,
	q dto.TravelPatternQuery,
) (*dto.TravelPatternResponse, error) {
	if q.Purpose == "" {
		return nil, errors.ErrPurposeRequired
	}

	patterns, err := uc.repo.ListByAgency(ctx, q.AgencyID)
	if err != nil {
		return nil, err
	}

	now := uc.now()

	patterns = filterPatterns(patterns, func(p *domain.TravelPattern) bool {
		if q.Origin != nil && !p.ServesOrigin(q.Origin.Domain()) {
			return false
		}
		if q.Destination != nil && !p.ServesDestination(q.Destination.Domain()) {
			return false
		}
		return p.HasPurpose(q.Purpose)
	})

	if q.CustomerID != "" && len(patterns) > 0 {
		sources, err := uc.booking.FundingSources(ctx, q.CustomerID)
		if err != nil {
			uc.logger.Error("Failed to load funding sources",
				zap.String("customer_id", q.CustomerID), zap.Error(err))
			return nil, err
		}
		valid := domain.ValidFundingCodes(sources, q.Purpose)
		patterns = filterPatterns(patterns, func(p *domain.TravelPattern) bool {
			return AvailableByFundingSource(p.FundingSources, valid)
		})
	}

	if q.Date != nil {
		date := *q.Date
		patterns = filterPatterns(patterns, func(p *domain.TravelPattern) bool {
			return p.BookingWindow.Includes(now, date) && len(ServiceWindowsFor(p, date)) > 0
		})
	}

	if q.StartTime != nil {
		start := *q.StartTime
		end := start
		if q.EndTime != nil {
			end = *q.EndTime
		}
		patterns = filterPatterns(patterns, func(p *domain.TravelPattern) bool {
			if q.Date != nil {
				return RunsAt(p, *q.Date, start, end)
			}
			return runsAnyDay(p, start, end)
		})
	}

	validFrom, validUntil, err := uc.purposeRange(ctx, q.CustomerID, q.Purpose)
	if err != nil {
		return nil, err
	}

	resolved := iter.Map(patterns, func(p *domain.TravelPattern) dto.TravelPatternDTO {
		calendar := ResolveCalendar(p, p.BookingWindow.EarliestBooking(now), p.BookingWindow.LatestBooking(now))
		return toTravelPatternDTO(p, calendar.Clip(validFrom, validUntil), now)
	})

	result := make([]dto.TravelPatternDTO, 0, len(resolved))
	for _, p := range resolved {
		if p.Calendar.HasBookableDay() {
			result = append(result, p)
		}
	}

	if len(result) == 0 {
		return nil, errors.ErrTravelPatternsNotFound
	}

	return &dto.TravelPatternResponse{TravelPatterns: result}, nil
}

// purposeRange - период действия цели поездки клиента.
// Берется запись с кодом цели и самой ранней valid_from; без записи или без дат ограничения нет.
func (uc *TravelPatternUseCase) purposeRange(ctx context.Context, customerID, purpose string) (*time.Time, *time.Time, error) {
	if customerID == "" {
		return nil, nil, nil
	}

	purposes, err := uc.booking.TripPurposes(ctx, customerID)
	if err != nil {
		uc.logger.Error("Failed to load trip purposes",
			zap.String("customer_id", customerID), zap.Error(err))
		return nil, nil, err
	}

	var chosen *domain.TripPurpose
	for i := range purposes {
		p := &purposes[i]
		if p.Code != purpose || p.ValidFrom == nil {
			continue
		}
		if chosen == nil || p.ValidFrom.Before(*chosen.ValidFrom) {
			chosen = p
		}
	}
	if chosen == nil {
		return nil, nil, nil
	}
	return chosen.ValidFrom, chosen.ValidUntil, nil
}

// Create проверяет travel pattern и сохраняет его
func (uc *TravelPatternUseCase) Create(ctx context.Context, pattern *domain.TravelPattern) (*domain.TravelPattern, error) {
	if err := validator.Validate(pattern); err != nil {
		return nil, errors.ErrInvalidTravelPattern.WithDetails(map[string]interface{}{
			"errors": validator.Messages(err),
		})
	}

	taken, err := uc.repo.ExistsByName(ctx, pattern.AgencyID, pattern.Name)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, errors.ErrTravelPatternNameTaken
	}

	if err := uc.repo.Create(ctx, pattern); err != nil {
		uc.logger.Error("Failed to create travel pattern", zap.String("name", pattern.Name), zap.Error(err))
		return nil, err
	}

	uc.logger.Info("Travel pattern created",
		zap.Int64("id", pattern.ID),
		zap.Int64("agency_id", pattern.AgencyID))

	return pattern, nil
}

func filterPatterns(patterns []domain.TravelPattern, keep func(p *domain.TravelPattern) bool) []domain.TravelPattern {
	result := make([]domain.TravelPattern, 0, len(patterns))
	for i := range patterns {
		if keep(&patterns[i]) {
			result = append(result, patterns[i])
		}
	}
	return result
}

// runsAnyDay - без даты: подходит любой сегмент любого расписания
func runsAnyDay(p *domain.TravelPattern, start, end int) bool {
	for _, sch := range p.ServiceSchedules {
		for _, sub := range sch.SubSchedules {
			if sub.Fits(start, end) {
				return true
			}
		}
	}
	return false
}

func toTravelPatternDTO(p *domain.TravelPattern, calendar domain.Calendar, now time.Time) dto.TravelPatternDTO {
	return dto.TravelPatternDTO{
		ID:                        p.ID,
		AgencyID:                  p.AgencyID,
		Name:                      p.Name,
		Description:               p.Description,
		OriginZone:                p.OriginZone.Name,
		DestinationZone:           p.DestinationZone.Name,
		AllowReverseSequenceTrips: p.AllowReverseSequenceTrips,
		BookingWindow:             dto.NewBookingWindowDTO(p.BookingWindow, now),
		Purposes:                  p.Purposes,
		FundingSources:            p.FundingSources,
		Calendar:                  calendar,
	}
}

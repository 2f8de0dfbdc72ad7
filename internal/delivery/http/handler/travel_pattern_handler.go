package handler

import (
	"context"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/trip-planner/internal/domain"
	"github.com/trip-planner/internal/pkg/errors"
	"github.com/trip-planner/internal/pkg/utils"
	"github.com/trip-planner/internal/pkg/validator"
	"github.com/trip-planner/internal/usecase/dto"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// TravelPatternService - операции над travel patterns, нужные хендлеру
type TravelPatternService interface {
	Available(ctx context.Context, q dto.TravelPatternQuery) (*dto.TravelPatternResponse, error)
	Create(ctx context.Context, pattern *domain.TravelPattern) (*domain.TravelPattern, error)
}

// TravelPatternHandler - обработчик travel pattern API (ответы со status success|fail)
type TravelPatternHandler struct {
	patternUC TravelPatternService
	logger    *zap.Logger
}

func NewTravelPatternHandler(patternUC TravelPatternService, logger *zap.Logger) *TravelPatternHandler {
	return &TravelPatternHandler{
		patternUC: patternUC,
		logger:    logger,
	}
}

// Index godoc
// @Summary Available travel patterns
// @Description Travel patterns of an agency matching purpose, zones, date and time, each with its booking calendar.
// @Tags travel_patterns
// @Produce json
// @Param agency_id query int true "Agency ID"
// @Param purpose query string true "Trip purpose code"
// @Param customer_id query string false "Booking customer ID"
// @Param date query string false "Travel date (YYYY-MM-DD)"
// @Param start_time query int false "Seconds since midnight"
// @Param end_time query int false "Seconds since midnight"
// @Param origin_lat query number false "Origin latitude"
// @Param origin_lon query number false "Origin longitude"
// @Param destination_lat query number false "Destination latitude"
// @Param destination_lon query number false "Destination longitude"
// @Success 200 {object} utils.StatusResponse{data=dto.TravelPatternResponse}
// @Failure 400 {object} utils.StatusResponse
// @Failure 404 {object} utils.StatusResponse
// @Router /api/v2/travel_patterns [get]
func (h *TravelPatternHandler) Index(c *fiber.Ctx) error {
	q, err := parseTravelPatternQuery(c)
	if err != nil {
		return utils.SendStatusFail(c, err)
	}

	result, err := h.patternUC.Available(c.UserContext(), q)
	if err != nil {
		return utils.SendStatusFail(c, err)
	}

	return utils.SendStatusSuccess(c, fiber.StatusOK, result)
}

// Create godoc
// @Summary Create a travel pattern
// @Tags travel_patterns
// @Accept json
// @Produce json
// @Param request body domain.TravelPattern true "Travel pattern"
// @Success 201 {object} utils.StatusResponse{data=domain.TravelPattern}
// @Failure 400 {object} utils.StatusResponse
// @Failure 409 {object} utils.StatusResponse
// @Router /api/v2/travel_patterns [post]
func (h *TravelPatternHandler) Create(c *fiber.Ctx) error {
	var pattern domain.TravelPattern
	if err := c.BodyParser(&pattern); err != nil {
		return utils.SendStatusFail(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"body": err.Error(),
		}))
	}

	created, err := h.patternUC.Create(c.UserContext(), &pattern)
	if err != nil {
		return utils.SendStatusFail(c, err)
	}

	return utils.SendStatusSuccess(c, fiber.StatusCreated, fiber.Map{
		"travel_pattern": created,
	})
}

func parseTravelPatternQuery(c *fiber.Ctx) (dto.TravelPatternQuery, error) {
	var q dto.TravelPatternQuery
	if err := c.QueryParser(&q); err != nil {
		return q, invalidParam("query", err.Error())
	}

	if raw := c.Query("date"); raw != "" {
		date, err := time.ParseInLocation(dateLayout, raw, time.UTC)
		if err != nil {
			return q, invalidParam("date", "expected YYYY-MM-DD")
		}
		q.Date = &date
	}

	origin, err := queryPoint(c, "origin")
	if err != nil {
		return q, err
	}
	q.Origin = origin

	destination, err := queryPoint(c, "destination")
	if err != nil {
		return q, err
	}
	q.Destination = destination

	if err := validator.Validate(&q); err != nil {
		return q, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"errors": validator.Messages(err),
		})
	}
	return q, nil
}

// queryPoint читает <prefix>_lat и <prefix>_lon. Точка задается только парой.
func queryPoint(c *fiber.Ctx, prefix string) (*dto.Point, error) {
	rawLat, rawLon := c.Query(prefix+"_lat"), c.Query(prefix+"_lon")
	if rawLat == "" && rawLon == "" {
		return nil, nil
	}

	lat, errLat := strconv.ParseFloat(rawLat, 64)
	lon, errLon := strconv.ParseFloat(rawLon, 64)
	if errLat != nil || errLon != nil || !utils.ValidateCoordinates(lat, lon) {
		return nil, invalidParam(prefix, "expected valid "+prefix+"_lat and "+prefix+"_lon")
	}

	return &dto.Point{Lat: lat, Lon: lon}, nil
}

func invalidParam(name, reason string) error {
	return errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
		name: reason,
	})
}

package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/trip-planner/internal/pkg/errors"
	"github.com/trip-planner/internal/pkg/utils"
	"github.com/trip-planner/internal/pkg/validator"
	"github.com/trip-planner/internal/usecase/dto"
	"go.uber.org/zap"
)

// TripService - операции планирования, нужные хендлеру
type TripService interface {
	Plan(ctx context.Context, req dto.PlanTripRequest) (*dto.PlanTripResponse, error)
	GetTrip(ctx context.Context, id string) (*dto.TripResponse, error)
}

// TripHandler - обработчик запросов планирования поездок
type TripHandler struct {
	tripUC TripService
	logger *zap.Logger
}

// NewTripHandler - создание нового TripHandler
func NewTripHandler(tripUC TripService, logger *zap.Logger) *TripHandler {
	return &TripHandler{
		tripUC: tripUC,
		logger: logger,
	}
}

// Plan godoc
// @Summary Plan a trip
// @Description Builds itineraries for every requested trip type. With async=true the trip is queued for the planning worker.
// @Tags trips
// @Accept json
// @Produce json
// @Param request body dto.PlanTripRequest true "Trip request"
// @Success 200 {object} utils.SuccessResponse{data=dto.PlanTripResponse}
// @Success 202 {object} utils.SuccessResponse{data=dto.PlanTripResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/trips/plan [post]
func (h *TripHandler) Plan(c *fiber.Ctx) error {
	var req dto.PlanTripRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"body": err.Error(),
		}))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"errors": validator.Messages(err),
		}))
	}

	result, err := h.tripUC.Plan(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	if req.Async {
		c.Status(fiber.StatusAccepted)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total:  len(result.Itineraries),
		Errors: result.Errors,
	})
}

// GetTrip godoc
// @Summary Get a planned trip
// @Tags trips
// @Produce json
// @Param id path string true "Trip ID"
// @Success 200 {object} utils.SuccessResponse{data=dto.TripResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/trips/{id} [get]
func (h *TripHandler) GetTrip(c *fiber.Ctx) error {
	result, err := h.tripUC.GetTrip(c.UserContext(), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: len(result.Trip.Itineraries),
	})
}

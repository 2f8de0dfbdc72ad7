package utils

import (
	"github.com/gofiber/fiber/v2"
	"github.com/trip-planner/internal/pkg/errors"
)

type SuccessResponse struct {
	Data interface{} `json:"data"`
	Meta *Meta       `json:"meta,omitempty"`
}

type ErrorResponse struct {
	Error *errors.AppError `json:"error"`
}

// StatusResponse - ответ со статусом success|fail для travel pattern API
type StatusResponse struct {
	Status  string      `json:"status"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

type Meta struct {
	Total    int               `json:"total,omitempty"`
	TimeMSec float64           `json:"time_ms,omitempty"`
	Errors   map[string]string `json:"errors,omitempty"`
}

func SendSuccess(c *fiber.Ctx, data interface{}, meta *Meta) error {
	return c.JSON(SuccessResponse{
		Data: data,
		Meta: meta,
	})
}

func SendError(c *fiber.Ctx, err error) error {
	if appErr, ok := errors.As(err); ok {
		return c.Status(appErr.StatusCode).JSON(ErrorResponse{
			Error: appErr,
		})
	}

	// Unknown error - return 500
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error: errors.ErrInternalServer,
	})
}

func SendStatusSuccess(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(StatusResponse{
		Status: "success",
		Data:   data,
	})
}

func SendStatusFail(c *fiber.Ctx, err error) error {
	appErr, ok := errors.As(err)
	if !ok {
		appErr = errors.ErrInternalServer
	}
	return c.Status(appErr.StatusCode).JSON(StatusResponse{
		Status:  "fail",
		Message: appErr.Message,
		Data:    appErr.Details,
	})
}

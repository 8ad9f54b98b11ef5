package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campus-commute-service/internal/delivery/http/middleware"
	"github.com/campus-commute-service/internal/domain"
	"github.com/campus-commute-service/internal/pkg/errors"
	"github.com/campus-commute-service/internal/pkg/utils"
	"github.com/campus-commute-service/internal/pkg/validator"
	"github.com/campus-commute-service/internal/usecase"
	"github.com/campus-commute-service/internal/usecase/dto"
)

type DriverHandler struct {
	ingestUC *usecase.IngestUseCase
	driverUC *usecase.DriverUseCase
	logger   *zap.Logger
}

func NewDriverHandler(ingestUC *usecase.IngestUseCase, driverUC *usecase.DriverUseCase, logger *zap.Logger) *DriverHandler {
	return &DriverHandler{
		ingestUC: ingestUC,
		driverUC: driverUC,
		logger:   logger,
	}
}

// ReportLocation ingests one GPS sample. Fire-and-forget: malformed payloads
// get a 4xx so the client can fix itself, everything else is 202 with no
// body worth reading.
func (h *DriverHandler) ReportLocation(c *fiber.Ctx) error {
	var req dto.LocationReportRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := h.ingestUC.ReportLocation(c.Context(), req); err != nil {
		return utils.SendError(c, err)
	}

	return c.SendStatus(fiber.StatusAccepted)
}

// TodaySchedule returns the driver's assignment for the current day.
func (h *DriverHandler) TodaySchedule(c *fiber.Ctx) error {
	driverID, ok := middleware.UserID(c)
	if !ok {
		return utils.SendError(c, errors.ErrUnauthorized)
	}

	schedule, err := h.driverUC.TodaySchedule(c.Context(), driverID)
	if err != nil {
		return utils.SendError(c, err)
	}

	// Empty, not 404: a driver with no assignment today is a normal state.
	return utils.SendSuccess(c, schedule, nil)
}

func (h *DriverHandler) StartTrip(c *fiber.Ctx) error {
	return h.transitionTrip(c, true)
}

func (h *DriverHandler) StopTrip(c *fiber.Ctx) error {
	return h.transitionTrip(c, false)
}

func (h *DriverHandler) transitionTrip(c *fiber.Ctx, start bool) error {
	driverID, ok := middleware.UserID(c)
	if !ok {
		return utils.SendError(c, errors.ErrUnauthorized)
	}

	scheduleID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	var schedule *domain.Schedule
	if start {
		schedule, err = h.driverUC.StartTrip(c.Context(), driverID, scheduleID)
	} else {
		schedule, err = h.driverUC.StopTrip(c.Context(), driverID, scheduleID)
	}
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, schedule, nil)
}

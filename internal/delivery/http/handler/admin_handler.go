package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campus-commute-service/internal/pkg/errors"
	"github.com/campus-commute-service/internal/pkg/utils"
	"github.com/campus-commute-service/internal/pkg/validator"
	"github.com/campus-commute-service/internal/usecase"
	"github.com/campus-commute-service/internal/usecase/dto"
)

// AdminHandler exposes the fleet/route/schedule registry.
type AdminHandler struct {
	fleetUC *usecase.FleetUseCase
	logger  *zap.Logger
}

func NewAdminHandler(fleetUC *usecase.FleetUseCase, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		fleetUC: fleetUC,
		logger:  logger,
	}
}

func (h *AdminHandler) ListBuses(c *fiber.Ctx) error {
	buses, err := h.fleetUC.ListBuses(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, buses, &utils.Meta{Total: len(buses)})
}

func (h *AdminHandler) AddBus(c *fiber.Ctx) error {
	var req dto.AddBusRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	bus, err := h.fleetUC.AddBus(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse{Data: bus})
}

func (h *AdminHandler) ListRoutes(c *fiber.Ctx) error {
	routes, err := h.fleetUC.ListRoutes(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, routes, &utils.Meta{Total: len(routes)})
}

func (h *AdminHandler) CreateRoute(c *fiber.Ctx) error {
	var req dto.CreateRouteRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	route, err := h.fleetUC.CreateRoute(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse{Data: route})
}

func (h *AdminHandler) CreateSchedule(c *fiber.Ctx) error {
	var req dto.CreateScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	schedule, err := h.fleetUC.CreateSchedule(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse{Data: schedule})
}

func (h *AdminHandler) UpdateSchedule(c *fiber.Ctx) error {
	scheduleID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	var req dto.UpdateScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	schedule, err := h.fleetUC.ReassignSchedule(c.Context(), scheduleID, req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, schedule, nil)
}

package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/campus-commute-service/internal/pkg/errors"
	"github.com/campus-commute-service/internal/pkg/utils"
	"github.com/campus-commute-service/internal/pkg/validator"
	"github.com/campus-commute-service/internal/usecase"
	"github.com/campus-commute-service/internal/usecase/dto"
)

type StudentHandler struct {
	commuteUC *usecase.CommuteUseCase
	logger    *zap.Logger
}

func NewStudentHandler(commuteUC *usecase.CommuteUseCase, logger *zap.Logger) *StudentHandler {
	return &StudentHandler{
		commuteUC: commuteUC,
		logger:    logger,
	}
}

// CommuteStatus classifies the rider's direction and lists matching live buses.
func (h *StudentHandler) CommuteStatus(c *fiber.Ctx) error {
	var req dto.CommuteStatusRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	status, err := h.commuteUC.GetCommuteStatus(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, status, &utils.Meta{
		Total: len(status.AvailableBuses),
	})
}

// NearbyStops lists stops within a radius of the rider, closest first.
func (h *StudentHandler) NearbyStops(c *fiber.Ctx) error {
	var req dto.NearbyStopsRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	stops, err := h.commuteUC.GetNearbyStops(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, stops, &utils.Meta{Total: len(stops)})
}

// LiveBuses lists every bus with a fresh position report.
func (h *StudentHandler) LiveBuses(c *fiber.Ctx) error {
	buses, err := h.commuteUC.GetLiveBuses(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, buses, &utils.Meta{Total: len(buses)})
}

// MorningBuses lists buses scheduled through a stop on a date.
func (h *StudentHandler) MorningBuses(c *fiber.Ctx) error {
	var req dto.MorningBusesRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	buses, err := h.commuteUC.GetMorningBuses(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, buses, &utils.Meta{Total: len(buses)})
}

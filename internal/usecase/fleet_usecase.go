package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campus-commute-service/internal/domain"
	"github.com/campus-commute-service/internal/domain/repository"
	"github.com/campus-commute-service/internal/pkg/errors"
	"github.com/campus-commute-service/internal/usecase/dto"
)

// FleetUseCase is the schedule/assignment registry: admin CRUD over buses,
// routes and schedules. All writes are synchronous and atomic per entity.
type FleetUseCase struct {
	busRepo      repository.BusRepository
	routeRepo    repository.RouteRepository
	stopRepo     repository.StopRepository
	scheduleRepo repository.ScheduleRepository
	cacheRepo    repository.CacheRepository
	logger       *zap.Logger

	now func() time.Time
}

func NewFleetUseCase(
	busRepo repository.BusRepository,
	routeRepo repository.RouteRepository,
	stopRepo repository.StopRepository,
	scheduleRepo repository.ScheduleRepository,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
) *FleetUseCase {
	return &FleetUseCase{
		busRepo:      busRepo,
		routeRepo:    routeRepo,
		stopRepo:     stopRepo,
		scheduleRepo: scheduleRepo,
		cacheRepo:    cacheRepo,
		logger:       logger,
		now:          time.Now,
	}
}

// WithClock overrides the time source. Test helper.
func (uc *FleetUseCase) WithClock(now func() time.Time) *FleetUseCase {
	uc.now = now
	return uc
}

func (uc *FleetUseCase) AddBus(ctx context.Context, req dto.AddBusRequest) (*domain.Bus, error) {
	status := domain.BusStatusIdle
	if req.Status != "" {
		status = domain.BusStatus(req.Status)
	}
	capacity := req.Capacity
	if capacity == 0 {
		capacity = 40
	}

	bus := &domain.Bus{
		ID:        uuid.New(),
		BusNumber: req.BusNumber,
		Capacity:  capacity,
		Status:    status,
	}

	if err := uc.busRepo.Create(ctx, bus); err != nil {
		return nil, err
	}

	return bus, nil
}

func (uc *FleetUseCase) ListBuses(ctx context.Context) ([]*domain.Bus, error) {
	return uc.busRepo.List(ctx)
}

func (uc *FleetUseCase) CreateRoute(ctx context.Context, req dto.CreateRouteRequest) (*domain.Route, error) {
	stopIDs := make([]uuid.UUID, 0, len(req.StopIDs))
	for _, raw := range req.StopIDs {
		stopID, err := uuid.Parse(raw)
		if err != nil {
			return nil, errors.ErrInvalidRequest
		}
		if _, err := uc.stopRepo.GetByID(ctx, stopID); err != nil {
			return nil, err
		}
		stopIDs = append(stopIDs, stopID)
	}

	route := &domain.Route{
		ID:        uuid.New(),
		Name:      req.Name,
		Direction: domain.RouteDirection(req.Direction),
	}

	if err := uc.routeRepo.Create(ctx, route, stopIDs); err != nil {
		return nil, err
	}

	return uc.routeRepo.GetByID(ctx, route.ID)
}

func (uc *FleetUseCase) ListRoutes(ctx context.Context) ([]*domain.Route, error) {
	return uc.routeRepo.List(ctx)
}

// CreateSchedule assigns a bus to a route for today. Fails with a conflict
// when the bus already holds an open schedule for the same day and direction.
func (uc *FleetUseCase) CreateSchedule(ctx context.Context, req dto.CreateScheduleRequest) (*domain.Schedule, error) {
	routeID, err := uuid.Parse(req.RouteID)
	if err != nil {
		return nil, errors.ErrInvalidRequest
	}
	busID, err := uuid.Parse(req.BusID)
	if err != nil {
		return nil, errors.ErrInvalidRequest
	}

	route, err := uc.routeRepo.GetByID(ctx, routeID)
	if err != nil {
		return nil, err
	}
	if _, err := uc.busRepo.GetByID(ctx, busID); err != nil {
		return nil, err
	}

	direction := domain.RouteDirection(req.Direction)
	if route.Direction != direction {
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"reason": "schedule direction does not match the route's direction",
		})
	}

	day := uc.now()
	existing, err := uc.scheduleRepo.FindOpenForBus(ctx, busID, day, direction)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.ErrScheduleConflict
	}

	schedule := &domain.Schedule{
		ID:          uuid.New(),
		RouteID:     routeID,
		BusID:       busID,
		Direction:   direction,
		ServiceDate: day,
		Status:      domain.ScheduleStatusIdle,
	}

	if req.DriverID != "" {
		driverID, err := uuid.Parse(req.DriverID)
		if err != nil {
			return nil, errors.ErrInvalidRequest
		}
		schedule.DriverID = &driverID
	}

	if err := uc.scheduleRepo.Create(ctx, schedule); err != nil {
		return nil, err
	}

	return schedule, nil
}

// ReassignSchedule points an existing schedule slot at a different bus.
func (uc *FleetUseCase) ReassignSchedule(ctx context.Context, scheduleID uuid.UUID, req dto.UpdateScheduleRequest) (*domain.Schedule, error) {
	busID, err := uuid.Parse(req.BusID)
	if err != nil {
		return nil, errors.ErrInvalidRequest
	}

	schedule, err := uc.scheduleRepo.GetByID(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	if _, err := uc.busRepo.GetByID(ctx, busID); err != nil {
		return nil, err
	}

	// The incoming bus must be free for the slot's day and direction.
	existing, err := uc.scheduleRepo.FindOpenForBus(ctx, busID, schedule.ServiceDate, schedule.Direction)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.ID != scheduleID {
		return nil, errors.ErrScheduleConflict
	}

	if err := uc.scheduleRepo.ReassignBus(ctx, scheduleID, busID); err != nil {
		return nil, err
	}

	// Drop the ingest hot-path cache so reports resolve to the new bus.
	key := fmt.Sprintf("schedule:details:%s", scheduleID)
	if err := uc.cacheRepo.Delete(ctx, key); err != nil {
		uc.logger.Warn("Failed to invalidate schedule cache", zap.String("key", key))
	}

	return uc.scheduleRepo.GetByID(ctx, scheduleID)
}

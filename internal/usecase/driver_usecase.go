package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campus-commute-service/internal/domain"
	"github.com/campus-commute-service/internal/domain/repository"
	"github.com/campus-commute-service/internal/pkg/errors"
)

// DriverUseCase serves the driver dashboard: today's assignment and the
// trip start/stop transitions that flip bus and schedule state.
type DriverUseCase struct {
	busRepo      repository.BusRepository
	scheduleRepo repository.ScheduleRepository
	logger       *zap.Logger

	now func() time.Time
}

func NewDriverUseCase(
	busRepo repository.BusRepository,
	scheduleRepo repository.ScheduleRepository,
	logger *zap.Logger,
) *DriverUseCase {
	return &DriverUseCase{
		busRepo:      busRepo,
		scheduleRepo: scheduleRepo,
		logger:       logger,
		now:          time.Now,
	}
}

// WithClock overrides the time source. Test helper.
func (uc *DriverUseCase) WithClock(now func() time.Time) *DriverUseCase {
	uc.now = now
	return uc
}

// TodaySchedule returns the driver's open schedule for the current day, or
// nil when none is assigned.
func (uc *DriverUseCase) TodaySchedule(ctx context.Context, driverID uuid.UUID) (*domain.ScheduleDetails, error) {
	return uc.scheduleRepo.FindTodayForDriver(ctx, driverID, uc.now())
}

// StartTrip moves an IDLE schedule to ACTIVE and its bus to ACTIVE.
// A bus already running another trip conflicts: an ACTIVE bus has exactly
// one open schedule.
func (uc *DriverUseCase) StartTrip(ctx context.Context, driverID, scheduleID uuid.UUID) (*domain.Schedule, error) {
	schedule, err := uc.scheduleRepo.GetByID(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	if schedule.DriverID == nil || *schedule.DriverID != driverID {
		return nil, errors.ErrForbidden
	}
	if schedule.Status != domain.ScheduleStatusIdle {
		return nil, errors.ErrScheduleNotActive
	}

	bus, err := uc.busRepo.GetByID(ctx, schedule.BusID)
	if err != nil {
		return nil, err
	}
	if bus.Status == domain.BusStatusActive {
		return nil, errors.ErrScheduleConflict
	}

	if err := uc.scheduleRepo.UpdateStatus(ctx, scheduleID, domain.ScheduleStatusActive); err != nil {
		return nil, err
	}
	if err := uc.busRepo.UpdateStatus(ctx, schedule.BusID, domain.BusStatusActive); err != nil {
		// The schedule flipped but the bus did not; roll the schedule back so
		// no half-started trip is observable.
		if rbErr := uc.scheduleRepo.UpdateStatus(ctx, scheduleID, domain.ScheduleStatusIdle); rbErr != nil {
			uc.logger.Error("Failed to roll back schedule after bus update failure",
				zap.String("schedule_id", scheduleID.String()),
				zap.Error(rbErr))
		}
		return nil, err
	}

	uc.logger.Info("Trip started",
		zap.String("schedule_id", scheduleID.String()),
		zap.String("bus_id", schedule.BusID.String()))

	return uc.scheduleRepo.GetByID(ctx, scheduleID)
}

// StopTrip completes an ACTIVE schedule and returns its bus to IDLE.
func (uc *DriverUseCase) StopTrip(ctx context.Context, driverID, scheduleID uuid.UUID) (*domain.Schedule, error) {
	schedule, err := uc.scheduleRepo.GetByID(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	if schedule.DriverID == nil || *schedule.DriverID != driverID {
		return nil, errors.ErrForbidden
	}
	if schedule.Status != domain.ScheduleStatusActive {
		return nil, errors.ErrScheduleNotActive
	}

	if err := uc.scheduleRepo.UpdateStatus(ctx, scheduleID, domain.ScheduleStatusCompleted); err != nil {
		return nil, err
	}
	if err := uc.busRepo.UpdateStatus(ctx, schedule.BusID, domain.BusStatusIdle); err != nil {
		return nil, err
	}

	uc.logger.Info("Trip completed",
		zap.String("schedule_id", scheduleID.String()),
		zap.String("bus_id", schedule.BusID.String()))

	return uc.scheduleRepo.GetByID(ctx, scheduleID)
}

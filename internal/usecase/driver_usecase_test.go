package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campus-commute-service/internal/domain"
	"github.com/campus-commute-service/internal/pkg/errors"
	"github.com/campus-commute-service/internal/usecase"
)

func TestDriverUseCase_TodaySchedule(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 10, 6, 0, 0, 0, time.UTC)
	driverID := uuid.New()

	t.Run("returns the assignment when one exists", func(t *testing.T) {
		details := &domain.ScheduleDetails{
			Schedule:  domain.Schedule{ID: uuid.New(), DriverID: &driverID},
			BusNumber: "OC-07",
		}

		mockSchedules := &MockScheduleRepository{}
		mockSchedules.On("FindTodayForDriver", ctx, driverID, now).Return(details, nil)

		uc := usecase.NewDriverUseCase(&MockBusRepository{}, mockSchedules, zap.NewNop()).
			WithClock(func() time.Time { return now })

		got, err := uc.TodaySchedule(ctx, driverID)
		require.NoError(t, err)
		assert.Equal(t, "OC-07", got.BusNumber)
	})

	t.Run("no assignment is nil, not an error", func(t *testing.T) {
		mockSchedules := &MockScheduleRepository{}
		mockSchedules.On("FindTodayForDriver", ctx, driverID, now).Return(nil, nil)

		uc := usecase.NewDriverUseCase(&MockBusRepository{}, mockSchedules, zap.NewNop()).
			WithClock(func() time.Time { return now })

		got, err := uc.TodaySchedule(ctx, driverID)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestDriverUseCase_StartTrip(t *testing.T) {
	ctx := context.Background()
	driverID := uuid.New()
	scheduleID := uuid.New()
	busID := uuid.New()

	idleSchedule := func() *domain.Schedule {
		return &domain.Schedule{
			ID:       scheduleID,
			BusID:    busID,
			DriverID: &driverID,
			Status:   domain.ScheduleStatusIdle,
		}
	}

	t.Run("flips schedule and bus to active", func(t *testing.T) {
		started := idleSchedule()
		started.Status = domain.ScheduleStatusActive

		mockSchedules := &MockScheduleRepository{}
		mockSchedules.On("GetByID", ctx, scheduleID).Return(idleSchedule(), nil).Once()
		mockSchedules.On("UpdateStatus", ctx, scheduleID, domain.ScheduleStatusActive).Return(nil)
		mockSchedules.On("GetByID", ctx, scheduleID).Return(started, nil)

		mockBuses := &MockBusRepository{}
		mockBuses.On("GetByID", ctx, busID).Return(&domain.Bus{ID: busID, Status: domain.BusStatusIdle}, nil)
		mockBuses.On("UpdateStatus", ctx, busID, domain.BusStatusActive).Return(nil)

		uc := usecase.NewDriverUseCase(mockBuses, mockSchedules, zap.NewNop())

		got, err := uc.StartTrip(ctx, driverID, scheduleID)
		require.NoError(t, err)
		assert.Equal(t, domain.ScheduleStatusActive, got.Status)
		mockBuses.AssertCalled(t, "UpdateStatus", ctx, busID, domain.BusStatusActive)
	})

	t.Run("another driver's schedule is forbidden", func(t *testing.T) {
		mockSchedules := &MockScheduleRepository{}
		mockSchedules.On("GetByID", ctx, scheduleID).Return(idleSchedule(), nil)

		uc := usecase.NewDriverUseCase(&MockBusRepository{}, mockSchedules, zap.NewNop())

		_, err := uc.StartTrip(ctx, uuid.New(), scheduleID)
		assert.ErrorIs(t, err, errors.ErrForbidden)
	})

	t.Run("already completed schedule cannot start", func(t *testing.T) {
		done := idleSchedule()
		done.Status = domain.ScheduleStatusCompleted

		mockSchedules := &MockScheduleRepository{}
		mockSchedules.On("GetByID", ctx, scheduleID).Return(done, nil)

		uc := usecase.NewDriverUseCase(&MockBusRepository{}, mockSchedules, zap.NewNop())

		_, err := uc.StartTrip(ctx, driverID, scheduleID)
		assert.ErrorIs(t, err, errors.ErrScheduleNotActive)
	})

	t.Run("bus already running another trip conflicts", func(t *testing.T) {
		mockSchedules := &MockScheduleRepository{}
		mockSchedules.On("GetByID", ctx, scheduleID).Return(idleSchedule(), nil)

		mockBuses := &MockBusRepository{}
		mockBuses.On("GetByID", ctx, busID).Return(&domain.Bus{ID: busID, Status: domain.BusStatusActive}, nil)

		uc := usecase.NewDriverUseCase(mockBuses, mockSchedules, zap.NewNop())

		_, err := uc.StartTrip(ctx, driverID, scheduleID)
		assert.ErrorIs(t, err, errors.ErrScheduleConflict)
	})

	t.Run("bus update failure rolls the schedule back", func(t *testing.T) {
		mockSchedules := &MockScheduleRepository{}
		mockSchedules.On("GetByID", ctx, scheduleID).Return(idleSchedule(), nil)
		mockSchedules.On("UpdateStatus", ctx, scheduleID, domain.ScheduleStatusActive).Return(nil)
		mockSchedules.On("UpdateStatus", ctx, scheduleID, domain.ScheduleStatusIdle).Return(nil)

		mockBuses := &MockBusRepository{}
		mockBuses.On("GetByID", ctx, busID).Return(&domain.Bus{ID: busID, Status: domain.BusStatusIdle}, nil)
		mockBuses.On("UpdateStatus", ctx, busID, domain.BusStatusActive).Return(errors.ErrDatabaseError)

		uc := usecase.NewDriverUseCase(mockBuses, mockSchedules, zap.NewNop())

		_, err := uc.StartTrip(ctx, driverID, scheduleID)
		assert.ErrorIs(t, err, errors.ErrDatabaseError)
		mockSchedules.AssertCalled(t, "UpdateStatus", ctx, scheduleID, domain.ScheduleStatusIdle)
	})
}

func TestDriverUseCase_StopTrip(t *testing.T) {
	ctx := context.Background()
	driverID := uuid.New()
	scheduleID := uuid.New()
	busID := uuid.New()

	activeSchedule := func() *domain.Schedule {
		return &domain.Schedule{
			ID:       scheduleID,
			BusID:    busID,
			DriverID: &driverID,
			Status:   domain.ScheduleStatusActive,
		}
	}

	t.Run("completes the schedule and idles the bus", func(t *testing.T) {
		completed := activeSchedule()
		completed.Status = domain.ScheduleStatusCompleted

		mockSchedules := &MockScheduleRepository{}
		mockSchedules.On("GetByID", ctx, scheduleID).Return(activeSchedule(), nil).Once()
		mockSchedules.On("UpdateStatus", ctx, scheduleID, domain.ScheduleStatusCompleted).Return(nil)
		mockSchedules.On("GetByID", ctx, scheduleID).Return(completed, nil)

		mockBuses := &MockBusRepository{}
		mockBuses.On("UpdateStatus", ctx, busID, domain.BusStatusIdle).Return(nil)

		uc := usecase.NewDriverUseCase(mockBuses, mockSchedules, zap.NewNop())

		got, err := uc.StopTrip(ctx, driverID, scheduleID)
		require.NoError(t, err)
		assert.Equal(t, domain.ScheduleStatusCompleted, got.Status)
		mockBuses.AssertCalled(t, "UpdateStatus", ctx, busID, domain.BusStatusIdle)
	})

	t.Run("idle schedule cannot stop", func(t *testing.T) {
		idle := activeSchedule()
		idle.Status = domain.ScheduleStatusIdle

		mockSchedules := &MockScheduleRepository{}
		mockSchedules.On("GetByID", ctx, scheduleID).Return(idle, nil)

		uc := usecase.NewDriverUseCase(&MockBusRepository{}, mockSchedules, zap.NewNop())

		_, err := uc.StopTrip(ctx, driverID, scheduleID)
		assert.ErrorIs(t, err, errors.ErrScheduleNotActive)
	})
}

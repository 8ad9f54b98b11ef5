package usecase_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campus-commute-service/internal/domain"
	"github.com/campus-commute-service/internal/pkg/errors"
	"github.com/campus-commute-service/internal/positions"
	"github.com/campus-commute-service/internal/usecase"
	"github.com/campus-commute-service/internal/usecase/dto"
)

func scheduleDetailsFixture(scheduleID, busID uuid.UUID) *domain.ScheduleDetails {
	return &domain.ScheduleDetails{
		Schedule: domain.Schedule{
			ID:        scheduleID,
			BusID:     busID,
			Direction: domain.DirectionInbound,
			Status:    domain.ScheduleStatusActive,
		},
		BusNumber:   "OC-07",
		BusCapacity: 40,
		RouteName:   "Route 3",
	}
}

func TestIngestUseCase_ReportLocation(t *testing.T) {
	ctx := context.Background()
	scheduleID := uuid.New()
	busID := uuid.New()
	cacheKey := fmt.Sprintf("schedule:details:%s", scheduleID)

	validReq := dto.LocationReportRequest{
		ScheduleID: scheduleID.String(),
		Latitude:   23.2421,
		Longitude:  77.4365,
		Speed:      27,
		BusNumber:  "OC-07",
	}

	t.Run("rejects out-of-range coordinates", func(t *testing.T) {
		uc := usecase.NewIngestUseCase(
			&MockScheduleRepository{}, &MockCacheRepository{}, &MockStreamRepository{},
			positions.NewStore(), zap.NewNop(), nil, 5*time.Minute,
		)

		req := validReq
		req.Latitude = 123.45
		err := uc.ReportLocation(ctx, req)
		assert.ErrorIs(t, err, errors.ErrInvalidCoordinates)
	})

	t.Run("rejects a malformed schedule id", func(t *testing.T) {
		uc := usecase.NewIngestUseCase(
			&MockScheduleRepository{}, &MockCacheRepository{}, &MockStreamRepository{},
			positions.NewStore(), zap.NewNop(), nil, 5*time.Minute,
		)

		req := validReq
		req.ScheduleID = "not-a-uuid"
		err := uc.ReportLocation(ctx, req)
		assert.Error(t, err)
	})

	t.Run("cache miss resolves via postgres and caches the result", func(t *testing.T) {
		details := scheduleDetailsFixture(scheduleID, busID)

		mockCache := &MockCacheRepository{}
		mockCache.On("Get", ctx, cacheKey).Return(nil, errors.ErrCacheError)
		mockCache.On("Set", ctx, cacheKey, mock.Anything, 5*time.Minute).Return(nil)

		mockSchedules := &MockScheduleRepository{}
		mockSchedules.On("GetDetails", ctx, scheduleID).Return(details, nil)

		mockStream := &MockStreamRepository{}
		mockStream.On("PublishToStream", ctx, domain.StreamPositionReports, mock.Anything).Return(nil)

		store := positions.NewStore()
		uc := usecase.NewIngestUseCase(
			mockSchedules, mockCache, mockStream, store, zap.NewNop(), nil, 5*time.Minute,
		)

		err := uc.ReportLocation(ctx, validReq)
		require.NoError(t, err)

		stored := store.Get(busID)
		require.NotNil(t, stored)
		assert.Equal(t, "OC-07", stored.BusNumber)
		assert.Equal(t, validReq.Latitude, stored.Lat)
		assert.Equal(t, validReq.Longitude, stored.Lng)

		mockSchedules.AssertCalled(t, "GetDetails", ctx, scheduleID)
		mockCache.AssertCalled(t, "Set", ctx, cacheKey, mock.Anything, 5*time.Minute)
		mockStream.AssertCalled(t, "PublishToStream", ctx, domain.StreamPositionReports, mock.Anything)
	})

	t.Run("cache hit never touches postgres", func(t *testing.T) {
		details := scheduleDetailsFixture(scheduleID, busID)
		cached, err := json.Marshal(details)
		require.NoError(t, err)

		mockCache := &MockCacheRepository{}
		mockCache.On("Get", ctx, cacheKey).Return(cached, nil)

		mockSchedules := &MockScheduleRepository{}

		mockStream := &MockStreamRepository{}
		mockStream.On("PublishToStream", ctx, domain.StreamPositionReports, mock.Anything).Return(nil)

		uc := usecase.NewIngestUseCase(
			mockSchedules, mockCache, mockStream,
			positions.NewStore(), zap.NewNop(), nil, 5*time.Minute,
		)

		err = uc.ReportLocation(ctx, validReq)
		require.NoError(t, err)

		mockSchedules.AssertNotCalled(t, "GetDetails", mock.Anything, mock.Anything)
	})

	t.Run("unknown schedule surfaces not found", func(t *testing.T) {
		mockCache := &MockCacheRepository{}
		mockCache.On("Get", ctx, cacheKey).Return(nil, errors.ErrCacheError)

		mockSchedules := &MockScheduleRepository{}
		mockSchedules.On("GetDetails", ctx, scheduleID).Return(nil, errors.ErrScheduleNotFound)

		uc := usecase.NewIngestUseCase(
			mockSchedules, mockCache, &MockStreamRepository{},
			positions.NewStore(), zap.NewNop(), nil, 5*time.Minute,
		)

		err := uc.ReportLocation(ctx, validReq)
		assert.ErrorIs(t, err, errors.ErrScheduleNotFound)
	})

	t.Run("out-of-order report is dropped without error", func(t *testing.T) {
		details := scheduleDetailsFixture(scheduleID, busID)
		cached, err := json.Marshal(details)
		require.NoError(t, err)

		mockCache := &MockCacheRepository{}
		mockCache.On("Get", ctx, cacheKey).Return(cached, nil)

		mockStream := &MockStreamRepository{}

		store := positions.NewStore()
		// A report from the future is already in the store, so the incoming
		// one loses the ordering race.
		store.Update(&domain.PositionReport{
			BusID:      busID,
			BusNumber:  "OC-07",
			Lat:        23.25,
			Lng:        77.44,
			ReportedAt: time.Now().Add(time.Hour),
		})

		uc := usecase.NewIngestUseCase(
			&MockScheduleRepository{}, mockCache, mockStream, store, zap.NewNop(), nil, 5*time.Minute,
		)

		err = uc.ReportLocation(ctx, validReq)
		require.NoError(t, err)

		// The newer stored position survives and nothing hit the stream.
		stored := store.Get(busID)
		assert.Equal(t, 23.25, stored.Lat)
		mockStream.AssertNotCalled(t, "PublishToStream", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("stream failure is swallowed", func(t *testing.T) {
		details := scheduleDetailsFixture(scheduleID, busID)
		cached, err := json.Marshal(details)
		require.NoError(t, err)

		mockCache := &MockCacheRepository{}
		mockCache.On("Get", ctx, cacheKey).Return(cached, nil)

		mockStream := &MockStreamRepository{}
		mockStream.On("PublishToStream", ctx, domain.StreamPositionReports, mock.Anything).
			Return(errors.ErrCacheError)

		uc := usecase.NewIngestUseCase(
			&MockScheduleRepository{}, mockCache, mockStream,
			positions.NewStore(), zap.NewNop(), nil, 5*time.Minute,
		)

		err = uc.ReportLocation(ctx, validReq)
		assert.NoError(t, err)
	})
}

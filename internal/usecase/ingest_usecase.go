package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campus-commute-service/internal/domain"
	"github.com/campus-commute-service/internal/domain/repository"
	"github.com/campus-commute-service/internal/metrics"
	"github.com/campus-commute-service/internal/pkg/errors"
	"github.com/campus-commute-service/internal/pkg/utils"
	"github.com/campus-commute-service/internal/usecase/dto"
)

// IngestUseCase accepts driver position reports. This is fire-and-forget
// telemetry: a report either lands in the position store and on the stream,
// or it is logged and dropped - a missed sample is superseded within seconds.
type IngestUseCase struct {
	scheduleRepo repository.ScheduleRepository
	cacheRepo    repository.CacheRepository
	streamRepo   repository.StreamRepository
	store        repository.PositionStore
	logger       *zap.Logger
	metrics      *metrics.Collector
	cacheTTL     time.Duration
}

func NewIngestUseCase(
	scheduleRepo repository.ScheduleRepository,
	cacheRepo repository.CacheRepository,
	streamRepo repository.StreamRepository,
	store repository.PositionStore,
	logger *zap.Logger,
	m *metrics.Collector,
	cacheTTL time.Duration,
) *IngestUseCase {
	return &IngestUseCase{
		scheduleRepo: scheduleRepo,
		cacheRepo:    cacheRepo,
		streamRepo:   streamRepo,
		store:        store,
		logger:       logger,
		metrics:      m,
		cacheTTL:     cacheTTL,
	}
}

func (uc *IngestUseCase) ReportLocation(ctx context.Context, req dto.LocationReportRequest) error {
	if !utils.ValidateCoordinates(req.Latitude, req.Longitude) {
		if uc.metrics != nil {
			uc.metrics.ReportsRejected.Inc()
		}
		return errors.ErrInvalidCoordinates
	}

	scheduleID, err := uuid.Parse(req.ScheduleID)
	if err != nil {
		if uc.metrics != nil {
			uc.metrics.ReportsRejected.Inc()
		}
		return errors.ErrInvalidRequest
	}

	details, err := uc.resolveSchedule(ctx, scheduleID)
	if err != nil {
		return err
	}

	if details.BusNumber != req.BusNumber {
		// The schedule is authoritative; the client-sent number is advisory.
		uc.logger.Warn("Bus number mismatch in position report",
			zap.String("schedule_id", scheduleID.String()),
			zap.String("reported", req.BusNumber),
			zap.String("assigned", details.BusNumber))
	}

	report := &domain.PositionReport{
		BusID:      details.BusID,
		BusNumber:  details.BusNumber,
		ScheduleID: scheduleID,
		Lat:        req.Latitude,
		Lng:        req.Longitude,
		SpeedKmh:   req.Speed,
		ReportedAt: time.Now(),
	}

	if !uc.store.Update(report) {
		// Out-of-order delivery; the stored position is already newer.
		if uc.metrics != nil {
			uc.metrics.ReportsStale.Inc()
		}
		return nil
	}

	if uc.metrics != nil {
		uc.metrics.ReportsIngested.Inc()
	}

	// Fan-out publish is best-effort: failures are logged, never surfaced
	// back to the driver.
	if err := uc.streamRepo.PublishToStream(ctx, domain.StreamPositionReports, report); err != nil {
		uc.logger.Warn("Failed to publish position report to stream",
			zap.String("bus_number", report.BusNumber),
			zap.Error(err))
	}

	return nil
}

// resolveSchedule maps scheduleId to its bus via a redis read-through cache,
// keeping the 5-second-cadence hot path off postgres.
func (uc *IngestUseCase) resolveSchedule(ctx context.Context, scheduleID uuid.UUID) (*domain.ScheduleDetails, error) {
	key := fmt.Sprintf("schedule:details:%s", scheduleID)

	if cached, err := uc.cacheRepo.Get(ctx, key); err == nil && cached != nil {
		var details domain.ScheduleDetails
		if err := json.Unmarshal(cached, &details); err == nil {
			return &details, nil
		}
		uc.logger.Warn("Corrupt schedule cache entry", zap.String("key", key))
	}

	details, err := uc.scheduleRepo.GetDetails(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(details); err == nil {
		if err := uc.cacheRepo.Set(ctx, key, data, uc.cacheTTL); err != nil {
			uc.logger.Warn("Failed to cache schedule details", zap.String("key", key))
		}
	}

	return details, nil
}

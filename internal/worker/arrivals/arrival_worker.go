package arrivals

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campus-commute-service/internal/domain"
	"github.com/campus-commute-service/internal/domain/repository"
	"github.com/campus-commute-service/internal/pkg/utils"
	"github.com/campus-commute-service/internal/worker"
)

// ArrivalWorker watches the position stream and emits an ArrivalAlert when a
// bus crosses into the approach radius of a stop. Alerts fire on the
// entry transition only; staying inside the radius is silent.
type ArrivalWorker struct {
	*worker.BaseWorker
	streamRepo      repository.StreamRepository
	stopRepo        repository.StopRepository
	approachRadiusM float64

	// busID -> stopID the bus is currently inside the radius of
	lastStop map[uuid.UUID]uuid.UUID
	stops    []*domain.Stop
}

func NewArrivalWorker(
	streamRepo repository.StreamRepository,
	stopRepo repository.StopRepository,
	consumerGroup string,
	approachRadiusM float64,
	logger *zap.Logger,
) *ArrivalWorker {
	return &ArrivalWorker{
		BaseWorker:      worker.NewBaseWorker("arrival-alert-worker", consumerGroup, logger),
		streamRepo:      streamRepo,
		stopRepo:        stopRepo,
		approachRadiusM: approachRadiusM,
		lastStop:        make(map[uuid.UUID]uuid.UUID),
	}
}

func (w *ArrivalWorker) Start(ctx context.Context) error {
	stops, err := w.stopRepo.List(ctx)
	if err != nil {
		return err
	}
	w.stops = stops

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamPositionReports, w.ConsumerGroup()); err != nil {
		return err
	}

	hostname, _ := os.Hostname()
	consumer := fmt.Sprintf("%s-%s", w.Name(), hostname)

	msgChan, err := w.streamRepo.ConsumeStream(ctx, domain.StreamPositionReports, w.ConsumerGroup(), consumer)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-w.StopChan():
			return nil
		case msg, ok := <-msgChan:
			if !ok {
				return nil
			}
			w.process(ctx, msg)
		}
	}
}

func (w *ArrivalWorker) process(ctx context.Context, msg domain.StreamMessage) {
	defer func() {
		if err := w.streamRepo.AckMessage(ctx, domain.StreamPositionReports, w.ConsumerGroup(), msg.ID); err != nil {
			w.Logger().Warn("Failed to ack position message",
				zap.String("message_id", msg.ID),
				zap.Error(err))
		}
	}()

	var report domain.PositionReport
	if err := json.Unmarshal([]byte(msg.Data), &report); err != nil {
		w.Logger().Warn("Skipping malformed position message",
			zap.String("message_id", msg.ID),
			zap.Error(err))
		return
	}

	alert := w.Evaluate(&report)
	if alert == nil {
		return
	}

	if err := w.streamRepo.PublishToStream(ctx, domain.StreamArrivalAlerts, alert); err != nil {
		w.Logger().Warn("Failed to publish arrival alert",
			zap.String("bus_number", alert.BusNumber),
			zap.String("stop_name", alert.StopName),
			zap.Error(err))
		return
	}

	w.Logger().Info("Arrival alert published",
		zap.String("bus_number", alert.BusNumber),
		zap.String("stop_name", alert.StopName),
		zap.Float64("distance_m", alert.DistanceM))
}

// Evaluate returns an alert when the report moves the bus into the approach
// radius of a stop it was not already approaching, nil otherwise.
func (w *ArrivalWorker) Evaluate(report *domain.PositionReport) *domain.ArrivalAlert {
	var nearest *domain.Stop
	var nearestDistM float64
	for _, stop := range w.stops {
		distM := utils.HaversineDistance(report.Lat, report.Lng, stop.Lat, stop.Lng) * 1000
		if distM > w.approachRadiusM {
			continue
		}
		if nearest == nil || distM < nearestDistM {
			nearest = stop
			nearestDistM = distM
		}
	}

	if nearest == nil {
		delete(w.lastStop, report.BusID)
		return nil
	}

	if w.lastStop[report.BusID] == nearest.ID {
		return nil
	}
	w.lastStop[report.BusID] = nearest.ID

	return &domain.ArrivalAlert{
		BusID:      report.BusID,
		BusNumber:  report.BusNumber,
		StopID:     nearest.ID,
		StopName:   nearest.Name,
		DistanceM:  nearestDistM,
		ReportedAt: report.ReportedAt,
	}
}

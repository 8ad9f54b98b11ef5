package broadcast

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/campus-commute-service/internal/delivery/ws"
	"github.com/campus-commute-service/internal/domain"
	"github.com/campus-commute-service/internal/domain/repository"
	"github.com/campus-commute-service/internal/worker"
)

const consumerGroup = "live-fanout"

// Dispatcher bridges the position stream into the live hub: each report is
// republished on its bus's topic for websocket delivery.
type Dispatcher struct {
	*worker.BaseWorker
	streamRepo repository.StreamRepository
	hub        *ws.Hub
}

func NewDispatcher(
	streamRepo repository.StreamRepository,
	hub *ws.Hub,
	logger *zap.Logger,
) *Dispatcher {
	return &Dispatcher{
		BaseWorker: worker.NewBaseWorker("live-broadcast-dispatcher", consumerGroup, logger),
		streamRepo: streamRepo,
		hub:        hub,
	}
}

func (d *Dispatcher) Start(ctx context.Context) error {
	if err := d.streamRepo.CreateConsumerGroup(ctx, domain.StreamPositionReports, d.ConsumerGroup()); err != nil {
		return err
	}

	hostname, _ := os.Hostname()
	consumer := fmt.Sprintf("%s-%s", d.Name(), hostname)

	msgChan, err := d.streamRepo.ConsumeStream(ctx, domain.StreamPositionReports, d.ConsumerGroup(), consumer)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-d.StopChan():
			return nil
		case msg, ok := <-msgChan:
			if !ok {
				return nil
			}
			d.dispatch(ctx, msg)
		}
	}
}

func (d *Dispatcher) dispatch(ctx context.Context, msg domain.StreamMessage) {
	var report domain.PositionReport
	if err := json.Unmarshal([]byte(msg.Data), &report); err != nil {
		d.Logger().Warn("Skipping malformed position message",
			zap.String("message_id", msg.ID),
			zap.Error(err))
		// Ack anyway: a malformed message never becomes valid on redelivery.
		_ = d.streamRepo.AckMessage(ctx, domain.StreamPositionReports, d.ConsumerGroup(), msg.ID)
		return
	}

	d.hub.Publish(ws.TopicForBus(report.BusNumber), []byte(msg.Data))

	if err := d.streamRepo.AckMessage(ctx, domain.StreamPositionReports, d.ConsumerGroup(), msg.ID); err != nil {
		d.Logger().Warn("Failed to ack position message",
			zap.String("message_id", msg.ID),
			zap.Error(err))
	}
}

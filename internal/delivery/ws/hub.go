package ws

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/campus-commute-service/internal/metrics"
)

// Hub fans position updates out to live subscribers, one topic per bus.
// Delivery is at-most-once and best-effort: a subscriber whose buffer is full
// misses that update, and a client that connects late gets no backfill.
type Hub struct {
	mu     sync.RWMutex
	topics map[string]map[*Subscriber]struct{}

	buffer  int
	logger  *zap.Logger
	metrics *metrics.Collector
}

// Subscriber is one live connection's view of a topic.
type Subscriber struct {
	topic string
	ch    chan []byte
}

// Updates is the stream of serialized position reports for the topic.
func (s *Subscriber) Updates() <-chan []byte {
	return s.ch
}

func (s *Subscriber) Topic() string {
	return s.topic
}

func NewHub(buffer int, logger *zap.Logger, m *metrics.Collector) *Hub {
	if buffer <= 0 {
		buffer = 16
	}
	return &Hub{
		topics:  make(map[string]map[*Subscriber]struct{}),
		buffer:  buffer,
		logger:  logger,
		metrics: m,
	}
}

// TopicForBus names the per-bus topic. One bus per topic keeps fan-out
// filtering server-side.
func TopicForBus(busNumber string) string {
	return fmt.Sprintf("bus.%s", busNumber)
}

func (h *Hub) Subscribe(topic string) *Subscriber {
	sub := &Subscriber{
		topic: topic,
		ch:    make(chan []byte, h.buffer),
	}

	h.mu.Lock()
	subs, ok := h.topics[topic]
	if !ok {
		subs = make(map[*Subscriber]struct{})
		h.topics[topic] = subs
	}
	subs[sub] = struct{}{}
	h.mu.Unlock()

	if h.metrics != nil {
		h.metrics.LiveSubscribers.Inc()
	}
	h.logger.Debug("Live subscription opened", zap.String("topic", topic))

	return sub
}

// Unsubscribe releases the subscription and closes its channel. Safe to call
// once per subscriber, from the connection's own goroutine.
func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	subs, ok := h.topics[sub.topic]
	if ok {
		if _, member := subs[sub]; member {
			delete(subs, sub)
			close(sub.ch)
			if len(subs) == 0 {
				delete(h.topics, sub.topic)
			}
		}
	}
	h.mu.Unlock()

	if ok {
		if h.metrics != nil {
			h.metrics.LiveSubscribers.Dec()
		}
		h.logger.Debug("Live subscription closed", zap.String("topic", sub.topic))
	}
}

// Publish delivers the payload to every subscriber of the topic without
// blocking: a slow consumer drops the update rather than stalling ingest.
func (h *Hub) Publish(topic string, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.topics[topic] {
		select {
		case sub.ch <- payload:
			if h.metrics != nil {
				h.metrics.BroadcastsSent.Inc()
			}
		default:
			if h.metrics != nil {
				h.metrics.BroadcastsDropped.Inc()
			}
		}
	}
}

// SubscriberCount reports the number of open subscriptions on a topic.
func (h *Hub) SubscriberCount(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[topic])
}

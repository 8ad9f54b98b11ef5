package repository

import (
	"context"

	"github.com/campus-commute-service/internal/domain"
)

// StreamRepository is the redis-streams event bus carrying position reports
// from ingest to the live hub dispatcher and the arrival-alert worker.
type StreamRepository interface {
	// ConsumeStream reads messages from the stream via a consumer group.
	ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error)

	// AckMessage acknowledges a processed message.
	AckMessage(ctx context.Context, stream, group, messageID string) error

	// CreateConsumerGroup creates the consumer group if it does not exist yet.
	CreateConsumerGroup(ctx context.Context, stream, group string) error

	// PublishToStream appends a JSON-serialized message to the stream.
	PublishToStream(ctx context.Context, stream string, data interface{}) error
}

package ws_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campus-commute-service/internal/delivery/ws"
)

func TestHub_PublishReachesOnlyTopicSubscribers(t *testing.T) {
	hub := ws.NewHub(4, zap.NewNop(), nil)

	subA := hub.Subscribe(ws.TopicForBus("B-1"))
	subB := hub.Subscribe(ws.TopicForBus("B-2"))
	defer hub.Unsubscribe(subA)
	defer hub.Unsubscribe(subB)

	hub.Publish(ws.TopicForBus("B-1"), []byte(`{"busNumber":"B-1"}`))

	select {
	case msg := <-subA.Updates():
		assert.JSONEq(t, `{"busNumber":"B-1"}`, string(msg))
	default:
		t.Fatal("subscriber of bus.B-1 did not receive the update")
	}

	select {
	case msg := <-subB.Updates():
		t.Fatalf("subscriber of bus.B-2 received unrelated update: %s", msg)
	default:
	}
}

func TestHub_FullBufferDropsInsteadOfBlocking(t *testing.T) {
	hub := ws.NewHub(2, zap.NewNop(), nil)

	sub := hub.Subscribe(ws.TopicForBus("B-1"))
	defer hub.Unsubscribe(sub)

	// Three publishes into a buffer of two: the third must be dropped,
	// and Publish must return without blocking.
	for i := 0; i < 3; i++ {
		hub.Publish(ws.TopicForBus("B-1"), []byte("update"))
	}

	received := 0
	for {
		select {
		case <-sub.Updates():
			received++
			continue
		default:
		}
		break
	}
	assert.Equal(t, 2, received)
}

func TestHub_UnsubscribeReleasesTopic(t *testing.T) {
	hub := ws.NewHub(4, zap.NewNop(), nil)
	topic := ws.TopicForBus("B-9")

	sub := hub.Subscribe(topic)
	require.Equal(t, 1, hub.SubscriberCount(topic))

	hub.Unsubscribe(sub)
	assert.Equal(t, 0, hub.SubscriberCount(topic))

	// Channel is closed after unsubscribe.
	_, open := <-sub.Updates()
	assert.False(t, open)

	// Publishing to a topic with no subscribers is a no-op.
	hub.Publish(topic, []byte("update"))
}

func TestHub_UnsubscribeTwiceIsSafe(t *testing.T) {
	hub := ws.NewHub(4, zap.NewNop(), nil)

	sub := hub.Subscribe(ws.TopicForBus("B-3"))
	hub.Unsubscribe(sub)
	hub.Unsubscribe(sub)

	assert.Equal(t, 0, hub.SubscriberCount(ws.TopicForBus("B-3")))
}

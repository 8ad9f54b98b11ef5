package handler

import (
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/campus-commute-service/internal/config"
	"github.com/campus-commute-service/internal/delivery/ws"
)

// LiveHandler upgrades live-tracking requests to websocket connections and
// pumps per-bus position updates from the hub to each client.
type LiveHandler struct {
	hub    *ws.Hub
	cfg    config.LiveConfig
	logger *zap.Logger
}

func NewLiveHandler(hub *ws.Hub, cfg config.LiveConfig, logger *zap.Logger) *LiveHandler {
	return &LiveHandler{
		hub:    hub,
		cfg:    cfg,
		logger: logger,
	}
}

// Upgrade rejects plain HTTP requests on the websocket route.
func (h *LiveHandler) Upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		c.Locals("busNumber", c.Params("busNumber"))
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// BusStream streams position updates for one bus until the client disconnects.
func (h *LiveHandler) BusStream() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		busNumber, _ := conn.Locals("busNumber").(string)
		if busNumber == "" {
			conn.Close()
			return
		}

		sub := h.hub.Subscribe(ws.TopicForBus(busNumber))
		defer h.hub.Unsubscribe(sub)

		done := make(chan struct{})

		// Reader goroutine: the client sends nothing we care about, but
		// reading is what surfaces close frames and pong responses.
		go func() {
			defer close(done)
			conn.SetReadDeadline(time.Now().Add(h.cfg.HeartbeatInterval * 2))
			conn.SetPongHandler(func(string) error {
				return conn.SetReadDeadline(time.Now().Add(h.cfg.HeartbeatInterval * 2))
			})
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		ticker := time.NewTicker(h.cfg.HeartbeatInterval)
		defer ticker.Stop()

		for {
			select {
			case payload, ok := <-sub.Updates():
				if !ok {
					return
				}
				conn.SetWriteDeadline(time.Now().Add(h.cfg.WriteTimeout))
				if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
					h.logger.Debug("Live write failed, closing connection",
						zap.String("bus_number", busNumber),
						zap.Error(err))
					return
				}
			case <-ticker.C:
				conn.SetWriteDeadline(time.Now().Add(h.cfg.WriteTimeout))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	})
}

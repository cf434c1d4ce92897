package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog"

	"github.com/symposiumhq/symposium-api/internal/service"
)

// LiveHandler streams launch events to venue display clients over a websocket.
type LiveHandler struct {
	feed   service.LaunchFeed
	logger zerolog.Logger
}

// NewLiveHandler builds a live stream handler instance.
func NewLiveHandler(feed service.LaunchFeed, logger zerolog.Logger) *LiveHandler {
	return &LiveHandler{
		feed:   feed,
		logger: logger.With().Str("component", "live_handler").Logger(),
	}
}

// Register attaches the websocket upgrade route to the provided router group.
func (h *LiveHandler) Register(router fiber.Router) {
	router.Use("/launches", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	router.Get("/launches", websocket.New(h.stream))
}

func (h *LiveHandler) stream(conn *websocket.Conn) {
	events, cancel := h.feed.Subscribe()
	defer cancel()

	h.logger.Info().Msg("display client connected")
	defer h.logger.Info().Msg("display client disconnected")

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			// Drain client frames so close handshakes are noticed.
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			if err := conn.WriteJSON(event); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

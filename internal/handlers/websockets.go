package handlers

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/caffeicsatyam/ocean-pulse-api/internal/events"
	"github.com/caffeicsatyam/ocean-pulse-api/internal/logger"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// EventsWebsocketHandler attaches a client to the detection events feed.
// Clients only listen; anything they send is discarded.
func EventsWebsocketHandler(hub *events.Hub, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		connection, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Error("WebSocket upgrade error: %v", err)
			return
		}
		connection.SetReadLimit(512)
		defer connection.Close()

		hub.Register(connection)
		defer hub.Unregister(connection)

		for {
			if _, _, err := connection.ReadMessage(); err != nil {
				break
			}
		}
	}
}

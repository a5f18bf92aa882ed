package handler

import (
	"net/http"

	"github.com/coursehub-dev/coursehub/backend/internal/ws"
	"github.com/coursehub-dev/coursehub/shared/logger"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Cross-origin is enforced by the CORS layer in front of us.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWs upgrades the connection and hands it to the fan-out hub. Clients
// subscribe by sending join messages; nothing is persisted about membership.
func (h *Handler) ServeWs(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Debug("ws upgrade failed", "error", err)
		return
	}

	client := ws.NewClient(h.hub, conn)
	go client.Run()
}

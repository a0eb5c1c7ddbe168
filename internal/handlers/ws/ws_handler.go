package ws

import (
	"net/http"
	"time"

	"carrental-service/internal/middleware"
	"carrental-service/internal/pkg/response"
	"carrental-service/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// TODO: restrict to the dashboard origin once it has a fixed host
		return true
	},
}

type WSHandler struct {
	hub    *ws.Hub
	logger *zap.Logger
}

func NewWSHandler(hub *ws.Hub, logger *zap.Logger) *WSHandler {
	return &WSHandler{hub: hub, logger: logger}
}

// HandleConnection upgrades an authenticated staff request to a websocket and
// attaches it to the event feed. Runs behind the auth middleware, which also
// accepts the token as a query parameter for browser websocket clients.
func (h *WSHandler) HandleConnection(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed",
			zap.Error(err),
			zap.String("ip", c.ClientIP()),
		)
		return
	}

	client := ws.NewClient(h.hub, conn, userID)
	client.Register()

	go client.WritePump()
	go client.ReadPump()
}

// Stats reports feed connection counts (admin only).
func (h *WSHandler) Stats(c *gin.Context) {
	response.Success(c, http.StatusOK, "websocket stats", map[string]interface{}{
		"total_connections": h.hub.TotalClients(),
		"timestamp":         time.Now(),
	})
}

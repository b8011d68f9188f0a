package handler

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"orderdesk/internal/hub"
	"orderdesk/internal/service"
)

// WSHandler upgrades notification requests and hands the connection to a
// session.
type WSHandler struct {
	orderSvc *service.OrderService
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(orderSvc *service.OrderService, logger *slog.Logger) *WSHandler {
	return &WSHandler{
		orderSvc: orderSvc,
		logger:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// OrderFeed handles GET /ws/orders. If the upgrade fails the connection
// is never registered; otherwise the session runs on this goroutine
// until the client goes away.
func (h *WSHandler) OrderFeed(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}

	h.orderSvc.RunSession(hub.NewWebsocketConn(ws))
}

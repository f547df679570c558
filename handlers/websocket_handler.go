package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/Dosada05/tournament-results/brackets"
)

type WebSocketHandler struct {
	hub      *brackets.Hub
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewWebSocketHandler accepts connections from allowedOrigins; "*" allows any.
func NewWebSocketHandler(hub *brackets.Hub, allowedOrigins []string, logger *slog.Logger) *WebSocketHandler {
	allowAll := false
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		if o == "*" {
			allowAll = true
		}
		allowed[o] = true
	}
	return &WebSocketHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return allowAll || origin == "" || allowed[origin]
			},
		},
		logger: logger,
	}
}

// ServeWs подключает зрителя к комнате обновлений таблицы.
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade сам отправляет HTTP ошибку клиенту.
		h.logger.Warn("failed to upgrade websocket connection", slog.Any("error", err))
		return
	}

	client := &brackets.Client{
		Hub:  h.hub,
		Conn: conn,
		Send: make(chan []byte, 256),
		Room: brackets.StandingsRoom,
	}
	if !h.hub.RegisterClient(client) {
		h.logger.Debug("websocket hub stopped, connection dropped", slog.String("remote", r.RemoteAddr))
		conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()

	h.logger.Debug("websocket client connected", slog.String("room", client.Room), slog.String("remote", r.RemoteAddr))
}

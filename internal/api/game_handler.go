package api

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/ericogr/dungeon-party/internal/hub"
	"github.com/ericogr/dungeon-party/internal/seat"
	"github.com/ericogr/dungeon-party/internal/service"
)

// GameHandler groups all game-related HTTP handlers.
type GameHandler struct {
	manager  *service.Manager
	seats    *seat.Issuer
	hub      *hub.Hub
	upgrader websocket.Upgrader
}

// NewGameHandler wires the handlers to the running tables, the seat token
// issuer and the mirror hub.
func NewGameHandler(manager *service.Manager, seats *seat.Issuer, h *hub.Hub) *GameHandler {
	return &GameHandler{
		manager: manager,
		seats:   seats,
		hub:     h,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Mirrors authenticate with a seat token, not with cookies.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ericogr/dungeon-party/internal/constants"
	"github.com/ericogr/dungeon-party/internal/logging"
	"github.com/ericogr/dungeon-party/internal/service"
)

// Stream upgrades to a websocket and mirrors every published state of the
// game to the caller until it disconnects.
func (h *GameHandler) Stream(c *gin.Context) {
	gameID := c.Param("gameID")
	playerID := playerFromContext(c)
	g, err := h.manager.Snapshot(c.Request.Context(), gameID)
	if err != nil {
		if errors.Is(err, service.ErrGameNotFound) {
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrGameNotFound})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: err.Error()})
		return
	}
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the handshake error.
		logging.Warn(constants.ErrStreamUpgradeRejected, logging.Fields{
			constants.LogFieldGameID: gameID,
			"error":                  err.Error(),
		})
		return
	}
	h.hub.Serve(conn, gameID, playerID, g)
}

package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ericogr/dungeon-party/internal/constants"
	"github.com/ericogr/dungeon-party/internal/game"
	"github.com/ericogr/dungeon-party/internal/logging"
	"github.com/ericogr/dungeon-party/internal/service"
)

// GetGame returns the caller's view of the game.
func (h *GameHandler) GetGame(c *gin.Context) {
	g, err := h.manager.Snapshot(c.Request.Context(), c.Param("gameID"))
	if err != nil {
		if errors.Is(err, service.ErrGameNotFound) {
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrGameNotFound})
			return
		}
		logging.Error("snapshot failed", err, logging.Fields{constants.LogFieldGameID: c.Param("gameID")})
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: err.Error()})
		return
	}
	c.Header(constants.CacheControlHeader, constants.CacheControlNoCache)
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyGame: g.ViewFor(playerFromContext(c))})
}

// ChampionGrants lists XP and gold grants for a champion with their totals.
func (h *GameHandler) ChampionGrants(c *gin.Context) {
	id := c.Param("championID")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	totals, err := h.manager.ChampionTotals(id)
	if err != nil {
		logging.Error("champion totals failed", err, logging.Fields{"champion_id": id})
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchGrants})
		return
	}
	grants, err := h.manager.ChampionGrants(id)
	if err != nil {
		logging.Error("champion grants failed", err, logging.Fields{"champion_id": id})
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchGrants})
		return
	}
	c.JSON(http.StatusOK, gin.H{"totals": totals, "grants": grants})
}

// ListGames returns stored games, newest first. Query: status, limit.
func (h *GameHandler) ListGames(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	games, err := h.manager.ListGames(game.Status(c.Query("status")), limit)
	if err != nil {
		logging.Error("list games failed", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedListGames})
		return
	}
	c.JSON(http.StatusOK, gin.H{"games": games})
}

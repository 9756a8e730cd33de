package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ericogr/dungeon-party/internal/constants"
	"github.com/ericogr/dungeon-party/internal/engine"
	"github.com/ericogr/dungeon-party/internal/logging"
	"github.com/ericogr/dungeon-party/internal/service"
)

type CardRequest struct {
	CardID string `json:"card_id" binding:"required"`
}

type TargetRequest struct {
	TargetID string `json:"target_id" binding:"required"`
}

type EnhanceRequest struct {
	Enabled bool `json:"enabled"`
}

type SelectionRequest struct {
	CardID      string `json:"card_id" binding:"required"`
	TargetID    string `json:"target_id"`
	EnhanceMode bool   `json:"enhance_mode"`
}

type ReadyRequest struct {
	Ready bool `json:"ready"`
}

func (h *GameHandler) SelectCard(c *gin.Context) {
	var req CardRequest
	if !bind(c, &req) {
		return
	}
	h.submit(c, service.Command{Kind: service.CmdSelectCard, CardID: req.CardID})
}

func (h *GameHandler) SelectTarget(c *gin.Context) {
	var req TargetRequest
	if !bind(c, &req) {
		return
	}
	h.submit(c, service.Command{Kind: service.CmdSelectTarget, TargetID: req.TargetID})
}

func (h *GameHandler) ConfirmTarget(c *gin.Context) {
	h.submit(c, service.Command{Kind: service.CmdConfirmTarget})
}

// RollAggro commits the selected card and plays it.
func (h *GameHandler) RollAggro(c *gin.Context) {
	h.submit(c, service.Command{Kind: service.CmdRollAggro})
}

func (h *GameHandler) SpecialAbility(c *gin.Context) {
	h.submit(c, service.Command{Kind: service.CmdSpecial})
}

func (h *GameHandler) EnhanceMode(c *gin.Context) {
	var req EnhanceRequest
	if !bind(c, &req) {
		return
	}
	h.submit(c, service.Command{Kind: service.CmdEnhanceMode, Enhance: req.Enabled})
}

// Selection records the caller's simultaneous choice.
func (h *GameHandler) Selection(c *gin.Context) {
	var req SelectionRequest
	if !bind(c, &req) {
		return
	}
	h.submit(c, service.Command{
		Kind:     service.CmdSelection,
		CardID:   req.CardID,
		TargetID: req.TargetID,
		Enhance:  req.EnhanceMode,
	})
}

// Ready locks or unlocks the caller's selection. The last ready player
// resolves the batch.
func (h *GameHandler) Ready(c *gin.Context) {
	var req ReadyRequest
	if !bind(c, &req) {
		return
	}
	h.submit(c, service.Command{Kind: service.CmdReady, Ready: req.Ready})
}

func bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return false
	}
	return true
}

// submit sends cmd to the game's table as the authenticated seat.
func (h *GameHandler) submit(c *gin.Context, cmd service.Command) {
	gameID := c.Param("gameID")
	cmd.PlayerID = playerFromContext(c)
	res, err := h.manager.Submit(c.Request.Context(), gameID, cmd)
	if err != nil {
		status, msg := errorStatus(err)
		if status >= http.StatusInternalServerError {
			logging.Error("command failed", err, logging.Fields{
				constants.LogFieldGameID:   gameID,
				constants.LogFieldPlayerID: cmd.PlayerID,
				constants.LogFieldCommand:  string(cmd.Kind),
			})
		}
		c.JSON(status, gin.H{constants.JSONKeyError: msg})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		constants.JSONKeyGame:   res.State.ViewFor(cmd.PlayerID),
		constants.JSONKeyEvents: res.Events,
		"resolved":              res.Resolved,
	})
}

// errorStatus maps domain errors onto an HTTP status and a client message.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return http.StatusNotFound, constants.ErrGameNotFound
	case errors.Is(err, engine.ErrGameOver):
		return http.StatusConflict, constants.ErrGameOver
	case errors.Is(err, engine.ErrWrongPhase):
		return http.StatusConflict, constants.ErrWrongPhase
	case errors.Is(err, engine.ErrNotYourTurn):
		return http.StatusConflict, constants.ErrNotYourTurn
	case errors.Is(err, engine.ErrSelectionLocked):
		return http.StatusConflict, constants.ErrSelectionLocked
	case errors.Is(err, engine.ErrNoNextEncounter):
		return http.StatusConflict, constants.ErrNoNextEncounter
	case errors.Is(err, engine.ErrUnsupportedMode):
		return http.StatusConflict, constants.ErrUnsupportedMode
	case errors.Is(err, engine.ErrIllegalTarget):
		return http.StatusBadRequest, constants.ErrIllegalTarget
	case errors.Is(err, engine.ErrTargetRequired):
		return http.StatusBadRequest, constants.ErrTargetRequired
	case errors.Is(err, engine.ErrNoLegalTarget):
		return http.StatusBadRequest, constants.ErrNoLegalTarget
	case errors.Is(err, engine.ErrCardNotInHand):
		return http.StatusBadRequest, constants.ErrCardNotInHand
	case errors.Is(err, engine.ErrSelectionIncomplete):
		return http.StatusBadRequest, constants.ErrSelectionIncomplete
	case errors.Is(err, engine.ErrResourceNotFull):
		return http.StatusBadRequest, constants.ErrResourceNotFull
	case errors.Is(err, engine.ErrUnknownPlayer):
		return http.StatusForbidden, constants.ErrUnknownPlayer
	case errors.Is(err, service.ErrTableStopped):
		return http.StatusServiceUnavailable, err.Error()
	}
	return http.StatusInternalServerError, constants.ErrFailedStoreAction
}

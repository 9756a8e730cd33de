package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ericogr/dungeon-party/internal/constants"
	"github.com/ericogr/dungeon-party/internal/engine"
	"github.com/ericogr/dungeon-party/internal/game"
	"github.com/ericogr/dungeon-party/internal/logging"
	"github.com/ericogr/dungeon-party/internal/service"
)

type SeatRequest struct {
	ID         string `json:"id" binding:"required"`
	Name       string `json:"name"`
	Class      string `json:"class" binding:"required"`
	ChampionID string `json:"champion_id"`
}

type CreateGameRequest struct {
	Mode  string        `json:"mode"`
	Seed  uint64        `json:"seed"`
	Seats []SeatRequest `json:"seats" binding:"required,min=1,dive"`
}

// CreateGame sets up a party, starts the first encounter and hands out one
// seat token per hero.
func (h *GameHandler) CreateGame(c *gin.Context) {
	var req CreateGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	seats := make([]engine.Seat, 0, len(req.Seats))
	for _, s := range req.Seats {
		name := s.Name
		if name == "" {
			name = s.ID
		}
		seats = append(seats, engine.Seat{
			ID:         s.ID,
			Name:       name,
			Class:      game.Class(s.Class),
			ChampionID: s.ChampionID,
		})
	}

	g, err := h.manager.CreateGame(service.CreateGameRequest{
		Mode:  game.Mode(req.Mode),
		Seed:  req.Seed,
		Seats: seats,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTooManyPlayers),
			errors.Is(err, engine.ErrUnknownClass),
			errors.Is(err, engine.ErrUnsupportedMode),
			errors.Is(err, engine.ErrNoPlayers):
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: err.Error()})
		default:
			logging.Error("create game failed", err, nil)
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateGame})
		}
		return
	}

	tokens := make(map[string]string, len(g.Players))
	for _, p := range g.Players {
		tok, err := h.seats.Issue(g.ID, p.ID)
		if err != nil {
			logging.Error("issue seat token failed", err, logging.Fields{constants.LogFieldGameID: g.ID})
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateGame})
			return
		}
		tokens[p.ID] = tok
	}
	c.JSON(http.StatusCreated, gin.H{
		constants.JSONKeyGame:  g,
		constants.JSONKeySeats: tokens,
	})
}

// StartEncounter leaves the reward or shop screen for the next round.
func (h *GameHandler) StartEncounter(c *gin.Context) {
	h.submit(c, service.Command{Kind: service.CmdStartEncounter})
}

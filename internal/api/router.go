package api

import (
	"github.com/gin-gonic/gin"

	"github.com/ericogr/dungeon-party/internal/constants"
)

// NewRouter registers every route on a fresh gin engine.
func NewRouter(h *GameHandler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		// Public endpoints
		apiRoutes.GET(constants.RouteVersion, Version)
		apiRoutes.GET(constants.RouteGames, h.ListGames)
		apiRoutes.POST(constants.RouteGames, h.CreateGame)
		apiRoutes.GET(constants.RouteGrants, h.ChampionGrants)

		// Seat holders only
		seated := apiRoutes.Group("")
		seated.Use(SeatRequired(h.seats))

		seated.GET(constants.RouteGameByID, h.GetGame)
		seated.GET(constants.RouteGameStream, h.Stream)
		seated.POST(constants.RouteGameEncounter, h.StartEncounter)
		seated.POST(constants.RouteSelectCard, h.SelectCard)
		seated.POST(constants.RouteSelectTarget, h.SelectTarget)
		seated.POST(constants.RouteConfirmTarget, h.ConfirmTarget)
		seated.POST(constants.RouteRollAggro, h.RollAggro)
		seated.POST(constants.RouteSpecialAbility, h.SpecialAbility)
		seated.POST(constants.RouteEnhanceMode, h.EnhanceMode)
		seated.POST(constants.RouteSelection, h.Selection)
		seated.POST(constants.RouteReady, h.Ready)
	}
	return router
}

package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ericogr/dungeon-party/internal/constants"
	"github.com/ericogr/dungeon-party/internal/seat"
)

const ctxPlayerID = "playerID"

// SeatRequired validates the seat token of the caller and injects the
// player id into the context. The token may come from the Authorization
// header or from the "seat" query parameter.
func SeatRequired(issuer *seat.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := seatToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
			return
		}
		claims, err := issuer.Verify(token)
		if err != nil {
			msg := constants.ErrInvalidSeat
			if errors.Is(err, seat.ErrExpiredToken) {
				msg = err.Error()
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: msg})
			return
		}
		if gameID := c.Param("gameID"); gameID != "" && gameID != claims.GameID {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrSeatOtherGame})
			return
		}
		c.Set(ctxPlayerID, claims.PlayerID)
		c.Next()
	}
}

func seatToken(c *gin.Context) string {
	if h := c.GetHeader(constants.HeaderAuthorization); strings.HasPrefix(h, constants.BearerPrefix) {
		return strings.TrimSpace(strings.TrimPrefix(h, constants.BearerPrefix))
	}
	return c.Query(constants.QuerySeatToken)
}

func playerFromContext(c *gin.Context) string {
	return c.GetString(ctxPlayerID)
}

package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ericogr/dungeon-party/internal/constants"
	"github.com/ericogr/dungeon-party/internal/logging"
)

// requestLogger emits one structured line per request.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logging.Debug("http request", logging.Fields{
			"method":                 c.Request.Method,
			constants.LogFieldPath:   c.FullPath(),
			"status":                 c.Writer.Status(),
			"latency_ms":             time.Since(start).Milliseconds(),
			constants.LogFieldGameID: c.Param("gameID"),
		})
	}
}

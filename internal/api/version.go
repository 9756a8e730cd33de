package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ericogr/dungeon-party/internal/version"
)

// Version returns build and VCS metadata injected at build time.
func Version(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": version.Service,
		"version": version.Version,
		"commit":  version.Commit,
		"date":    version.Date,
	})
}
